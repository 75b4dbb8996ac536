package services

import (
	"emoshown/config"
	"emoshown/internal/database"
)

type Service struct {
	Auth        *AuthService
	Sentiment   *SentimentService
	Transaction *TransactionService
	Scheduler   *SchedulerService
}

func New(db database.DB, config config.Config) (Service, error) {
	authService, err := NewAuthService(config)
	if err != nil {
		return Service{}, err
	}

	return Service{
		Auth:        authService,
		Sentiment:   NewSentimentService(config),
		Transaction: NewTransactionService(db),
		Scheduler:   NewSchedulerService(),
	}, nil
}
