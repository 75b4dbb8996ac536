package middleware

import (
	"context"

	"emoshown/config"
	"emoshown/internal/database"
	"emoshown/internal/repositories"
	"emoshown/internal/services"
	"emoshown/internal/types"

	logger "github.com/Bparsons0904/goLogger"
)

type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*types.TokenInfo, error)
}

type Middleware struct {
	DB        database.DB
	userRepo  repositories.UserRepository
	validator TokenValidator
	Config    config.Config
	log       logger.Logger
}

func New(
	db database.DB,
	config config.Config,
	repos repositories.Repository,
	services services.Service,
) Middleware {
	log := logger.New("middleware")

	return Middleware{
		DB:        db,
		userRepo:  repos.User,
		validator: services.Auth,
		Config:    config,
		log:       log,
	}
}
