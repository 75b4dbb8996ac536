package jobs

import (
	"context"
	"errors"
	"fmt"

	"emoshown/internal/analytics"
	recommendationController "emoshown/internal/controllers/recommendation"
	"emoshown/internal/database"
	"emoshown/internal/repositories"
	"emoshown/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

// DailyRecommendationJob precomputes recommendations for every user who has
// journaled, recording the recommended interactions the next ranking builds on.
type DailyRecommendationJob struct {
	journalRepo    repositories.JournalRepository
	recommendation recommendationController.RecommendationControllerInterface
	db             database.DB
	strategy       analytics.StrategyName
	log            logger.Logger
	schedule       services.Schedule
}

func NewDailyRecommendationJob(
	journalRepo repositories.JournalRepository,
	recommendation recommendationController.RecommendationControllerInterface,
	db database.DB,
	strategy analytics.StrategyName,
	schedule services.Schedule,
) *DailyRecommendationJob {
	log := logger.New("dailyRecommendationJob")
	log.Info("Creating new daily recommendation job", "schedule", schedule, "strategy", strategy)

	return &DailyRecommendationJob{
		journalRepo:    journalRepo,
		recommendation: recommendation,
		db:             db,
		strategy:       strategy,
		log:            log,
		schedule:       schedule,
	}
}

func (j *DailyRecommendationJob) Name() string {
	return "DailyRecommendationGeneration"
}

// Execute keeps going past a failed user and reports every failure at the end.
// A cancelled context stops the run between users.
func (j *DailyRecommendationJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	log.Info("Starting daily recommendation generation")

	userIDs, err := j.journalRepo.DistinctUserIDs(ctx, j.db.SQL)
	if err != nil {
		return log.Err("failed to list journaling users", err)
	}

	var failures []error
	processed := 0
	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			return log.Err("daily recommendation generation cancelled", err, "processed", processed)
		}

		if _, err := j.recommendation.RecommendForUser(ctx, userID, j.strategy); err != nil {
			failures = append(failures, fmt.Errorf("user %s: %w", userID, err))
			continue
		}
		processed++
	}

	if len(failures) > 0 {
		return log.Err(
			"daily recommendation generation finished with failures",
			errors.Join(failures...),
			"processed",
			processed,
			"failed",
			len(failures),
		)
	}

	log.Info("Daily recommendation generation completed successfully", "users", processed)
	return nil
}

func (j *DailyRecommendationJob) Schedule() services.Schedule {
	return j.schedule
}
