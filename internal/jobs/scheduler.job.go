package jobs

import (
	"emoshown/config"
	"emoshown/internal/controllers"
	"emoshown/internal/database"
	"emoshown/internal/repositories"
	"emoshown/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

const (
	Daily  = services.Daily
	Hourly = services.Hourly
)

// RegisterAllJobs is a no-op unless SCHEDULER_ENABLED is set.
func RegisterAllJobs(
	schedulerService *services.SchedulerService,
	config config.Config,
	repos repositories.Repository,
	controllers controllers.Controllers,
	db database.DB,
) error {
	log := logger.New("jobs").Function("RegisterAllJobs")

	if !config.SchedulerEnabled {
		log.Info("Scheduler disabled, skipping job registration")
		return nil
	}

	dailyRecommendationJob := NewDailyRecommendationJob(
		repos.Journal,
		controllers.Recommendation,
		db,
		config.DefaultStrategy(),
		Daily,
	)
	if err := schedulerService.AddJob(dailyRecommendationJob); err != nil {
		return log.Err("failed to register daily recommendation job", err)
	}
	log.Info("Registered daily recommendation job", "schedule", "daily 02:00 UTC")

	return nil
}
