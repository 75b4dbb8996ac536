package analysisController

import (
	"context"

	"emoshown/config"
	"emoshown/internal/analytics"
	"emoshown/internal/database"
	. "emoshown/internal/models"
	"emoshown/internal/repositories"
	"emoshown/internal/services"
	"emoshown/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
)

type AnalysisControllerInterface interface {
	WeeklyAnalysis(ctx context.Context, user *User, today string) (*analytics.WeeklyAnalysis, error)
}

type AnalysisController struct {
	journalRepo       repositories.JournalRepository
	analysisCacheRepo repositories.AnalysisCacheRepository
	db                database.DB
	Config            config.Config
	today             func() analytics.CalendarDate
}

func New(
	repos repositories.Repository,
	_ services.Service,
	config config.Config,
	db database.DB,
) AnalysisControllerInterface {
	return &AnalysisController{
		journalRepo:       repos.Journal,
		analysisCacheRepo: repos.AnalysisCache,
		db:                db,
		Config:            config,
		today:             analytics.Today,
	}
}

// WeeklyAnalysis builds the rolling seven day view ending on today. A blank
// today means the server's current UTC date.
func (c *AnalysisController) WeeklyAnalysis(
	ctx context.Context,
	user *User,
	today string,
) (*analytics.WeeklyAnalysis, error) {
	log := logger.New("analysisController").TraceFromContext(ctx).Function("WeeklyAnalysis")

	day, err := utils.ParseOptionalCalendarDate(today, c.today())
	if err != nil {
		return nil, log.Err("invalid analysis date", err, "userID", user.ID)
	}

	if cached, found := c.analysisCacheRepo.Get(ctx, user.ID, day); found {
		log.Debug("Weekly analysis served from cache", "userID", user.ID, "today", day.String())
		return cached, nil
	}

	from := day.AddDays(-(analytics.WindowDays - 1))
	entries, err := c.journalRepo.GetByUserAndDateRange(ctx, c.db.SQL, user.ID, from, day)
	if err != nil {
		return nil, log.Err("failed to load mood samples", err, "userID", user.ID)
	}

	samples := make([]analytics.MoodSample, len(entries))
	for i, entry := range entries {
		samples[i] = entry.ToMoodSample()
	}

	analysis := analytics.AnalyzeWeek(user.ID, day, samples)
	c.analysisCacheRepo.Set(ctx, &analysis)

	log.Info(
		"Weekly analysis computed",
		"userID",
		user.ID,
		"today",
		day.String(),
		"samples",
		len(samples),
		"anomalies",
		len(analysis.Anomalies),
	)

	return &analysis, nil
}
