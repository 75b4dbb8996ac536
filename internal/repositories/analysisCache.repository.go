package repositories

import (
	"context"

	"emoshown/internal/analytics"
	"emoshown/internal/constants"
	"emoshown/internal/database"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

// AnalysisCacheRepository keeps computed weekly analyses in Valkey. Every key
// written for a user is tracked in a set so one journal write can drop them
// all. Failures are logged and reported as a miss.
type AnalysisCacheRepository interface {
	Get(ctx context.Context, userID uuid.UUID, today analytics.CalendarDate) (*analytics.WeeklyAnalysis, bool)
	Set(ctx context.Context, analysis *analytics.WeeklyAnalysis)
	ClearUser(ctx context.Context, userID uuid.UUID)
}

type analysisCacheRepository struct {
	cache database.CacheClient
	log   logger.Logger
}

func NewAnalysisCacheRepository(cache database.CacheClient) AnalysisCacheRepository {
	return &analysisCacheRepository{
		cache: cache,
		log:   logger.New("analysisCacheRepository"),
	}
}

func (r *analysisCacheRepository) Get(
	ctx context.Context,
	userID uuid.UUID,
	today analytics.CalendarDate,
) (*analytics.WeeklyAnalysis, bool) {
	var cached analytics.WeeklyAnalysis
	found, err := analysisKey(r.cache, userID, today).WithContext(ctx).Get(&cached)
	if err != nil {
		r.log.Function("Get").Warn("failed to read weekly analysis cache", "userID", userID, "error", err)
		return nil, false
	}

	if !found {
		return nil, false
	}

	return &cached, true
}

func (r *analysisCacheRepository) Set(ctx context.Context, analysis *analytics.WeeklyAnalysis) {
	log := r.log.Function("Set")

	builder := analysisKey(r.cache, analysis.UserID, analysis.Today).
		WithContext(ctx).
		WithStruct(analysis).
		WithTTL(constants.AnalysisExpiry)
	if err := builder.Set(); err != nil {
		log.Warn("failed to cache weekly analysis", "userID", analysis.UserID, "error", err)
		return
	}

	err := database.NewCacheBuilder(r.cache, analysis.UserID).
		WithContext(ctx).
		WithHash(constants.AnalysisKeysIndex).
		WithMember(builder.Key()).
		AddMember()
	if err != nil {
		log.Warn("failed to index weekly analysis key", "userID", analysis.UserID, "error", err)
	}
}

func (r *analysisCacheRepository) ClearUser(ctx context.Context, userID uuid.UUID) {
	err := database.NewCacheBuilder(r.cache, userID).
		WithContext(ctx).
		WithHash(constants.AnalysisKeysIndex).
		DeleteWithMembers()
	if err != nil {
		r.log.Function("ClearUser").Warn("failed to clear weekly analysis cache", "userID", userID, "error", err)
	}
}

func analysisKey(
	cache database.CacheClient,
	userID uuid.UUID,
	today analytics.CalendarDate,
) *database.CacheBuilder {
	return database.NewCacheBuilder(cache, userID).
		WithHash(constants.AnalysisPrefix).
		WithSuffix(today.String())
}
