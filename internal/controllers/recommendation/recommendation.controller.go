package recommendationController

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"emoshown/config"
	"emoshown/internal/analytics"
	"emoshown/internal/database"
	. "emoshown/internal/models"
	"emoshown/internal/repositories"
	"emoshown/internal/services"
	"emoshown/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecommendationResponse struct {
	Strategy        analytics.StrategyName     `json:"strategy"`
	Sentiment       *analytics.Sentiment       `json:"sentiment,omitempty"`
	Recommendations []analytics.ScoredActivity `json:"recommendations"`
}

type FeedbackRequest struct {
	ActivityID string `json:"activityId"`
	Like       bool   `json:"like"`
	Type       string `json:"type,omitempty"`
}

type RecommendationControllerInterface interface {
	Recommend(ctx context.Context, user *User, strategy string) (*RecommendationResponse, error)
	RecommendForUser(
		ctx context.Context,
		userID uuid.UUID,
		strategy analytics.StrategyName,
	) (*RecommendationResponse, error)
	Feedback(ctx context.Context, user *User, request *FeedbackRequest) (*Activity, error)
	ListActivities(ctx context.Context, kind string) ([]*Activity, error)
}

type RecommendationController struct {
	activityRepo      repositories.ActivityRepository
	interactionRepo   repositories.InteractionRepository
	journalRepo       repositories.JournalRepository
	transaction       services.Transactor
	db                database.DB
	Config            config.Config
	factorizationOpts []analytics.FactorizationOption
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) RecommendationControllerInterface {
	return &RecommendationController{
		activityRepo:    repos.Activity,
		interactionRepo: repos.Interaction,
		journalRepo:     repos.Journal,
		transaction:     services.Transaction,
		db:              db,
		Config:          config,
	}
}

// Recommend runs one named strategy for the caller. A blank name falls back to
// the configured default.
func (c *RecommendationController) Recommend(
	ctx context.Context,
	user *User,
	strategy string,
) (*RecommendationResponse, error) {
	log := logger.New("recommendationController").TraceFromContext(ctx).Function("Recommend")

	name := c.Config.DefaultStrategy()
	if strings.TrimSpace(strategy) != "" {
		parsed, err := analytics.ParseStrategyName(strategy)
		if err != nil {
			return nil, log.Err("unknown strategy requested", err, "userID", user.ID)
		}
		name = parsed
	}

	return c.RecommendForUser(ctx, user.ID, name)
}

func (c *RecommendationController) RecommendForUser(
	ctx context.Context,
	userID uuid.UUID,
	name analytics.StrategyName,
) (*RecommendationResponse, error) {
	log := logger.New("recommendationController").TraceFromContext(ctx).Function("RecommendForUser")

	strategy, err := analytics.NewStrategy(name, c.factorizationOpts...)
	if err != nil {
		return nil, log.Err("failed to build strategy", err, "strategy", name)
	}

	activities, err := c.activityRepo.GetCatalog(ctx, c.db.SQL)
	if err != nil {
		return nil, log.Err("failed to load activity catalog", err)
	}

	catalog := ToCatalog(activities)
	input := analytics.RecommendationInput{Catalog: catalog}
	response := &RecommendationResponse{Strategy: name}

	switch name {
	case analytics.StrategySentiment:
		sample, found, err := c.latestSample(ctx, userID)
		if err != nil {
			return nil, log.Err("failed to load latest mood sample", err, "userID", userID)
		}
		if found {
			input.Sentiment = sample.Sentiment
		}
		response.Sentiment = &input.Sentiment

	default:
		input.Catalog = analytics.FilterByKind(catalog, analytics.KindActivity)

		counts, err := c.interactionRepo.CountsByUser(ctx, c.db.SQL, userID)
		if err != nil {
			return nil, log.Err("failed to load interaction counts", err, "userID", userID)
		}
		input.Matrix, input.TargetRow = analytics.BuildUserActivityMatrix(input.Catalog, counts)

		if name == analytics.StrategyWeighted {
			input.Sentiment, err = c.averageSentiment(ctx, userID)
			if err != nil {
				return nil, log.Err("failed to load mood samples", err, "userID", userID)
			}
			response.Sentiment = &input.Sentiment
		}
	}

	recommendations, err := strategy.Recommend(input)
	if err != nil {
		return nil, log.Err("failed to score recommendations", err, "userID", userID, "strategy", name)
	}
	response.Recommendations = recommendations

	if name != analytics.StrategySentiment {
		c.recordRecommended(ctx, userID, name, recommendations)
	}

	log.Info(
		"Recommendations computed",
		"userID",
		userID,
		"strategy",
		name,
		"count",
		len(recommendations),
	)

	return response, nil
}

// Feedback records a like or dislike and bumps the activity's counters.
func (c *RecommendationController) Feedback(
	ctx context.Context,
	user *User,
	request *FeedbackRequest,
) (*Activity, error) {
	log := logger.New("recommendationController").TraceFromContext(ctx).Function("Feedback")

	if request == nil || strings.TrimSpace(request.ActivityID) == "" {
		return nil, log.Err("invalid feedback", fmt.Errorf("%w: activityId is required", types.ErrValidation))
	}
	activityID := strings.TrimSpace(request.ActivityID)

	activity, err := c.activityRepo.GetByID(ctx, c.db.SQL, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.Err(
				"activity not found",
				fmt.Errorf("%w: activity %q", types.ErrNotFound, activityID),
			)
		}
		return nil, log.Err("failed to load activity", err, "activityID", activityID)
	}

	if request.Type != "" && !strings.EqualFold(request.Type, activity.Kind) {
		return nil, log.Err(
			"feedback type mismatch",
			fmt.Errorf("%w: %q is a %s, not a %s", types.ErrValidation, activityID, activity.Kind, request.Type),
		)
	}

	kind := InteractionDislike
	if request.Like {
		kind = InteractionLike
	}

	err = c.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := c.activityRepo.IncrementFeedback(ctx, tx, activityID, request.Like); err != nil {
			return err
		}
		return c.interactionRepo.CreateBatch(ctx, tx, []*ActivityInteraction{{
			UserID:     user.ID,
			ActivityID: activityID,
			Kind:       kind,
		}})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.Err(
				"activity not found",
				fmt.Errorf("%w: activity %q", types.ErrNotFound, activityID),
			)
		}
		return nil, log.Err("failed to record feedback", err, "userID", user.ID, "activityID", activityID)
	}

	if request.Like {
		activity.Likes++
	} else {
		activity.Dislikes++
	}

	log.Info("Activity feedback recorded", "userID", user.ID, "activityID", activityID, "kind", kind)

	return activity, nil
}

// ListActivities returns the catalog in display order, optionally narrowed to
// one kind.
func (c *RecommendationController) ListActivities(ctx context.Context, kind string) ([]*Activity, error) {
	log := logger.New("recommendationController").TraceFromContext(ctx).Function("ListActivities")

	var filter analytics.ActivityKind
	if kind = strings.ToLower(strings.TrimSpace(kind)); kind != "" {
		filter = analytics.ActivityKind(kind)
		if filter != analytics.KindActivity && filter != analytics.KindResource {
			return nil, log.Err("invalid activity kind", fmt.Errorf("%w: unknown kind %q", types.ErrValidation, kind))
		}
	}

	activities, err := c.activityRepo.GetCatalog(ctx, c.db.SQL)
	if err != nil {
		return nil, log.Err("failed to load activity catalog", err)
	}

	if filter == "" {
		return activities, nil
	}

	filtered := make([]*Activity, 0, len(activities))
	for _, activity := range activities {
		if analytics.ActivityKind(activity.Kind) == filter {
			filtered = append(filtered, activity)
		}
	}

	return filtered, nil
}

func (c *RecommendationController) latestSample(
	ctx context.Context,
	userID uuid.UUID,
) (analytics.MoodSample, bool, error) {
	entries, err := c.journalRepo.ListByUser(ctx, c.db.SQL, userID, 1)
	if err != nil {
		return analytics.MoodSample{}, false, err
	}

	sample, found := analytics.LatestSample(toSamples(entries))
	return sample, found, nil
}

// averageSentiment is zero when the user has no scored entries.
func (c *RecommendationController) averageSentiment(
	ctx context.Context,
	userID uuid.UUID,
) (analytics.Sentiment, error) {
	entries, err := c.journalRepo.ListByUser(ctx, c.db.SQL, userID, 0)
	if err != nil {
		return analytics.Sentiment{}, err
	}

	average, _ := analytics.AverageSentiment(toSamples(entries))
	return average, nil
}

// recordRecommended logs a failed write and keeps the computed ranking.
func (c *RecommendationController) recordRecommended(
	ctx context.Context,
	userID uuid.UUID,
	name analytics.StrategyName,
	recommendations []analytics.ScoredActivity,
) {
	if len(recommendations) == 0 {
		return
	}

	interactions := make([]*ActivityInteraction, len(recommendations))
	for i, recommendation := range recommendations {
		interactions[i] = &ActivityInteraction{
			UserID:     userID,
			ActivityID: recommendation.Activity.ID,
			Kind:       InteractionRecommended,
			Strategy:   string(name),
		}
	}

	err := c.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.interactionRepo.CreateBatch(ctx, tx, interactions)
	})
	if err != nil {
		logger.New("recommendationController").
			TraceFromContext(ctx).
			Function("recordRecommended").
			Warn("failed to record recommended interactions", "userID", userID, "error", err)
	}
}

func toSamples(entries []*JournalEntry) []analytics.MoodSample {
	samples := make([]analytics.MoodSample, len(entries))
	for i, entry := range entries {
		samples[i] = entry.ToMoodSample()
	}
	return samples
}
