package recommendationController

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"emoshown/internal/analytics"
	. "emoshown/internal/models"
	"emoshown/internal/types"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fakeActivityRepo struct {
	catalog   []*Activity
	increment map[string]int
}

func (f *fakeActivityRepo) GetCatalog(context.Context, *gorm.DB) ([]*Activity, error) {
	return f.catalog, nil
}

func (f *fakeActivityRepo) GetByID(_ context.Context, _ *gorm.DB, id string) (*Activity, error) {
	for _, activity := range f.catalog {
		if activity.ID == id {
			copied := *activity
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeActivityRepo) IncrementFeedback(_ context.Context, _ *gorm.DB, id string, like bool) error {
	if like {
		f.increment[id]++
	} else {
		f.increment[id]--
	}
	return nil
}

func (f *fakeActivityRepo) ClearCatalogCache(context.Context) {}

type fakeInteractionRepo struct {
	counts   []analytics.InteractionCount
	recorded []*ActivityInteraction
}

func (f *fakeInteractionRepo) CreateBatch(_ context.Context, _ *gorm.DB, interactions []*ActivityInteraction) error {
	f.recorded = append(f.recorded, interactions...)
	return nil
}

func (f *fakeInteractionRepo) CountsByUser(context.Context, *gorm.DB, uuid.UUID) ([]analytics.InteractionCount, error) {
	return f.counts, nil
}

type fakeJournalRepo struct {
	entries []*JournalEntry
	limits  []int
}

func (f *fakeJournalRepo) Create(context.Context, *gorm.DB, *JournalEntry) error { return nil }

func (f *fakeJournalRepo) ExistsForDate(context.Context, *gorm.DB, uuid.UUID, analytics.CalendarDate) (bool, error) {
	return false, nil
}

func (f *fakeJournalRepo) ListByUser(_ context.Context, _ *gorm.DB, _ uuid.UUID, limit int) ([]*JournalEntry, error) {
	f.limits = append(f.limits, limit)
	if limit > 0 && limit < len(f.entries) {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

func (f *fakeJournalRepo) GetByUserAndDateRange(
	context.Context,
	*gorm.DB,
	uuid.UUID,
	analytics.CalendarDate,
	analytics.CalendarDate,
) ([]*JournalEntry, error) {
	return nil, nil
}

func (f *fakeJournalRepo) DistinctUserIDs(context.Context, *gorm.DB) ([]uuid.UUID, error) {
	return nil, nil
}

type inlineTransactor struct{}

func (inlineTransactor) Execute(ctx context.Context, fn func(context.Context, *gorm.DB) error) error {
	return fn(ctx, nil)
}

func catalogEntry(position int, id string, kind analytics.ActivityKind, tags ...string) *Activity {
	activity := &Activity{
		Position:        position,
		Kind:            string(kind),
		Title:           id,
		EmotionalImpact: datatypes.JSONSlice[string](tags),
	}
	activity.ID = id
	return activity
}

func seededCatalog() []*Activity {
	return []*Activity{
		catalogEntry(1, "nature-walk", analytics.KindActivity, "positive", "neutral"),
		catalogEntry(2, "new-workout", analytics.KindActivity, "positive"),
		catalogEntry(3, "call-friend", analytics.KindActivity, "negative", "neutral"),
		catalogEntry(4, "read-book", analytics.KindActivity, "neutral"),
		catalogEntry(5, "watch-movie", analytics.KindActivity, "positive"),
		catalogEntry(6, "support-group", analytics.KindActivity, "negative"),
		catalogEntry(7, "hopeline", analytics.KindResource, "negative"),
	}
}

func journalEntry(daysAgo int, compound float64) *JournalEntry {
	entry := &JournalEntry{
		Date:    time.Date(2024, time.March, 7-daysAgo, 0, 0, 0, 0, time.UTC),
		Emotion: "calm",
	}
	entry.SetSentiment(analytics.Sentiment{Compound: compound})
	return entry
}

type fixture struct {
	controller   *RecommendationController
	activities   *fakeActivityRepo
	interactions *fakeInteractionRepo
	journal      *fakeJournalRepo
}

func newFixture() fixture {
	activities := &fakeActivityRepo{catalog: seededCatalog(), increment: map[string]int{}}
	interactions := &fakeInteractionRepo{}
	journal := &fakeJournalRepo{}
	return fixture{
		controller: &RecommendationController{
			activityRepo:    activities,
			interactionRepo: interactions,
			journalRepo:     journal,
			transaction:     inlineTransactor{},
			factorizationOpts: []analytics.FactorizationOption{
				analytics.WithRand(rand.New(rand.NewSource(7))),
			},
		},
		activities:   activities,
		interactions: interactions,
		journal:      journal,
	}
}

func testUser() *User {
	user := &User{AuthUserID: "uid"}
	user.ID = uuid.New()
	return user
}

func ids(recommendations []analytics.ScoredActivity) []string {
	result := make([]string, len(recommendations))
	for i, recommendation := range recommendations {
		result[i] = recommendation.Activity.ID
	}
	return result
}

func TestRecommend_WeightedColdStartUsesBaselineAndRecords(t *testing.T) {
	f := newFixture()
	f.journal.entries = []*JournalEntry{journalEntry(0, 0.8), journalEntry(1, 0.2)}
	user := testUser()

	response, err := f.controller.Recommend(context.Background(), user, "")
	require.NoError(t, err)

	assert.Equal(t, analytics.StrategyWeighted, response.Strategy)
	assert.Equal(t, []string{"nature-walk", "support-group", "read-book"}, ids(response.Recommendations))
	require.NotNil(t, response.Sentiment)
	assert.InDelta(t, 0.5, response.Sentiment.Compound, 1e-9)
	assert.InDelta(t, 6.0, *response.Recommendations[0].Score, 1e-9)
	assert.Equal(t, []int{0}, f.journal.limits)

	require.Len(t, f.interactions.recorded, 3)
	for _, interaction := range f.interactions.recorded {
		assert.Equal(t, user.ID, interaction.UserID)
		assert.Equal(t, InteractionRecommended, interaction.Kind)
		assert.Equal(t, "weighted", interaction.Strategy)
	}
}

func TestRecommend_WeightedUsesInteractionHistory(t *testing.T) {
	f := newFixture()
	f.interactions.counts = []analytics.InteractionCount{
		{ActivityID: "watch-movie", Recommended: 2, Likes: 3},
		{ActivityID: "new-workout", Recommended: 1},
		{ActivityID: "read-book", Recommended: 1, Dislikes: 4},
	}

	response, err := f.controller.Recommend(context.Background(), testUser(), "weighted")
	require.NoError(t, err)

	assert.Equal(t, []string{"watch-movie", "new-workout", "nature-walk"}, ids(response.Recommendations))
}

func TestRecommend_SentimentFilterUsesLatestSample(t *testing.T) {
	f := newFixture()
	f.journal.entries = []*JournalEntry{journalEntry(0, -0.6), journalEntry(1, 0.9)}

	response, err := f.controller.Recommend(context.Background(), testUser(), "Sentiment")
	require.NoError(t, err)

	assert.Equal(t, []string{"call-friend", "support-group", "hopeline"}, ids(response.Recommendations))
	assert.Nil(t, response.Recommendations[0].Score)
	assert.InDelta(t, -0.6, response.Sentiment.Compound, 1e-9)
	assert.Equal(t, []int{1}, f.journal.limits)
	assert.Empty(t, f.interactions.recorded)
}

func TestRecommend_FactorizationExcludesResources(t *testing.T) {
	f := newFixture()

	response, err := f.controller.Recommend(context.Background(), testUser(), "factorization")
	require.NoError(t, err)

	require.Len(t, response.Recommendations, analytics.TopRecommendations)
	assert.Nil(t, response.Sentiment)
	assert.NotContains(t, ids(response.Recommendations), "hopeline")
	assert.Len(t, f.interactions.recorded, analytics.TopRecommendations)
}

func TestRecommend_UnknownStrategy(t *testing.T) {
	f := newFixture()

	_, err := f.controller.Recommend(context.Background(), testUser(), "hybrid")
	assert.ErrorIs(t, err, analytics.ErrUnknownStrategy)
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	f := newFixture()
	f.activities.catalog = nil

	_, err := f.controller.Recommend(context.Background(), testUser(), "sentiment")
	assert.ErrorIs(t, err, analytics.ErrIncompleteInput)
}

func TestFeedback(t *testing.T) {
	f := newFixture()
	user := testUser()

	activity, err := f.controller.Feedback(context.Background(), user, &FeedbackRequest{ActivityID: "read-book", Like: true})
	require.NoError(t, err)
	assert.Equal(t, 1, activity.Likes)
	assert.Equal(t, 1, f.activities.increment["read-book"])
	require.Len(t, f.interactions.recorded, 1)
	assert.Equal(t, InteractionLike, f.interactions.recorded[0].Kind)

	activity, err = f.controller.Feedback(context.Background(), user, &FeedbackRequest{ActivityID: "hopeline", Type: "resource"})
	require.NoError(t, err)
	assert.Equal(t, 1, activity.Dislikes)
	assert.Equal(t, InteractionDislike, f.interactions.recorded[1].Kind)
}

func TestFeedback_Errors(t *testing.T) {
	f := newFixture()

	_, err := f.controller.Feedback(context.Background(), testUser(), &FeedbackRequest{ActivityID: "missing"})
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = f.controller.Feedback(context.Background(), testUser(), &FeedbackRequest{})
	assert.ErrorIs(t, err, types.ErrValidation)

	_, err = f.controller.Feedback(context.Background(), testUser(), &FeedbackRequest{ActivityID: "read-book", Type: "resource"})
	assert.ErrorIs(t, err, types.ErrValidation)

	assert.Empty(t, f.interactions.recorded)
}

func TestListActivities(t *testing.T) {
	f := newFixture()

	all, err := f.controller.ListActivities(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 7)

	resources, err := f.controller.ListActivities(context.Background(), "Resource")
	require.NoError(t, err)
	require.Len(t, resources, 1)
	assert.Equal(t, "hopeline", resources[0].ID)

	_, err = f.controller.ListActivities(context.Background(), "podcast")
	assert.ErrorIs(t, err, types.ErrValidation)
}
