package analysisController

import (
	"context"
	"testing"
	"time"

	"emoshown/internal/analytics"
	. "emoshown/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeJournalRepo struct {
	entries   []*JournalEntry
	rangeFrom analytics.CalendarDate
	rangeTo   analytics.CalendarDate
	reads     int
}

func (f *fakeJournalRepo) Create(context.Context, *gorm.DB, *JournalEntry) error { return nil }

func (f *fakeJournalRepo) ExistsForDate(context.Context, *gorm.DB, uuid.UUID, analytics.CalendarDate) (bool, error) {
	return false, nil
}

func (f *fakeJournalRepo) ListByUser(context.Context, *gorm.DB, uuid.UUID, int) ([]*JournalEntry, error) {
	return nil, nil
}

func (f *fakeJournalRepo) GetByUserAndDateRange(
	_ context.Context,
	_ *gorm.DB,
	_ uuid.UUID,
	from analytics.CalendarDate,
	to analytics.CalendarDate,
) ([]*JournalEntry, error) {
	f.reads++
	f.rangeFrom = from
	f.rangeTo = to
	return f.entries, nil
}

func (f *fakeJournalRepo) DistinctUserIDs(context.Context, *gorm.DB) ([]uuid.UUID, error) {
	return nil, nil
}

type memoryAnalysisCache struct {
	stored map[string]*analytics.WeeklyAnalysis
}

func (m *memoryAnalysisCache) key(userID uuid.UUID, today analytics.CalendarDate) string {
	return userID.String() + ":" + today.String()
}

func (m *memoryAnalysisCache) Get(
	_ context.Context,
	userID uuid.UUID,
	today analytics.CalendarDate,
) (*analytics.WeeklyAnalysis, bool) {
	analysis, ok := m.stored[m.key(userID, today)]
	return analysis, ok
}

func (m *memoryAnalysisCache) Set(_ context.Context, analysis *analytics.WeeklyAnalysis) {
	m.stored[m.key(analysis.UserID, analysis.Today)] = analysis
}

func (m *memoryAnalysisCache) ClearUser(context.Context, uuid.UUID) {}

var thursday = analytics.NewCalendarDate(time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC))

func scoredEntry(userID uuid.UUID, date analytics.CalendarDate, emotion string, compound float64) *JournalEntry {
	entry := &JournalEntry{UserID: userID, Date: date.Time, Emotion: emotion}
	entry.SetSentiment(analytics.Sentiment{Compound: compound})
	return entry
}

func TestWeeklyAnalysis_ReadsWindowOnceAndCaches(t *testing.T) {
	user := &User{}
	user.ID = uuid.New()

	repo := &fakeJournalRepo{entries: []*JournalEntry{
		scoredEntry(user.ID, thursday.AddDays(-1), "sad", 0.5),
		scoredEntry(user.ID, thursday, "happy", 0.7),
	}}
	cache := &memoryAnalysisCache{stored: map[string]*analytics.WeeklyAnalysis{}}
	controller := &AnalysisController{
		journalRepo:       repo,
		analysisCacheRepo: cache,
		today:             func() analytics.CalendarDate { return thursday },
	}

	analysis, err := controller.WeeklyAnalysis(context.Background(), user, "")
	require.NoError(t, err)

	assert.Equal(t, "2024-03-01", repo.rangeFrom.String())
	assert.Equal(t, "2024-03-07", repo.rangeTo.String())
	require.Len(t, analysis.Timeline, analytics.WindowDays)
	assert.Equal(t, "Thu", analysis.Timeline[6].DayLabel)
	assert.Equal(t, analytics.EmotionHappy, analysis.MoodToday)
	assert.InDelta(t, 20.0, analysis.MoodProgress, 1e-9)

	// 0 -> 0.5 on Wednesday and 0.5 -> 0.7 on Thursday both reach the threshold.
	require.Len(t, analysis.Anomalies, 2)
	assert.Equal(t, "Wed", analysis.Anomalies[0].DayLabel)
	assert.InDelta(t, 20.0, analysis.Anomalies[1].DeltaPercent, 1e-9)

	again, err := controller.WeeklyAnalysis(context.Background(), user, "2024-03-07")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.reads)
	assert.Same(t, analysis, again)
}

func TestWeeklyAnalysis_ExplicitLocaleDate(t *testing.T) {
	user := &User{}
	user.ID = uuid.New()
	repo := &fakeJournalRepo{}
	controller := &AnalysisController{
		journalRepo:       repo,
		analysisCacheRepo: &memoryAnalysisCache{stored: map[string]*analytics.WeeklyAnalysis{}},
		today:             func() analytics.CalendarDate { return thursday },
	}

	analysis, err := controller.WeeklyAnalysis(context.Background(), user, "January 2, 2024")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-02", analysis.Today.String())
	assert.Empty(t, analysis.Anomalies)
	assert.Equal(t, analytics.EmotionUnset, analysis.MoodToday)
	assert.Equal(t, 0.0, analysis.MoodProgress)
}

func TestWeeklyAnalysis_InvalidDate(t *testing.T) {
	user := &User{}
	controller := &AnalysisController{
		journalRepo:       &fakeJournalRepo{},
		analysisCacheRepo: &memoryAnalysisCache{stored: map[string]*analytics.WeeklyAnalysis{}},
		today:             analytics.Today,
	}

	_, err := controller.WeeklyAnalysis(context.Background(), user, "not a date")
	assert.ErrorIs(t, err, analytics.ErrIncompleteInput)
}
