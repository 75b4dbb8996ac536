package questionnaireController

import (
	"context"
	"errors"
	"testing"
	"time"

	"emoshown/internal/analytics"
	. "emoshown/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeCheckinRepo struct {
	created   []*Checkin
	createErr error
	listed    []*Checkin
}

func (f *fakeCheckinRepo) Create(_ context.Context, _ *gorm.DB, checkin *Checkin) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, checkin)
	return nil
}

func (f *fakeCheckinRepo) ListByUser(context.Context, *gorm.DB, uuid.UUID, int) ([]*Checkin, error) {
	return f.listed, nil
}

type inlineTransactor struct{}

func (inlineTransactor) Execute(ctx context.Context, fn func(context.Context, *gorm.DB) error) error {
	return fn(ctx, nil)
}

var fixedNow = time.Date(2024, time.March, 7, 8, 30, 0, 0, time.UTC)

func newTestController(repo *fakeCheckinRepo) *QuestionnaireController {
	return &QuestionnaireController{
		checkinRepo: repo,
		transaction: inlineTransactor{},
		now:         func() time.Time { return fixedNow },
	}
}

func testUser(fullName string) *User {
	user := &User{AuthUserID: "firebase-uid", FullName: fullName}
	user.ID = uuid.New()
	return user
}

func answersOf(value int) []int {
	answers := make([]int, analytics.QuestionCount)
	for i := range answers {
		answers[i] = value
	}
	return answers
}

func TestSubmit_ScoresAndPersistsOnce(t *testing.T) {
	repo := &fakeCheckinRepo{}
	controller := newTestController(repo)
	user := testUser("Ana Cruz")

	response, err := controller.Submit(context.Background(), user, &SubmitQuestionnaireRequest{Answers: answersOf(1)})
	require.NoError(t, err)

	assert.True(t, response.Saved)
	assert.Equal(t, 14, response.Result.Depression.RawScore)
	assert.Equal(t, analytics.SeverityModerate, response.Record.DepressionSeverity)
	assert.Equal(t, analytics.SeverityModerate, response.Record.AnxietySeverity)
	assert.Equal(t, analytics.SeverityNormal, response.Record.StressSeverity)
	assert.Equal(t, "firebase-uid", response.Record.UID)
	assert.Equal(t, "Ana Cruz", response.Record.FullName)
	assert.Equal(t, fixedNow, response.Record.Timestamp)

	require.Len(t, repo.created, 1)
	assert.Equal(t, user.ID, repo.created[0].UserID)
	assert.Equal(t, []int(answersOf(1)), []int(repo.created[0].Answers))
}

func TestSubmit_NameFallsBack(t *testing.T) {
	repo := &fakeCheckinRepo{}
	controller := newTestController(repo)

	response, err := controller.Submit(
		context.Background(),
		testUser(""),
		&SubmitQuestionnaireRequest{Answers: answersOf(0)},
	)
	require.NoError(t, err)
	assert.Equal(t, analytics.AnonymousName, response.Record.FullName)

	response, err = controller.Submit(
		context.Background(),
		testUser("Stored Name"),
		&SubmitQuestionnaireRequest{Answers: answersOf(0), FullName: "Given Name"},
	)
	require.NoError(t, err)
	assert.Equal(t, "Given Name", response.Record.FullName)
}

func TestSubmit_IncompleteAnswersStoreNothing(t *testing.T) {
	repo := &fakeCheckinRepo{}
	controller := newTestController(repo)

	answers := answersOf(2)
	answers[4] = analytics.Unanswered

	response, err := controller.Submit(context.Background(), testUser("x"), &SubmitQuestionnaireRequest{Answers: answers})

	assert.Nil(t, response)
	assert.ErrorIs(t, err, analytics.ErrIncompleteInput)
	assert.Empty(t, repo.created)
}

func TestSubmit_PersistFailureKeepsScores(t *testing.T) {
	repo := &fakeCheckinRepo{createErr: errors.New("connection reset")}
	controller := newTestController(repo)

	response, err := controller.Submit(context.Background(), testUser("x"), &SubmitQuestionnaireRequest{Answers: answersOf(3)})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCheckinNotSaved)
	assert.ErrorIs(t, err, analytics.ErrUpstreamUnavailable)
	require.NotNil(t, response)
	assert.False(t, response.Saved)
	assert.Equal(t, 42, response.Result.Depression.RawScore)
	assert.Equal(t, analytics.SeverityExtremelySevere, response.Result.Stress.Severity)
}

func TestListCheckins_MapsRecords(t *testing.T) {
	record := analytics.NewCheckinRecord("uid", "Ana", analytics.QuestionnaireResult{}, fixedNow)
	repo := &fakeCheckinRepo{listed: []*Checkin{NewCheckin(uuid.New(), record, answersOf(0))}}
	controller := newTestController(repo)

	records, err := controller.ListCheckins(context.Background(), testUser("Ana"), 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, record, records[0])
}

func TestItems(t *testing.T) {
	controller := newTestController(&fakeCheckinRepo{})
	items := controller.Items()
	require.Len(t, items, analytics.QuestionCount)
	assert.Equal(t, 1, items[0].Number)
}
