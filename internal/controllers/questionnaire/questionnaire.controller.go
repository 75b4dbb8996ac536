package questionnaireController

import (
	"context"
	"fmt"
	"strings"
	"time"

	"emoshown/config"
	"emoshown/internal/analytics"
	"emoshown/internal/database"
	. "emoshown/internal/models"
	"emoshown/internal/repositories"
	"emoshown/internal/services"
	"emoshown/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// ErrCheckinNotSaved is returned alongside a scored response when the insert
// failed. Callers still hand the scores back to the user.
var ErrCheckinNotSaved = fmt.Errorf("%w: checkin was not saved", analytics.ErrUpstreamUnavailable)

type SubmitQuestionnaireRequest struct {
	Answers  []int  `json:"answers"`
	FullName string `json:"fullName,omitempty"`
}

type QuestionnaireResponse struct {
	Result analytics.QuestionnaireResult `json:"result"`
	Record analytics.CheckinRecord       `json:"record"`
	Saved  bool                          `json:"saved"`
}

type QuestionnaireControllerInterface interface {
	Items() []analytics.QuestionnaireItem
	Submit(ctx context.Context, user *User, request *SubmitQuestionnaireRequest) (*QuestionnaireResponse, error)
	ListCheckins(ctx context.Context, user *User, limit int) ([]analytics.CheckinRecord, error)
}

type QuestionnaireController struct {
	checkinRepo repositories.CheckinRepository
	transaction services.Transactor
	db          database.DB
	Config      config.Config
	now         func() time.Time
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) QuestionnaireControllerInterface {
	return &QuestionnaireController{
		checkinRepo: repos.Checkin,
		transaction: services.Transaction,
		db:          db,
		Config:      config,
		now:         time.Now,
	}
}

func (c *QuestionnaireController) Items() []analytics.QuestionnaireItem {
	return analytics.QuestionnaireItems[:]
}

// Submit scores a full administration and writes one checkin. A failed write
// is not retried; the response then carries Saved=false and ErrCheckinNotSaved.
func (c *QuestionnaireController) Submit(
	ctx context.Context,
	user *User,
	request *SubmitQuestionnaireRequest,
) (*QuestionnaireResponse, error) {
	log := logger.New("questionnaireController").TraceFromContext(ctx).Function("Submit")

	if request == nil {
		return nil, log.Err("invalid questionnaire", fmt.Errorf("%w: request body is required", types.ErrValidation))
	}

	result, err := analytics.ScoreQuestionnaire(request.Answers)
	if err != nil {
		return nil, log.Err("failed to score questionnaire", err, "userID", user.ID)
	}

	fullName := strings.TrimSpace(request.FullName)
	if fullName == "" {
		fullName = user.FullName
	}

	record := analytics.NewCheckinRecord(user.AuthUserID, fullName, result, c.now().UTC())
	response := &QuestionnaireResponse{Result: result, Record: record}

	checkin := NewCheckin(user.ID, record, request.Answers)
	err = c.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.checkinRepo.Create(ctx, tx, checkin)
	})
	if err != nil {
		return response, log.Err(
			"failed to persist checkin",
			fmt.Errorf("%w: %v", ErrCheckinNotSaved, err),
			"userID",
			user.ID,
			"depression",
			record.DepressionScore,
			"anxiety",
			record.AnxietyScore,
			"stress",
			record.StressScore,
		)
	}

	response.Saved = true

	log.Info(
		"Checkin recorded",
		"userID",
		user.ID,
		"depressionSeverity",
		record.DepressionSeverity,
		"anxietySeverity",
		record.AnxietySeverity,
		"stressSeverity",
		record.StressSeverity,
	)

	return response, nil
}

func (c *QuestionnaireController) ListCheckins(
	ctx context.Context,
	user *User,
	limit int,
) ([]analytics.CheckinRecord, error) {
	log := logger.New("questionnaireController").TraceFromContext(ctx).Function("ListCheckins")

	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)

	checkins, err := c.checkinRepo.ListByUser(ctx, c.db.SQL, user.ID, limit)
	if err != nil {
		return nil, log.Err("failed to list checkins", err, "userID", user.ID)
	}

	records := make([]analytics.CheckinRecord, len(checkins))
	for i, checkin := range checkins {
		records[i] = checkin.ToRecord()
	}

	return records, nil
}
