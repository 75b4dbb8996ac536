package journalController

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"emoshown/config"
	"emoshown/internal/analytics"
	"emoshown/internal/database"
	. "emoshown/internal/models"
	"emoshown/internal/repositories"
	"emoshown/internal/services"
	"emoshown/internal/types"
	"emoshown/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

const (
	MaxContentLength = 5000
	DefaultListLimit = 30
	MaxListLimit     = 366
)

type CreateJournalRequest struct {
	Date     string  `json:"date"`
	Emotion  string  `json:"emotion"`
	Content  string  `json:"content"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

type JournalControllerInterface interface {
	CreateEntry(ctx context.Context, user *User, request *CreateJournalRequest) (*JournalEntryView, error)
	ListEntries(ctx context.Context, user *User, limit int) ([]JournalEntryView, error)
}

type JournalController struct {
	journalRepo       repositories.JournalRepository
	analysisCacheRepo repositories.AnalysisCacheRepository
	sentiment         services.SentimentAnalyzer
	transaction       services.Transactor
	db                database.DB
	Config            config.Config
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) JournalControllerInterface {
	return &JournalController{
		journalRepo:       repos.Journal,
		analysisCacheRepo: repos.AnalysisCache,
		sentiment:         services.Sentiment,
		transaction:       services.Transaction,
		db:                db,
		Config:            config,
	}
}

// CreateEntry stores the caller's entry for one day. The text is scored
// before anything is written; when scoring fails nothing is stored.
func (c *JournalController) CreateEntry(
	ctx context.Context,
	user *User,
	request *CreateJournalRequest,
) (*JournalEntryView, error) {
	log := logger.New("journalController").TraceFromContext(ctx).Function("CreateEntry")

	date, emotion, content, err := validateCreateRequest(request)
	if err != nil {
		return nil, log.Err("invalid journal entry", err, "userID", user.ID)
	}

	exists, err := c.journalRepo.ExistsForDate(ctx, c.db.SQL, user.ID, date)
	if err != nil {
		return nil, log.Err("failed to check for existing entry", err, "userID", user.ID)
	}
	if exists {
		return nil, log.Err(
			"journal entry already exists",
			fmt.Errorf("%w: an entry for %s already exists", types.ErrConflict, date),
			"userID",
			user.ID,
		)
	}

	sentiment, err := c.sentiment.Analyze(ctx, content, emotion)
	if err != nil {
		return nil, log.Err("failed to score journal entry", err, "userID", user.ID, "date", date)
	}

	entry := &JournalEntry{
		UserID:   user.ID,
		Date:     date.Time,
		Emotion:  string(emotion),
		Content:  content,
		ImageURL: request.ImageURL,
	}
	entry.SetSentiment(sentiment)

	err = c.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.journalRepo.Create(ctx, tx, entry)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, log.Err(
				"journal entry already exists",
				fmt.Errorf("%w: an entry for %s already exists", types.ErrConflict, date),
				"userID",
				user.ID,
			)
		}
		return nil, log.Err("failed to create journal entry", err, "userID", user.ID)
	}

	c.analysisCacheRepo.ClearUser(ctx, user.ID)

	log.Info(
		"Journal entry created",
		"userID",
		user.ID,
		"date",
		date.String(),
		"emotion",
		emotion,
		"compound",
		sentiment.Compound,
	)

	view := entry.ToView()
	return &view, nil
}

func (c *JournalController) ListEntries(
	ctx context.Context,
	user *User,
	limit int,
) ([]JournalEntryView, error) {
	log := logger.New("journalController").TraceFromContext(ctx).Function("ListEntries")

	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)

	entries, err := c.journalRepo.ListByUser(ctx, c.db.SQL, user.ID, limit)
	if err != nil {
		return nil, log.Err("failed to list journal entries", err, "userID", user.ID)
	}

	views := make([]JournalEntryView, len(entries))
	for i, entry := range entries {
		views[i] = entry.ToView()
	}

	return views, nil
}

func validateCreateRequest(
	request *CreateJournalRequest,
) (analytics.CalendarDate, analytics.Emotion, string, error) {
	if request == nil {
		return analytics.CalendarDate{}, "", "", fmt.Errorf("%w: request body is required", types.ErrValidation)
	}

	date, err := utils.ParseCalendarDate(request.Date)
	if err != nil {
		return analytics.CalendarDate{}, "", "", err
	}

	emotion, err := analytics.ParseEmotion(request.Emotion)
	if err != nil {
		return analytics.CalendarDate{}, "", "", err
	}

	content, _ := utils.CleanUTF8(strings.TrimSpace(request.Content))
	if content == "" {
		return analytics.CalendarDate{}, "", "", fmt.Errorf("%w: content is required", analytics.ErrIncompleteInput)
	}
	if len(content) > MaxContentLength {
		return analytics.CalendarDate{}, "", "", fmt.Errorf(
			"%w: content exceeds %d characters",
			types.ErrValidation,
			MaxContentLength,
		)
	}

	if request.ImageURL != nil {
		trimmed := strings.TrimSpace(*request.ImageURL)
		if trimmed == "" {
			request.ImageURL = nil
		} else {
			parsed, err := url.Parse(trimmed)
			if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
				return analytics.CalendarDate{}, "", "", fmt.Errorf("%w: imageUrl must be an http(s) URL", types.ErrValidation)
			}
			request.ImageURL = &trimmed
		}
	}

	return date, emotion, content, nil
}
