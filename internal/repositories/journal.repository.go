package repositories

import (
	"context"
	"errors"

	"emoshown/internal/analytics"
	. "emoshown/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JournalRepository interface {
	Create(ctx context.Context, tx *gorm.DB, entry *JournalEntry) error
	ExistsForDate(
		ctx context.Context,
		tx *gorm.DB,
		userID uuid.UUID,
		date analytics.CalendarDate,
	) (bool, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*JournalEntry, error)
	GetByUserAndDateRange(
		ctx context.Context,
		tx *gorm.DB,
		userID uuid.UUID,
		from analytics.CalendarDate,
		to analytics.CalendarDate,
	) ([]*JournalEntry, error)
	DistinctUserIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error)
}

type journalRepository struct {
	log logger.Logger
}

func NewJournalRepository() JournalRepository {
	return &journalRepository{
		log: logger.New("journalRepository"),
	}
}

// Create inserts a new entry. A second entry for the same user and day fails
// with gorm.ErrDuplicatedKey.
func (r *journalRepository) Create(ctx context.Context, tx *gorm.DB, entry *JournalEntry) error {
	log := r.log.Function("Create")

	err := gorm.G[JournalEntry](tx).Create(ctx, entry)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		return log.Err(
			"failed to create journal entry",
			err,
			"userID",
			entry.UserID,
			"date",
			entry.Date,
		)
	}

	return nil
}

func (r *journalRepository) ExistsForDate(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	date analytics.CalendarDate,
) (bool, error) {
	log := r.log.Function("ExistsForDate")

	var count int64
	err := tx.WithContext(ctx).
		Model(&JournalEntry{}).
		Where("user_id = ? AND date = ?", userID, date.String()).
		Count(&count).Error
	if err != nil {
		return false, log.Err("failed to check journal entry", err, "userID", userID, "date", date)
	}

	return count > 0, nil
}

// ListByUser returns entries newest first. A limit of zero or less reads them all.
func (r *journalRepository) ListByUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	limit int,
) ([]*JournalEntry, error) {
	log := r.log.Function("ListByUser")

	query := tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var entries []*JournalEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, log.Err("failed to list journal entries", err, "userID", userID)
	}

	return entries, nil
}

// GetByUserAndDateRange reads every entry in [from, to] in one query, oldest
// first.
func (r *journalRepository) GetByUserAndDateRange(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	from analytics.CalendarDate,
	to analytics.CalendarDate,
) ([]*JournalEntry, error) {
	log := r.log.Function("GetByUserAndDateRange")

	entries, err := gorm.G[*JournalEntry](tx).
		Where(JournalEntry{UserID: userID}).
		Where("date BETWEEN ? AND ?", from.String(), to.String()).
		Order("date ASC").
		Find(ctx)
	if err != nil {
		return nil, log.Err(
			"failed to get journal entries in range",
			err,
			"userID",
			userID,
			"from",
			from,
			"to",
			to,
		)
	}

	return entries, nil
}

func (r *journalRepository) DistinctUserIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error) {
	log := r.log.Function("DistinctUserIDs")

	var userIDs []uuid.UUID
	err := tx.WithContext(ctx).
		Model(&JournalEntry{}).
		Distinct("user_id").
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, log.Err("failed to list journaling users", err)
	}

	return userIDs, nil
}
