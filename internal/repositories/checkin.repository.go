package repositories

import (
	"context"

	. "emoshown/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CheckinRepository interface {
	Create(ctx context.Context, tx *gorm.DB, checkin *Checkin) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*Checkin, error)
}

type checkinRepository struct {
	log logger.Logger
}

func NewCheckinRepository() CheckinRepository {
	return &checkinRepository{
		log: logger.New("checkinRepository"),
	}
}

func (r *checkinRepository) Create(ctx context.Context, tx *gorm.DB, checkin *Checkin) error {
	log := r.log.Function("Create")

	if err := gorm.G[Checkin](tx).Create(ctx, checkin); err != nil {
		return log.Err("failed to create checkin", err, "userID", checkin.UserID)
	}

	return nil
}

func (r *checkinRepository) ListByUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	limit int,
) ([]*Checkin, error) {
	log := r.log.Function("ListByUser")

	checkins, err := gorm.G[*Checkin](tx).
		Where(Checkin{UserID: userID}).
		Order("timestamp DESC").
		Limit(limit).
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to list checkins", err, "userID", userID)
	}

	return checkins, nil
}
