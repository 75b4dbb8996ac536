package repositories

import (
	"context"

	"emoshown/internal/analytics"
	. "emoshown/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InteractionRepository interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, interactions []*ActivityInteraction) error
	CountsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]analytics.InteractionCount, error)
}

type interactionRepository struct {
	log logger.Logger
}

func NewInteractionRepository() InteractionRepository {
	return &interactionRepository{
		log: logger.New("interactionRepository"),
	}
}

func (r *interactionRepository) CreateBatch(
	ctx context.Context,
	tx *gorm.DB,
	interactions []*ActivityInteraction,
) error {
	log := r.log.Function("CreateBatch")

	if len(interactions) == 0 {
		return nil
	}

	if err := tx.WithContext(ctx).Create(interactions).Error; err != nil {
		return log.Err(
			"failed to record activity interactions",
			err,
			"userID",
			interactions[0].UserID,
			"count",
			len(interactions),
		)
	}

	return nil
}

type interactionCountRow struct {
	ActivityID  string
	Recommended int
	Likes       int
	Dislikes    int
}

// CountsByUser folds the user's interaction log into one count per activity.
func (r *interactionRepository) CountsByUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) ([]analytics.InteractionCount, error) {
	log := r.log.Function("CountsByUser")

	var rows []interactionCountRow
	err := tx.WithContext(ctx).
		Model(&ActivityInteraction{}).
		Select(
			"activity_id, "+
				"COUNT(*) FILTER (WHERE kind = ?) AS recommended, "+
				"COUNT(*) FILTER (WHERE kind = ?) AS likes, "+
				"COUNT(*) FILTER (WHERE kind = ?) AS dislikes",
			InteractionRecommended,
			InteractionLike,
			InteractionDislike,
		).
		Where("user_id = ?", userID).
		Group("activity_id").
		Scan(&rows).Error
	if err != nil {
		return nil, log.Err("failed to count activity interactions", err, "userID", userID)
	}

	counts := make([]analytics.InteractionCount, len(rows))
	for i, row := range rows {
		counts[i] = analytics.InteractionCount{
			UserID:      userID,
			ActivityID:  row.ActivityID,
			Recommended: row.Recommended,
			Likes:       row.Likes,
			Dislikes:    row.Dislikes,
		}
	}

	return counts, nil
}
