package repositories

import (
	"context"
	"errors"

	"emoshown/internal/constants"
	"emoshown/internal/database"
	. "emoshown/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type ActivityRepository interface {
	GetCatalog(ctx context.Context, tx *gorm.DB) ([]*Activity, error)
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*Activity, error)
	IncrementFeedback(ctx context.Context, tx *gorm.DB, id string, like bool) error
	ClearCatalogCache(ctx context.Context)
}

type activityRepository struct {
	cache database.CacheClient
	log   logger.Logger
}

func NewActivityRepository(cache database.CacheClient) ActivityRepository {
	return &activityRepository{
		cache: cache,
		log:   logger.New("activityRepository"),
	}
}

// GetCatalog returns the whole catalog in display order. Column j of every
// user-activity matrix lines up with entry j of this slice.
func (r *activityRepository) GetCatalog(ctx context.Context, tx *gorm.DB) ([]*Activity, error) {
	log := r.log.Function("GetCatalog")

	var cached []*Activity
	found, err := database.NewCacheBuilder(r.cache, constants.CatalogCacheKey).
		WithContext(ctx).
		Get(&cached)
	if err != nil {
		log.Warn("failed to get activity catalog from cache", "error", err)
	}

	if found && len(cached) > 0 {
		return cached, nil
	}

	activities, err := gorm.G[*Activity](tx).
		Order("position ASC").
		Order("id ASC").
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to load activity catalog", err)
	}

	err = database.NewCacheBuilder(r.cache, constants.CatalogCacheKey).
		WithContext(ctx).
		WithStruct(activities).
		WithTTL(constants.CatalogExpiry).
		Set()
	if err != nil {
		log.Warn("failed to cache activity catalog", "error", err)
	}

	return activities, nil
}

func (r *activityRepository) GetByID(ctx context.Context, tx *gorm.DB, id string) (*Activity, error) {
	log := r.log.Function("GetByID")

	activity, err := gorm.G[*Activity](tx).Where("id = ?", id).First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, log.Err("failed to get activity", err, "activityID", id)
	}

	return activity, nil
}

func (r *activityRepository) IncrementFeedback(
	ctx context.Context,
	tx *gorm.DB,
	id string,
	like bool,
) error {
	log := r.log.Function("IncrementFeedback")

	column := "dislikes"
	if like {
		column = "likes"
	}

	result := tx.WithContext(ctx).
		Model(&Activity{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if result.Error != nil {
		return log.Err("failed to record activity feedback", result.Error, "activityID", id)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.ClearCatalogCache(ctx)

	return nil
}

func (r *activityRepository) ClearCatalogCache(ctx context.Context) {
	err := database.NewCacheBuilder(r.cache, constants.CatalogCacheKey).
		WithContext(ctx).
		Delete()
	if err != nil {
		r.log.Function("ClearCatalogCache").Warn("failed to clear activity catalog cache", "error", err)
	}
}
