package repositories

import (
	"context"
	"errors"

	"emoshown/internal/constants"
	"emoshown/internal/database"
	. "emoshown/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*User, error)
	GetByAuthUserID(ctx context.Context, tx *gorm.DB, authUserID string) (*User, error)
	FindOrCreate(ctx context.Context, tx *gorm.DB, claims *User) (*User, error)
}

type userRepository struct {
	cache database.CacheClient
	log   logger.Logger
}

func NewUserRepository(cache database.CacheClient) UserRepository {
	return &userRepository{
		cache: cache,
		log:   logger.New("userRepository"),
	}
}

func (r *userRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*User, error) {
	log := r.log.Function("GetByID")

	user, err := gorm.G[*User](tx).Where("id = ?", id).First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, log.Err("failed to get user by id", err, "id", id)
	}

	return user, nil
}

func (r *userRepository) GetByAuthUserID(
	ctx context.Context,
	tx *gorm.DB,
	authUserID string,
) (*User, error) {
	log := r.log.Function("GetByAuthUserID")

	var cached User
	found, err := database.NewCacheBuilder(r.cache, authUserID).
		WithContext(ctx).
		WithHash(constants.UserCachePrefix).
		Get(&cached)
	if err != nil {
		log.Warn("failed to get user from cache", "authUserID", authUserID, "error", err)
	}

	if found {
		return &cached, nil
	}

	user, err := gorm.G[*User](tx).Where("auth_user_id = ?", authUserID).First(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, log.Err("failed to get user by auth user id", err, "authUserID", authUserID)
	}

	r.addUserToCache(ctx, user)

	return user, nil
}

// FindOrCreate resolves the caller of an authenticated request. First sight of
// an auth uid creates the user. Later sights refresh the profile from claims.
func (r *userRepository) FindOrCreate(ctx context.Context, tx *gorm.DB, claims *User) (*User, error) {
	log := r.log.Function("FindOrCreate")

	existing, err := r.GetByAuthUserID(ctx, tx, claims.AuthUserID)
	if err == nil {
		if claimsChanged(existing, claims) {
			existing.UpdateFromClaims(claims.FullName, claims.Email)
			if err := tx.WithContext(ctx).Save(existing).Error; err != nil {
				log.Warn("failed to refresh user profile", "userID", existing.ID, "error", err)
			}
			r.clearUserCache(ctx, existing.AuthUserID)
		}
		return existing, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &User{
		AuthUserID: claims.AuthUserID,
		FullName:   claims.FullName,
		Email:      claims.Email,
	}
	user.UpdateFromClaims(claims.FullName, claims.Email)

	if err := gorm.G[User](tx).Create(ctx, user); err != nil {
		return nil, log.Err("failed to create user", err, "authUserID", claims.AuthUserID)
	}

	log.Info("Created user on first sign in", "userID", user.ID)
	r.addUserToCache(ctx, user)

	return user, nil
}

func claimsChanged(existing *User, claims *User) bool {
	if claims.FullName != "" && claims.FullName != existing.FullName {
		return true
	}
	if claims.Email != nil && *claims.Email != "" {
		return existing.Email == nil || *existing.Email != *claims.Email
	}
	return false
}

func (r *userRepository) addUserToCache(ctx context.Context, user *User) {
	err := database.NewCacheBuilder(r.cache, user.AuthUserID).
		WithContext(ctx).
		WithHash(constants.UserCachePrefix).
		WithStruct(user).
		WithTTL(constants.UserCacheExpiry).
		Set()
	if err != nil {
		r.log.Function("addUserToCache").
			Warn("failed to add user to cache", "userID", user.ID, "error", err)
	}
}

func (r *userRepository) clearUserCache(ctx context.Context, authUserID string) {
	err := database.NewCacheBuilder(r.cache, authUserID).
		WithContext(ctx).
		WithHash(constants.UserCachePrefix).
		Delete()
	if err != nil {
		r.log.Function("clearUserCache").
			Warn("failed to clear user cache", "authUserID", authUserID, "error", err)
	}
}
