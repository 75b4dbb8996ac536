package models

import (
	"strings"
	"time"

	"emoshown/internal/analytics"

	"gorm.io/gorm"
)

type User struct {
	BaseUUIDModel
	// AuthUserID is the uid issued by the managed auth provider.
	AuthUserID  string     `gorm:"column:auth_user_id;type:text;not null;uniqueIndex" json:"authUserId"`
	FullName    string     `gorm:"type:text"                                          json:"fullName"`
	Email       *string    `gorm:"type:text"                                          json:"email,omitempty"`
	LastLoginAt *time.Time `gorm:"type:timestamp"                                     json:"lastLoginAt,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.FullName = strings.TrimSpace(u.FullName)
	if u.FullName == "" {
		u.FullName = analytics.AnonymousName
	}
	return nil
}

// UserProfile represents public user profile information
type UserProfile struct {
	ID          string     `json:"id"`
	FullName    string     `json:"fullName"`
	Email       *string    `json:"email,omitempty"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

func (u *User) ToProfile() UserProfile {
	return UserProfile{
		ID:          u.ID.String(),
		FullName:    u.FullName,
		Email:       u.Email,
		LastLoginAt: u.LastLoginAt,
	}
}

// UpdateFromClaims refreshes the profile from a verified token. Empty claims
// never overwrite stored values.
func (u *User) UpdateFromClaims(fullName string, email *string) {
	now := time.Now()
	u.LastLoginAt = &now

	if name := strings.TrimSpace(fullName); name != "" {
		u.FullName = name
	}

	if email != nil && *email != "" {
		u.Email = email
	}
}
