package models

import (
	"github.com/google/uuid"
)

type InteractionKind string

const (
	InteractionRecommended InteractionKind = "recommended"
	InteractionLike        InteractionKind = "like"
	InteractionDislike     InteractionKind = "dislike"
)

type ActivityInteraction struct {
	BaseUUIDModel
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_interaction_user_activity,priority:1" json:"userId"`
	User       *User           `gorm:"foreignKey:UserID"                                                  json:"-"`
	ActivityID string          `gorm:"type:varchar(64);not null;index:idx_interaction_user_activity,priority:2" json:"activityId"`
	Activity   *Activity       `gorm:"foreignKey:ActivityID"                                              json:"activity,omitempty"`
	Kind       InteractionKind `gorm:"type:varchar(20);not null"                                          json:"kind"`
	Strategy   string          `gorm:"type:varchar(20)"                                                   json:"strategy,omitempty"`
}
