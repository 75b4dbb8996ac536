package models

import (
	"time"

	"emoshown/internal/analytics"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Checkin struct {
	BaseUUIDModel
	UserID             uuid.UUID                `gorm:"type:uuid;not null;index:idx_checkin_user_time,priority:1" json:"userId"`
	User               *User                    `gorm:"foreignKey:UserID"                                         json:"-"`
	UID                string                   `gorm:"column:uid;type:text;not null"                             json:"uid"`
	FullName           string                   `gorm:"type:text;not null"                                        json:"fullName"`
	DepressionScore    int                      `gorm:"not null"                                                  json:"depressionScore"`
	DepressionSeverity string                   `gorm:"type:varchar(20);not null"                                 json:"depressionSeverity"`
	AnxietyScore       int                      `gorm:"not null"                                                  json:"anxietyScore"`
	AnxietySeverity    string                   `gorm:"type:varchar(20);not null"                                 json:"anxietySeverity"`
	StressScore        int                      `gorm:"not null"                                                  json:"stressScore"`
	StressSeverity     string                   `gorm:"type:varchar(20);not null"                                 json:"stressSeverity"`
	Answers            datatypes.JSONSlice[int] `gorm:"type:jsonb"                                                json:"answers"`
	Timestamp          time.Time                `gorm:"not null;index:idx_checkin_user_time,priority:2"           json:"timestamp"`
}

func NewCheckin(userID uuid.UUID, record analytics.CheckinRecord, answers []int) *Checkin {
	return &Checkin{
		UserID:             userID,
		UID:                record.UID,
		FullName:           record.FullName,
		DepressionScore:    record.DepressionScore,
		DepressionSeverity: string(record.DepressionSeverity),
		AnxietyScore:       record.AnxietyScore,
		AnxietySeverity:    string(record.AnxietySeverity),
		StressScore:        record.StressScore,
		StressSeverity:     string(record.StressSeverity),
		Answers:            datatypes.JSONSlice[int](answers),
		Timestamp:          record.Timestamp,
	}
}

func (c *Checkin) ToRecord() analytics.CheckinRecord {
	return analytics.CheckinRecord{
		UID:                c.UID,
		FullName:           c.FullName,
		DepressionScore:    c.DepressionScore,
		DepressionSeverity: analytics.Severity(c.DepressionSeverity),
		AnxietyScore:       c.AnxietyScore,
		AnxietySeverity:    analytics.Severity(c.AnxietySeverity),
		StressScore:        c.StressScore,
		StressSeverity:     analytics.Severity(c.StressSeverity),
		Timestamp:          c.Timestamp,
	}
}
