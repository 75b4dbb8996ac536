package models

import (
	"time"

	"emoshown/internal/analytics"

	"github.com/google/uuid"
)

// JournalEntry is one user's single entry for a calendar day. Entries are
// written once and never edited.
type JournalEntry struct {
	BaseUUIDModel
	UserID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_journal_user_date,priority:1" json:"userId"`
	User              *User     `gorm:"foreignKey:UserID"                                                json:"-"`
	Date              time.Time `gorm:"type:date;not null;uniqueIndex:idx_journal_user_date,priority:2" json:"date"`
	Emotion           string    `gorm:"type:varchar(20);not null"                                        json:"emotion"`
	Content           string    `gorm:"type:text"                                                        json:"content"`
	ImageURL          *string   `gorm:"type:text"                                                        json:"imageUrl,omitempty"`
	SentimentCompound *float64  `gorm:"type:double precision"                                            json:"sentimentCompound"`
	SentimentNeg      *float64  `gorm:"type:double precision"                                            json:"sentimentNeg"`
	SentimentNeu      *float64  `gorm:"type:double precision"                                            json:"sentimentNeu"`
	SentimentPos      *float64  `gorm:"type:double precision"                                            json:"sentimentPos"`
}

func (j *JournalEntry) SetSentiment(sentiment analytics.Sentiment) {
	sentiment = sentiment.Clamped()
	j.SentimentCompound = &sentiment.Compound
	j.SentimentNeg = &sentiment.Neg
	j.SentimentNeu = &sentiment.Neu
	j.SentimentPos = &sentiment.Pos
}

// ToMoodSample converts a stored row for analysis. Rows written without a
// sentiment or with an unknown emotion read back as unscored and unset.
func (j *JournalEntry) ToMoodSample() analytics.MoodSample {
	sample := analytics.MoodSample{
		UserID:  j.UserID,
		Date:    analytics.NewCalendarDate(j.Date),
		Emotion: analytics.EmotionUnset,
	}

	if emotion, err := analytics.ParseEmotion(j.Emotion); err == nil {
		sample.Emotion = emotion
	}

	if j.SentimentCompound != nil {
		sample.Scored = true
		sample.Sentiment = analytics.Sentiment{
			Compound: *j.SentimentCompound,
			Neg:      valueOrZero(j.SentimentNeg),
			Neu:      valueOrZero(j.SentimentNeu),
			Pos:      valueOrZero(j.SentimentPos),
		}.Clamped()
	}

	return sample
}

type JournalEntryView struct {
	ID        uuid.UUID              `json:"id"`
	Date      analytics.CalendarDate `json:"date"`
	Emotion   analytics.Emotion      `json:"emotion"`
	Content   string                 `json:"content"`
	ImageURL  *string                `json:"imageUrl,omitempty"`
	Sentiment analytics.Sentiment    `json:"sentiment"`
	CreatedAt time.Time              `json:"createdAt"`
}

func (j *JournalEntry) ToView() JournalEntryView {
	sample := j.ToMoodSample()
	return JournalEntryView{
		ID:        j.ID,
		Date:      sample.Date,
		Emotion:   sample.Emotion,
		Content:   j.Content,
		ImageURL:  j.ImageURL,
		Sentiment: sample.Sentiment,
		CreatedAt: j.CreatedAt,
	}
}

func valueOrZero(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}
