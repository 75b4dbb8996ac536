// Package analytics holds the pure mood analysis and recommendation scoring
// logic. Nothing in here performs I/O; callers fetch samples and catalogs and
// persist results.
package analytics

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const ISODateLayout = "2006-01-02"

type Emotion string

const (
	EmotionHappy    Emotion = "happy"
	EmotionExcited  Emotion = "excited"
	EmotionGrateful Emotion = "grateful"
	EmotionCalm     Emotion = "calm"
	EmotionBored    Emotion = "bored"
	EmotionNumb     Emotion = "numb"
	EmotionConfused Emotion = "confused"
	EmotionDoubt    Emotion = "doubt"
	EmotionAngry    Emotion = "angry"
	EmotionLonely   Emotion = "lonely"
	EmotionSad      Emotion = "sad"
	EmotionWorried  Emotion = "worried"

	// EmotionUnset fills days without a journal entry.
	EmotionUnset Emotion = "unset"
)

var emotionPolarity = map[Emotion]ImpactTag{
	EmotionHappy:    ImpactPositive,
	EmotionExcited:  ImpactPositive,
	EmotionGrateful: ImpactPositive,
	EmotionCalm:     ImpactPositive,
	EmotionBored:    ImpactNeutral,
	EmotionNumb:     ImpactNeutral,
	EmotionConfused: ImpactNeutral,
	EmotionDoubt:    ImpactNeutral,
	EmotionAngry:    ImpactNegative,
	EmotionLonely:   ImpactNegative,
	EmotionSad:      ImpactNegative,
	EmotionWorried:  ImpactNegative,
}

// ParseEmotion accepts only the journal's closed label set. "unset" is not a
// label a user can submit.
func ParseEmotion(value string) (Emotion, error) {
	emotion := Emotion(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := emotionPolarity[emotion]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmotion, value)
	}
	return emotion, nil
}

// Polarity reports which emotion group the label belongs to. Unset is neutral.
func (e Emotion) Polarity() ImpactTag {
	if tag, ok := emotionPolarity[e]; ok {
		return tag
	}
	return ImpactNeutral
}

type Sentiment struct {
	Compound float64 `json:"compound"`
	Neg      float64 `json:"neg"`
	Neu      float64 `json:"neu"`
	Pos      float64 `json:"pos"`
}

// Clamped keeps the compound score inside [-1, 1].
func (s Sentiment) Clamped() Sentiment {
	s.Compound = max(-1, min(1, s.Compound))
	return s
}

// CalendarDate is a day with no time of day, held as UTC midnight.
type CalendarDate struct {
	time.Time
}

func NewCalendarDate(t time.Time) CalendarDate {
	year, month, day := t.Date()
	return CalendarDate{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func Today() CalendarDate {
	return NewCalendarDate(time.Now().UTC())
}

func (d CalendarDate) AddDays(days int) CalendarDate {
	return CalendarDate{d.Time.AddDate(0, 0, days)}
}

func (d CalendarDate) Equal(other CalendarDate) bool {
	return d.Time.Equal(other.Time)
}

func (d CalendarDate) String() string {
	return d.Format(ISODateLayout)
}

func (d CalendarDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *CalendarDate) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	parsed, err := time.Parse(ISODateLayout, value)
	if err != nil {
		return err
	}
	*d = CalendarDate{parsed}
	return nil
}

// MoodSample is one user's emotional state for one calendar day. Scored is
// false when the stored record had no sentiment; Sentiment is then zero.
type MoodSample struct {
	UserID    uuid.UUID
	Date      CalendarDate
	Emotion   Emotion
	Sentiment Sentiment
	Scored    bool
}

// AverageSentiment averages every scored sample. The bool is false when no
// sample carried a sentiment.
func AverageSentiment(samples []MoodSample) (Sentiment, bool) {
	var total Sentiment
	count := 0
	for _, sample := range samples {
		if !sample.Scored {
			continue
		}
		total.Compound += sample.Sentiment.Compound
		total.Neg += sample.Sentiment.Neg
		total.Neu += sample.Sentiment.Neu
		total.Pos += sample.Sentiment.Pos
		count++
	}

	if count == 0 {
		return Sentiment{}, false
	}

	n := float64(count)
	return Sentiment{
		Compound: total.Compound / n,
		Neg:      total.Neg / n,
		Neu:      total.Neu / n,
		Pos:      total.Pos / n,
	}, true
}

// LatestSample returns the most recent sample by date.
func LatestSample(samples []MoodSample) (MoodSample, bool) {
	if len(samples) == 0 {
		return MoodSample{}, false
	}
	latest := samples[0]
	for _, sample := range samples[1:] {
		if sample.Date.After(latest.Date.Time) {
			latest = sample
		}
	}
	return latest, true
}
