package analytics

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const WindowDays = 7

var (
	anomalyThreshold = decimal.RequireFromString("0.2")
	percent          = decimal.NewFromInt(100)
)

type TimelineDay struct {
	DayLabel          string       `json:"day"`
	Date              CalendarDate `json:"date"`
	Emotion           Emotion      `json:"emotion"`
	SentimentCompound float64      `json:"sentimentCompound"`
	Populated         bool         `json:"populated"`
}

type Anomaly struct {
	DayLabel     string       `json:"day"`
	Date         CalendarDate `json:"date"`
	Delta        float64      `json:"delta"`
	DeltaPercent float64      `json:"deltaPercent"`
}

type WeeklyAnalysis struct {
	UserID       uuid.UUID     `json:"userId"`
	Today        CalendarDate  `json:"today"`
	Timeline     []TimelineDay `json:"timeline"`
	Anomalies    []Anomaly     `json:"anomalies"`
	MoodProgress float64       `json:"moodProgress"`
	MoodToday    Emotion       `json:"moodToday"`
}

// BuildWeeklyTimeline lays the samples onto the rolling window today-6..today,
// oldest first. Days are matched by exact date; a missing day is a gap with
// EmotionUnset and a zero sentiment. Samples for other users or outside the
// window are ignored, and the first sample seen for a date wins.
func BuildWeeklyTimeline(userID uuid.UUID, today CalendarDate, samples []MoodSample) []TimelineDay {
	byDate := make(map[string]MoodSample, len(samples))
	for _, sample := range samples {
		if sample.UserID != userID {
			continue
		}
		key := sample.Date.String()
		if _, exists := byDate[key]; !exists {
			byDate[key] = sample
		}
	}

	timeline := make([]TimelineDay, 0, WindowDays)
	for offset := WindowDays - 1; offset >= 0; offset-- {
		date := today.AddDays(-offset)
		day := TimelineDay{
			DayLabel: date.Weekday().String()[:3],
			Date:     date,
			Emotion:  EmotionUnset,
		}

		if sample, ok := byDate[date.String()]; ok {
			day.Populated = true
			day.SentimentCompound = sample.Sentiment.Compound
			if sample.Emotion != "" {
				day.Emotion = sample.Emotion
			}
		}

		timeline = append(timeline, day)
	}

	return timeline
}

// DetectAnomalies flags day i when its compound score moved by at least 0.2
// from day i-1. Gaps count as 0. With fewer than two populated days there is
// nothing to compare and no anomaly is reported.
func DetectAnomalies(timeline []TimelineDay) []Anomaly {
	anomalies := []Anomaly{}

	populated := 0
	for _, day := range timeline {
		if day.Populated {
			populated++
		}
	}
	if populated < 2 {
		return anomalies
	}

	for i := 1; i < len(timeline); i++ {
		delta := sentimentDelta(timeline[i-1].SentimentCompound, timeline[i].SentimentCompound)
		if delta.Abs().LessThan(anomalyThreshold) {
			continue
		}

		anomalies = append(anomalies, Anomaly{
			DayLabel:     timeline[i].DayLabel,
			Date:         timeline[i].Date,
			Delta:        delta.InexactFloat64(),
			DeltaPercent: asPercent(delta),
		})
	}

	return anomalies
}

// MoodProgress is today's compound minus yesterday's, as a signed percentage.
// A missing yesterday counts as 0.
func MoodProgress(timeline []TimelineDay) float64 {
	if len(timeline) == 0 {
		return 0
	}

	today := timeline[len(timeline)-1].SentimentCompound
	yesterday := 0.0
	if len(timeline) > 1 {
		yesterday = timeline[len(timeline)-2].SentimentCompound
	}

	return asPercent(sentimentDelta(yesterday, today))
}

// AnalyzeWeek runs the full aggregation before any scoring so a partial
// timeline is never scored.
func AnalyzeWeek(userID uuid.UUID, today CalendarDate, samples []MoodSample) WeeklyAnalysis {
	timeline := BuildWeeklyTimeline(userID, today, samples)

	return WeeklyAnalysis{
		UserID:       userID,
		Today:        today,
		Timeline:     timeline,
		Anomalies:    DetectAnomalies(timeline),
		MoodProgress: MoodProgress(timeline),
		MoodToday:    timeline[len(timeline)-1].Emotion,
	}
}

func sentimentDelta(previous, current float64) decimal.Decimal {
	return decimal.NewFromFloat(current).Sub(decimal.NewFromFloat(previous))
}

func asPercent(delta decimal.Decimal) float64 {
	return delta.Mul(percent).Round(2).InexactFloat64()
}
