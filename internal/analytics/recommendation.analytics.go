package analytics

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

type ImpactTag string

const (
	ImpactPositive ImpactTag = "positive"
	ImpactNegative ImpactTag = "negative"
	ImpactNeutral  ImpactTag = "neutral"
)

type ActivityKind string

const (
	KindActivity ActivityKind = "activity"
	KindResource ActivityKind = "resource"
)

type StrategyName string

const (
	StrategyWeighted      StrategyName = "weighted"
	StrategyFactorization StrategyName = "factorization"
	StrategySentiment     StrategyName = "sentiment"
)

const (
	TopRecommendations = 3
	SentimentWeight    = 2.0
	NeutralBand        = 0.05
)

type Activity struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	Kind  ActivityKind `json:"kind"`
	Tags  []ImpactTag  `json:"tags"`
	Link  string       `json:"link,omitempty"`
}

func (a Activity) HasTag(tag ImpactTag) bool {
	return slices.Contains(a.Tags, tag)
}

// FilterByKind keeps catalog order.
func FilterByKind(catalog []Activity, kind ActivityKind) []Activity {
	filtered := make([]Activity, 0, len(catalog))
	for _, activity := range catalog {
		if activity.Kind == kind {
			filtered = append(filtered, activity)
		}
	}
	return filtered
}

// ActivityMatrix rows are users or pseudo-users; column j lines up with
// catalog entry j.
type ActivityMatrix struct {
	Rows        [][]float64 `json:"rows"`
	ActivityIDs []string    `json:"activityIds"`
}

func (m ActivityMatrix) Width() int {
	if len(m.Rows) == 0 {
		return 0
	}
	return len(m.Rows[0])
}

type RecommendationInput struct {
	Catalog   []Activity
	Matrix    ActivityMatrix
	TargetRow int
	Sentiment Sentiment
}

// ScoredActivity.Score is nil for strategies that filter instead of rank.
type ScoredActivity struct {
	Activity Activity `json:"activity"`
	Score    *float64 `json:"score"`
	Rank     int      `json:"rank"`
}

type Strategy interface {
	Name() StrategyName
	Recommend(input RecommendationInput) ([]ScoredActivity, error)
}

func ParseStrategyName(value string) (StrategyName, error) {
	name := StrategyName(strings.ToLower(strings.TrimSpace(value)))
	switch name {
	case StrategyWeighted, StrategyFactorization, StrategySentiment:
		return name, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, value)
}

// NewStrategy builds one named strategy. Options only affect factorization.
func NewStrategy(name StrategyName, opts ...FactorizationOption) (Strategy, error) {
	switch name {
	case StrategyWeighted:
		return WeightedStrategy{}, nil
	case StrategyFactorization:
		return NewFactorizationStrategy(opts...), nil
	case StrategySentiment:
		return SentimentFilterStrategy{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Baseline pseudo-users carried over from the first release of the app. They
// seed the matrix so a user with no interactions still gets a ranking.
var (
	BaselineActivityIDs = []string{
		"nature-walk",
		"new-workout",
		"call-friend",
		"read-book",
		"watch-movie",
		"support-group",
	}
	BaselineAffinity = [][]float64{
		{5, 0, 0, 2, 0, 3},
		{0, 4, 0, 0, 5, 0},
		{3, 0, 0, 0, 0, 4},
		{0, 0, 4, 0, 0, 5},
	}
)

type InteractionCount struct {
	UserID      uuid.UUID
	ActivityID  string
	Recommended int
	Likes       int
	Dislikes    int
}

// Weight is the accumulated preference for one cell, never below zero.
func (c InteractionCount) Weight() float64 {
	return float64(max(0, c.Recommended+c.Likes-c.Dislikes))
}

// BuildUserActivityMatrix lines the baseline pseudo-users up with the catalog
// and appends one row for the target user built from counts. The returned
// index is the target row.
func BuildUserActivityMatrix(catalog []Activity, counts []InteractionCount) (ActivityMatrix, int) {
	columns := make(map[string]int, len(catalog))
	for j, activity := range catalog {
		columns[activity.ID] = j
	}

	rows := make([][]float64, 0, len(BaselineAffinity)+1)
	for _, baseline := range BaselineAffinity {
		row := make([]float64, len(catalog))
		for k, id := range BaselineActivityIDs {
			if j, ok := columns[id]; ok {
				row[j] = baseline[k]
			}
		}
		rows = append(rows, row)
	}

	target := make([]float64, len(catalog))
	for _, count := range counts {
		if j, ok := columns[count.ActivityID]; ok {
			target[j] += count.Weight()
		}
	}
	rows = append(rows, target)

	ids := make([]string, len(catalog))
	for j, activity := range catalog {
		ids[j] = activity.ID
	}

	return ActivityMatrix{Rows: rows, ActivityIDs: ids}, len(rows) - 1
}

// WeightedStrategy shifts the user's affinity row by the sentiment:
// score[j] = base[j] + compound*2.
type WeightedStrategy struct{}

func (WeightedStrategy) Name() StrategyName { return StrategyWeighted }

func (WeightedStrategy) Recommend(input RecommendationInput) ([]ScoredActivity, error) {
	if err := validateMatrixInput(input); err != nil {
		return nil, err
	}

	base := coldStartRow(input.Matrix, input.TargetRow)
	offset := input.Sentiment.Clamped().Compound * SentimentWeight

	scores := make([]float64, len(base))
	for j, value := range base {
		scores[j] = value + offset
	}

	return rankTop(input.Catalog, scores, TopRecommendations), nil
}

// SentimentFilterStrategy returns every catalog entry tagged with the band of
// the sentiment, in catalog order.
type SentimentFilterStrategy struct{}

func (SentimentFilterStrategy) Name() StrategyName { return StrategySentiment }

func (SentimentFilterStrategy) Recommend(input RecommendationInput) ([]ScoredActivity, error) {
	if len(input.Catalog) == 0 {
		return nil, fmt.Errorf("%w: empty activity catalog", ErrIncompleteInput)
	}

	band := SentimentBand(input.Sentiment.Compound)
	matches := []ScoredActivity{}
	for _, activity := range input.Catalog {
		if !activity.HasTag(band) {
			continue
		}
		matches = append(matches, ScoredActivity{
			Activity: activity,
			Rank:     len(matches) + 1,
		})
	}

	return matches, nil
}

func SentimentBand(compound float64) ImpactTag {
	switch {
	case compound < -NeutralBand:
		return ImpactNegative
	case compound > NeutralBand:
		return ImpactPositive
	default:
		return ImpactNeutral
	}
}

func validateMatrixInput(input RecommendationInput) error {
	if len(input.Catalog) == 0 {
		return fmt.Errorf("%w: empty activity catalog", ErrIncompleteInput)
	}
	if input.Matrix.Width() != len(input.Catalog) {
		return fmt.Errorf(
			"%w: matrix has %d columns for %d activities",
			ErrIncompleteInput,
			input.Matrix.Width(),
			len(input.Catalog),
		)
	}
	if input.TargetRow < 0 || input.TargetRow >= len(input.Matrix.Rows) {
		return fmt.Errorf("%w: target row %d out of range", ErrIncompleteInput, input.TargetRow)
	}
	for i, row := range input.Matrix.Rows {
		if len(row) != len(input.Catalog) {
			return fmt.Errorf("%w: matrix row %d is ragged", ErrIncompleteInput, i)
		}
	}
	return nil
}

// coldStartRow falls back to the first row when the target has no history.
func coldStartRow(matrix ActivityMatrix, target int) []float64 {
	row := matrix.Rows[target]
	if isZeroRow(row) {
		return matrix.Rows[0]
	}
	return row
}

func isZeroRow(row []float64) bool {
	for _, value := range row {
		if value != 0 {
			return false
		}
	}
	return true
}

// rankTop sorts by descending score. Ties keep catalog order.
func rankTop(catalog []Activity, scores []float64, limit int) []ScoredActivity {
	order := make([]int, len(scores))
	for j := range order {
		order[j] = j
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(scores[b], scores[a])
	})

	limit = min(limit, len(order))
	ranked := make([]ScoredActivity, 0, limit)
	for rank, j := range order[:limit] {
		score := scores[j]
		ranked = append(ranked, ScoredActivity{
			Activity: catalog[j],
			Score:    &score,
			Rank:     rank + 1,
		})
	}
	return ranked
}
