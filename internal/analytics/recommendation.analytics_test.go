package analytics

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []Activity {
	return []Activity{
		{ID: "nature-walk", Title: "Go for a nature walk", Kind: KindActivity, Tags: []ImpactTag{ImpactPositive, ImpactNeutral}},
		{ID: "new-workout", Title: "Try a new workout", Kind: KindActivity, Tags: []ImpactTag{ImpactPositive}},
		{ID: "call-friend", Title: "Call a friend", Kind: KindActivity, Tags: []ImpactTag{ImpactNegative, ImpactNeutral}},
		{ID: "read-book", Title: "Read a book", Kind: KindActivity, Tags: []ImpactTag{ImpactNeutral}},
		{ID: "watch-movie", Title: "Watch a movie", Kind: KindActivity, Tags: []ImpactTag{ImpactPositive}},
		{ID: "support-group", Title: "Join a support group", Kind: KindActivity, Tags: []ImpactTag{ImpactNegative}},
	}
}

func rankedIDs(results []ScoredActivity) []string {
	ids := make([]string, len(results))
	for i, result := range results {
		ids[i] = result.Activity.ID
	}
	return ids
}

func TestWeightedStrategy_ShiftsByCompound(t *testing.T) {
	catalog := testCatalog()
	input := RecommendationInput{
		Catalog:   catalog,
		Matrix:    ActivityMatrix{Rows: [][]float64{{5, 0, 0, 2, 0, 3}}},
		TargetRow: 0,
		Sentiment: Sentiment{Compound: 0.5},
	}

	results, err := WeightedStrategy{}.Recommend(input)
	require.NoError(t, err)

	require.Len(t, results, TopRecommendations)
	assert.Equal(t, []string{"nature-walk", "support-group", "read-book"}, rankedIDs(results))
	for i, expected := range []float64{6, 4, 3} {
		require.NotNil(t, results[i].Score)
		assert.Equal(t, expected, *results[i].Score)
		assert.Equal(t, i+1, results[i].Rank)
	}
}

func TestWeightedStrategy_TiesKeepCatalogOrder(t *testing.T) {
	input := RecommendationInput{
		Catalog:   testCatalog(),
		Matrix:    ActivityMatrix{Rows: [][]float64{{1, 2, 2, 2, 0, 2}}},
		Sentiment: Sentiment{Compound: -0.3},
	}

	results, err := WeightedStrategy{}.Recommend(input)
	require.NoError(t, err)

	assert.Equal(t, []string{"new-workout", "call-friend", "read-book"}, rankedIDs(results))
}

func TestWeightedStrategy_ColdStartUsesBaseline(t *testing.T) {
	catalog := testCatalog()
	matrix, target := BuildUserActivityMatrix(catalog, nil)

	results, err := WeightedStrategy{}.Recommend(RecommendationInput{
		Catalog:   catalog,
		Matrix:    matrix,
		TargetRow: target,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"nature-walk", "support-group", "read-book"}, rankedIDs(results))
}

func TestRecommend_RejectsInvalidInput(t *testing.T) {
	catalog := testCatalog()
	strategies := []Strategy{WeightedStrategy{}, NewFactorizationStrategy(WithIterations(1))}

	inputs := map[string]RecommendationInput{
		"Empty catalog": {Matrix: ActivityMatrix{Rows: [][]float64{{1}}}},
		"Narrow matrix": {Catalog: catalog, Matrix: ActivityMatrix{Rows: [][]float64{{1, 2}}}},
		"Ragged matrix": {Catalog: catalog, Matrix: ActivityMatrix{Rows: [][]float64{{1, 2, 3, 4, 5, 6}, {1}}}},
		"Missing row":   {Catalog: catalog, Matrix: ActivityMatrix{Rows: [][]float64{{1, 2, 3, 4, 5, 6}}}, TargetRow: 3},
	}

	for _, strategy := range strategies {
		for name, input := range inputs {
			_, err := strategy.Recommend(input)
			assert.ErrorIs(t, err, ErrIncompleteInput, "%s: %s", strategy.Name(), name)
		}
	}

	_, err := SentimentFilterStrategy{}.Recommend(RecommendationInput{})
	assert.ErrorIs(t, err, ErrIncompleteInput)
}

func TestSentimentBand(t *testing.T) {
	tests := []struct {
		compound float64
		expected ImpactTag
	}{
		{-0.2, ImpactNegative},
		{-0.051, ImpactNegative},
		{-0.05, ImpactNeutral},
		{0.0, ImpactNeutral},
		{0.05, ImpactNeutral},
		{0.051, ImpactPositive},
		{0.5, ImpactPositive},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SentimentBand(tt.compound), "compound %v", tt.compound)
	}
}

func TestSentimentFilterStrategy(t *testing.T) {
	tests := []struct {
		name     string
		compound float64
		expected []string
	}{
		{name: "Negative", compound: -0.2, expected: []string{"call-friend", "support-group"}},
		{name: "Positive", compound: 0.5, expected: []string{"nature-walk", "new-workout", "watch-movie"}},
		{name: "Neutral", compound: 0.0, expected: []string{"nature-walk", "call-friend", "read-book"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := SentimentFilterStrategy{}.Recommend(RecommendationInput{
				Catalog:   testCatalog(),
				Sentiment: Sentiment{Compound: tt.compound},
			})
			require.NoError(t, err)

			assert.Equal(t, tt.expected, rankedIDs(results))
			for i, result := range results {
				assert.Nil(t, result.Score)
				assert.Equal(t, i+1, result.Rank)
			}
		})
	}
}

func TestSentimentFilterStrategy_NoMatchIsEmpty(t *testing.T) {
	results, err := SentimentFilterStrategy{}.Recommend(RecommendationInput{
		Catalog:   []Activity{{ID: "untagged", Title: "Untagged"}},
		Sentiment: Sentiment{Compound: 0.9},
	})
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestBuildUserActivityMatrix(t *testing.T) {
	userID := uuid.New()
	catalog := append(testCatalog(), Activity{ID: "hopeline", Title: "HOPELINE", Kind: KindResource})

	matrix, target := BuildUserActivityMatrix(catalog, []InteractionCount{
		{UserID: userID, ActivityID: "read-book", Recommended: 2, Likes: 3},
		{UserID: userID, ActivityID: "watch-movie", Recommended: 1, Dislikes: 4},
		{UserID: userID, ActivityID: "hopeline", Likes: 1},
		{UserID: userID, ActivityID: "retired-activity", Likes: 9},
	})

	require.Len(t, matrix.Rows, len(BaselineAffinity)+1)
	assert.Equal(t, len(BaselineAffinity), target)
	assert.Equal(t, []float64{5, 0, 0, 2, 0, 3, 0}, matrix.Rows[0])
	assert.Equal(t, []float64{0, 0, 4, 0, 0, 5, 0}, matrix.Rows[3])
	assert.Equal(t, []float64{0, 0, 0, 5, 0, 0, 1}, matrix.Rows[target])
	assert.Equal(t, "hopeline", matrix.ActivityIDs[6])
	assert.Equal(t, len(catalog), matrix.Width())
}

func TestNewStrategy(t *testing.T) {
	for _, name := range []StrategyName{StrategyWeighted, StrategyFactorization, StrategySentiment} {
		strategy, err := NewStrategy(name)
		require.NoError(t, err)
		assert.Equal(t, name, strategy.Name())
	}

	_, err := NewStrategy("popularity")
	assert.ErrorIs(t, err, ErrUnknownStrategy)

	parsed, err := ParseStrategyName(" Sentiment ")
	require.NoError(t, err)
	assert.Equal(t, StrategySentiment, parsed)

	_, err = ParseStrategyName("")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func observedRMSE(rows [][]float64, model Factorization) float64 {
	total, count := 0.0, 0
	for i, row := range rows {
		for j, observed := range row {
			if observed == 0 {
				continue
			}
			diff := observed - model.Predict(i, j)
			total += diff * diff
			count++
		}
	}
	return math.Sqrt(total / float64(count))
}

func TestFactorize_FitsObservedCells(t *testing.T) {
	untrained := Factorize(BaselineAffinity, DefaultLatentFactors, 0, DefaultLearningRate, rand.New(rand.NewSource(7)))
	trained := Factorize(BaselineAffinity, DefaultLatentFactors, DefaultIterations, DefaultLearningRate, rand.New(rand.NewSource(7)))

	require.Len(t, trained.UserFeatures, len(BaselineAffinity))
	require.Len(t, trained.ItemFeatures, len(BaselineActivityIDs))
	assert.Len(t, trained.UserFeatures[0], DefaultLatentFactors)

	before := observedRMSE(BaselineAffinity, untrained)
	after := observedRMSE(BaselineAffinity, trained)
	assert.Less(t, after, before/2)
}

func TestFactorizationStrategy_DeterministicWithSeed(t *testing.T) {
	catalog := testCatalog()
	matrix, target := BuildUserActivityMatrix(catalog, []InteractionCount{
		{ActivityID: "watch-movie", Recommended: 1, Likes: 2},
		{ActivityID: "call-friend", Recommended: 1},
	})
	input := RecommendationInput{Catalog: catalog, Matrix: matrix, TargetRow: target}

	first, err := NewFactorizationStrategy(WithRand(rand.New(rand.NewSource(42)))).Recommend(input)
	require.NoError(t, err)
	second, err := NewFactorizationStrategy(WithRand(rand.New(rand.NewSource(42)))).Recommend(input)
	require.NoError(t, err)

	require.Len(t, first, TopRecommendations)
	assert.Equal(t, first, second)
	for i := 1; i < len(first); i++ {
		assert.GreaterOrEqual(t, *first[i-1].Score, *first[i].Score)
	}
}

func TestScaleToRatings(t *testing.T) {
	rows := [][]float64{
		{5, 0, 0, 2, 0, 3},
		{0, 400, 0, 200, 0, 0},
		{0, 0, 0, 0, 0, 0},
	}

	scaled := ScaleToRatings(rows)

	assert.Equal(t, rows[0], scaled[0])
	assert.Equal(t, []float64{0, 5, 0, 2.5, 0, 0}, scaled[1])
	assert.Equal(t, rows[2], scaled[2])
	assert.Equal(t, 400.0, rows[1][1])
}

func TestFactorizationStrategy_AccumulatedCountsStayFinite(t *testing.T) {
	catalog := testCatalog()

	for _, count := range []int{100, 200, 400, 5000} {
		matrix, target := BuildUserActivityMatrix(catalog, []InteractionCount{
			{ActivityID: "watch-movie", Recommended: count},
			{ActivityID: "read-book", Recommended: count},
			{ActivityID: "new-workout", Recommended: count, Likes: 2},
		})
		input := RecommendationInput{Catalog: catalog, Matrix: matrix, TargetRow: target}

		results, err := NewFactorizationStrategy(WithRand(rand.New(rand.NewSource(42)))).Recommend(input)
		require.NoError(t, err, "count %d", count)
		require.Len(t, results, TopRecommendations)

		for _, result := range results {
			require.NotNil(t, result.Score)
			assert.False(t, math.IsNaN(*result.Score), "count %d", count)
			assert.False(t, math.IsInf(*result.Score, 0), "count %d", count)
		}

		_, err = json.Marshal(results)
		assert.NoError(t, err, "count %d", count)
	}
}

func TestFactorizationStrategy_DivergenceIsAnError(t *testing.T) {
	catalog := testCatalog()
	matrix, target := BuildUserActivityMatrix(catalog, nil)
	input := RecommendationInput{Catalog: catalog, Matrix: matrix, TargetRow: target}

	strategy := NewFactorizationStrategy(
		WithRand(rand.New(rand.NewSource(1))),
		WithLearningRate(10),
	)

	_, err := strategy.Recommend(input)
	assert.ErrorIs(t, err, ErrIncompleteInput)
}
