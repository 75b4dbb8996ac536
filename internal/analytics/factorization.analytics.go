package analytics

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

const (
	DefaultLatentFactors = 2
	DefaultIterations    = 1000
	DefaultLearningRate  = 0.01

	// MaxRating is the top of the scale the baseline rows use.
	MaxRating = 5.0
)

// Factorization holds the learned latent factors: one row per user and one
// per item.
type Factorization struct {
	UserFeatures [][]float64
	ItemFeatures [][]float64
}

func (f Factorization) Predict(user, item int) float64 {
	return dot(f.UserFeatures[user], f.ItemFeatures[item])
}

// Factorize trains both factor matrices with plain SGD over the nonzero cells.
// Zero cells are unobserved and never trained on.
func Factorize(
	rows [][]float64,
	factors int,
	iterations int,
	learningRate float64,
	rng *rand.Rand,
) Factorization {
	users := len(rows)
	items := 0
	if users > 0 {
		items = len(rows[0])
	}

	userFeatures := randomMatrix(users, factors, rng)
	itemFeatures := randomMatrix(items, factors, rng)

	for range iterations {
		for i, row := range rows {
			for j, observed := range row {
				if observed == 0 {
					continue
				}

				err := observed - dot(userFeatures[i], itemFeatures[j])
				for k := range factors {
					userValue := userFeatures[i][k]
					userFeatures[i][k] += learningRate * err * itemFeatures[j][k]
					itemFeatures[j][k] += learningRate * err * userValue
				}
			}
		}
	}

	return Factorization{UserFeatures: userFeatures, ItemFeatures: itemFeatures}
}

type FactorizationStrategy struct {
	factors      int
	iterations   int
	learningRate float64
	rng          *rand.Rand
}

type FactorizationOption func(*FactorizationStrategy)

// WithRand fixes the random source used to initialise the factors.
func WithRand(rng *rand.Rand) FactorizationOption {
	return func(s *FactorizationStrategy) {
		s.rng = rng
	}
}

func WithIterations(iterations int) FactorizationOption {
	return func(s *FactorizationStrategy) {
		s.iterations = iterations
	}
}

func WithLearningRate(rate float64) FactorizationOption {
	return func(s *FactorizationStrategy) {
		s.learningRate = rate
	}
}

func NewFactorizationStrategy(opts ...FactorizationOption) *FactorizationStrategy {
	strategy := &FactorizationStrategy{
		factors:      DefaultLatentFactors,
		iterations:   DefaultIterations,
		learningRate: DefaultLearningRate,
	}
	for _, opt := range opts {
		opt(strategy)
	}
	return strategy
}

func (s *FactorizationStrategy) Name() StrategyName { return StrategyFactorization }

// Recommend scores each activity by dot(user, item) for the target row. A
// target with no history is scored with the first row's factors.
func (s *FactorizationStrategy) Recommend(input RecommendationInput) ([]ScoredActivity, error) {
	if err := validateMatrixInput(input); err != nil {
		return nil, err
	}

	rng := s.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	model := Factorize(ScaleToRatings(input.Matrix.Rows), s.factors, s.iterations, s.learningRate, rng)

	user := input.TargetRow
	if isZeroRow(input.Matrix.Rows[user]) {
		user = 0
	}

	scores := make([]float64, len(input.Catalog))
	for j := range scores {
		scores[j] = model.Predict(user, j)
		if math.IsNaN(scores[j]) || math.IsInf(scores[j], 0) {
			return nil, fmt.Errorf("%w: factorization did not converge", ErrIncompleteInput)
		}
	}

	return rankTop(input.Catalog, scores, TopRecommendations), nil
}

// ScaleToRatings copies rows onto the 0..MaxRating scale. A row whose largest
// cell is above MaxRating is scaled down proportionally; other rows are kept
// as they are.
func ScaleToRatings(rows [][]float64) [][]float64 {
	scaled := make([][]float64, len(rows))
	for i, row := range rows {
		largest := 0.0
		for _, value := range row {
			largest = max(largest, value)
		}

		scaled[i] = make([]float64, len(row))
		for j, value := range row {
			if largest > MaxRating {
				value = value * MaxRating / largest
			}
			scaled[i][j] = value
		}
	}
	return scaled
}

func randomMatrix(rows, cols int, rng *rand.Rand) [][]float64 {
	matrix := make([][]float64, rows)
	for i := range matrix {
		matrix[i] = make([]float64, cols)
		for k := range matrix[i] {
			matrix[i][k] = rng.Float64()
		}
	}
	return matrix
}

func dot(a, b []float64) float64 {
	total := 0.0
	for k := range a {
		total += a[k] * b[k]
	}
	return total
}
