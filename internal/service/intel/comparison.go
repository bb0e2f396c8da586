package intel

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"geodrive/internal/domain/insight"
)

// User-displayable comparison failures. The adapter never raises anything
// beyond these two for collaborator errors; existing view state is untouched.
var (
	ErrComparisonFailed = errors.New("comparison failed")
	ErrModelNotFound    = errors.New("model not found")
)

// noInsightPlaceholder substitutes a missing ai_insight field so the report
// composer never sees an undefined value.
const noInsightPlaceholder = "No insight available"

// ComparisonClient requests raw comparisons from the analytics collaborator.
type ComparisonClient interface {
	CompareProducts(ctx context.Context, model1, model2 string) (*insight.ProductComparison, error)
	CompareFeatures(ctx context.Context, company1, company2 string) (*insight.FeatureComparison, error)
}

// ComparisonViewAdapter binds collaborator comparison payloads into stable,
// render-ready shapes. It performs no comparison math of its own: better_model
// and the recommendation map are collaborator-computed and passed through.
type ComparisonViewAdapter struct {
	client ComparisonClient
}

// NewComparisonViewAdapter creates a comparison adapter.
func NewComparisonViewAdapter(client ComparisonClient) *ComparisonViewAdapter {
	return &ComparisonViewAdapter{client: client}
}

// CompareProducts requests a two-product comparison.
func (a *ComparisonViewAdapter) CompareProducts(ctx context.Context, model1, model2 string) (*insight.ProductComparison, error) {
	if model1 == "" || model2 == "" {
		return nil, ErrModelNotFound
	}

	comparison, err := a.client.CompareProducts(ctx, model1, model2)
	if err != nil {
		if errors.Is(err, insight.ErrNotFound) {
			return nil, ErrModelNotFound
		}
		log.Error().Err(err).Str("model1", model1).Str("model2", model2).Msg("product comparison request failed")
		return nil, ErrComparisonFailed
	}
	if comparison == nil {
		return nil, ErrComparisonFailed
	}

	return comparison, nil
}

// CompareFeatures requests a company/feature-level comparison. Missing payload
// fields are defaulted rather than propagated: the insight text falls back to
// a placeholder and the recommendation map always carries its three keys.
func (a *ComparisonViewAdapter) CompareFeatures(ctx context.Context, company1, company2 string) (*insight.FeatureComparison, error) {
	if company1 == "" || company2 == "" {
		return nil, ErrModelNotFound
	}

	comparison, err := a.client.CompareFeatures(ctx, company1, company2)
	if err != nil {
		if errors.Is(err, insight.ErrNotFound) {
			return nil, ErrModelNotFound
		}
		log.Error().Err(err).Str("company1", company1).Str("company2", company2).Msg("feature comparison request failed")
		return nil, ErrComparisonFailed
	}
	if comparison == nil {
		return nil, ErrComparisonFailed
	}

	normalized := *comparison
	if normalized.Company1 == "" {
		normalized.Company1 = company1
	}
	if normalized.Company2 == "" {
		normalized.Company2 = company2
	}
	if normalized.Features1 == nil {
		normalized.Features1 = map[string]float64{}
	}
	if normalized.Features2 == nil {
		normalized.Features2 = map[string]float64{}
	}
	if normalized.AIInsight == "" {
		normalized.AIInsight = noInsightPlaceholder
	}

	recommendations := map[string]string{
		insight.RecommendationPerformance: "Not available",
		insight.RecommendationValue:       "Not available",
		insight.RecommendationSentiment:   "Not available",
	}
	for key, value := range normalized.Recommendations {
		if value != "" {
			recommendations[key] = value
		}
	}
	normalized.Recommendations = recommendations

	return &normalized, nil
}
