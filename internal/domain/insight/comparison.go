package insight

// Recommendation keys always present in a feature comparison.
const (
	RecommendationPerformance = "Best Performance"
	RecommendationValue       = "Best Value"
	RecommendationSentiment   = "Best Overall Sentiment"
)

// ProductSummary is one side of a product-level comparison.
type ProductSummary struct {
	ModelName       string  `json:"model_name"`
	CurrentPrice    float64 `json:"current_price"`
	PositivePercent float64 `json:"positive_percent"`
	TotalReviews    int     `json:"total_reviews"`
}

// ProductComparison is a normalized two-product comparison. BetterModel is
// computed by the analytics collaborator and passed through untouched.
type ProductComparison struct {
	Model1      ProductSummary `json:"model1"`
	Model2      ProductSummary `json:"model2"`
	BetterModel string         `json:"better_model"`
}

// FeatureComparison is a normalized company/feature-level comparison. All
// scores, trend labels and recommendations are collaborator-computed.
type FeatureComparison struct {
	Company1        string             `json:"company1"`
	Company2        string             `json:"company2"`
	Features1       map[string]float64 `json:"company1_features"`
	Features2       map[string]float64 `json:"company2_features"`
	AIInsight       string             `json:"ai_insight"`
	Trend1          string             `json:"company1_trend"`
	Trend2          string             `json:"company2_trend"`
	Recommendations map[string]string  `json:"recommendations"`
}
