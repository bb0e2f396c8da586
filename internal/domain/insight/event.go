package insight

// Sentiment labels produced by the classification collaborator.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// ClassificationEvent is a single classification result from the analysis
// collaborator. Immutable once received.
type ClassificationEvent struct {
	Text       string   `json:"text"`
	Brand      string   `json:"brand,omitempty"`
	Sentiment  string   `json:"sentiment"`
	Confidence float64  `json:"confidence"`
	KeyTopic   string   `json:"key_topic"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

// HasLocation reports whether the event carries usable geo-coordinates.
func (e ClassificationEvent) HasLocation() bool {
	return e.Latitude != nil && e.Longitude != nil
}

// TopicStrength is one entry of a deep-scan fingerprint payload.
type TopicStrength struct {
	Topic    string  `json:"topic"`
	Strength float64 `json:"strength"`
}

// PricePoint is one month of a product's price history.
type PricePoint struct {
	Month string  `json:"month"`
	Price float64 `json:"price"`
}

// SentimentSummary is the positive/negative split for a product.
type SentimentSummary struct {
	PositivePercent float64 `json:"positive_percent"`
	NegativePercent float64 `json:"negative_percent"`
}

// ProductProfile is the full analytic profile returned by a deep scan.
type ProductProfile struct {
	ModelName        string           `json:"model_name"`
	Company          string           `json:"company"`
	CurrentPrice     float64          `json:"current_price"`
	SentimentSummary SentimentSummary `json:"sentiment_summary"`
	Fingerprint      []TopicStrength  `json:"fingerprint"`
	PriceHistory     []PricePoint     `json:"price_history"`
	AIVerdict        string           `json:"ai_verdict"`
	TotalReviews     int              `json:"total_reviews"`
}

// BrandSummary is one row of the aggregate brand volume summary.
type BrandSummary struct {
	Brand      string `json:"brand"`
	TotalPosts int    `json:"total_posts"`
}

// BrandSentiment is one row of the per-brand sentiment rollup: the number of
// archived posts for one brand/sentiment pair.
type BrandSentiment struct {
	Brand     string `json:"brand"`
	Sentiment string `json:"sentiment"`
	Count     int    `json:"count"`
}
