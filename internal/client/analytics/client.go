package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"geodrive/internal/domain/insight"
)

// Client talks to the external analytics/comparison service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates an analytics service client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BrandSummary fetches aggregate post volume per brand.
func (c *Client) BrandSummary(ctx context.Context) ([]insight.BrandSummary, error) {
	var summaries []insight.BrandSummary
	if err := c.get(ctx, "/analytics/brand-summary", &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

type trendResponse struct {
	CurrentPercent  *float64 `json:"current_percent"`
	PreviousPercent *float64 `json:"previous_percent"`
	ChangePercent   *float64 `json:"change_percent"`
	TrendDirection  string   `json:"trend_direction"`
}

// BrandTrend fetches the two-window trend summary for a company. A nil
// snapshot with a nil error means the collaborator has no trend history.
func (c *Client) BrandTrend(ctx context.Context, company string) (*insight.TrendSnapshot, error) {
	var parsed trendResponse
	if err := c.get(ctx, "/analytics/trend/"+url.PathEscape(company), &parsed); err != nil {
		return nil, err
	}

	// An empty object is the collaborator's "insufficient history" signal.
	if parsed.CurrentPercent == nil || parsed.PreviousPercent == nil {
		return nil, nil
	}

	snapshot := insight.TrendSnapshot{
		Company:         company,
		CurrentPercent:  *parsed.CurrentPercent,
		PreviousPercent: *parsed.PreviousPercent,
		Direction:       insight.TrendDirection(parsed.TrendDirection),
	}
	if parsed.ChangePercent != nil {
		snapshot.ChangePercent = *parsed.ChangePercent
	}

	return &snapshot, nil
}

type productComparisonResponse struct {
	Comparison *insight.ProductComparison `json:"comparison"`
}

// CompareProducts fetches a two-product comparison. Unknown models surface
// insight.ErrNotFound.
func (c *Client) CompareProducts(ctx context.Context, model1, model2 string) (*insight.ProductComparison, error) {
	query := url.Values{}
	query.Set("model1", model1)
	query.Set("model2", model2)

	var parsed productComparisonResponse
	if err := c.get(ctx, "/analytics/compare?"+query.Encode(), &parsed); err != nil {
		return nil, err
	}
	if parsed.Comparison == nil {
		return nil, fmt.Errorf("analytics service: %w", insight.ErrNotFound)
	}

	return parsed.Comparison, nil
}

// CompareFeatures fetches a company/feature-level comparison.
func (c *Client) CompareFeatures(ctx context.Context, company1, company2 string) (*insight.FeatureComparison, error) {
	query := url.Values{}
	query.Set("company1", company1)
	query.Set("company2", company2)

	var comparison insight.FeatureComparison
	if err := c.get(ctx, "/analytics/compare-features?"+query.Encode(), &comparison); err != nil {
		return nil, err
	}

	return &comparison, nil
}

// get issues a GET and decodes the response into out.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("error calling analytics service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("analytics service: %w", insight.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("analytics service returned status code %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}

	return nil
}
