package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"geodrive/internal/domain/insight"
)

// Client talks to the external sentiment/topic classification service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a classification service client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type analyzeRequest struct {
	Text      string   `json:"text"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type analyzeResponse struct {
	Brand      string  `json:"brand"`
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	KeyTopic   string  `json:"key_topic"`
}

// Analyze submits free text for classification. The returned event carries
// the submitted text and coordinates alongside the collaborator's labels.
func (c *Client) Analyze(ctx context.Context, text string, latitude, longitude *float64) (insight.ClassificationEvent, error) {
	payload := analyzeRequest{Text: text, Latitude: latitude, Longitude: longitude}

	var parsed analyzeResponse
	if err := c.post(ctx, "/ai/analyze", payload, &parsed); err != nil {
		return insight.ClassificationEvent{}, err
	}

	return insight.ClassificationEvent{
		Text:       text,
		Brand:      parsed.Brand,
		Sentiment:  parsed.Sentiment,
		Confidence: parsed.Confidence,
		KeyTopic:   parsed.KeyTopic,
		Latitude:   latitude,
		Longitude:  longitude,
	}, nil
}

// DeepScan looks up the full analytic profile for a model query. Unknown
// models surface insight.ErrNotFound.
func (c *Client) DeepScan(ctx context.Context, query string) (*insight.ProductProfile, error) {
	payload := analyzeRequest{Text: query}

	var profile insight.ProductProfile
	if err := c.post(ctx, "/ai/analyze-product", payload, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

// post issues a JSON POST and decodes the response into out.
func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("error calling analysis service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("analysis service: %w", insight.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("analysis service returned status code %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}

	return nil
}
