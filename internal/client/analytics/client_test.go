package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geodrive/internal/domain/insight"
)

func TestBrandSummaryDecodesRows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analytics/brand-summary", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]interface{}{
			{"brand": "Tata", "total_posts": 412},
			{"brand": "Hyundai", "total_posts": 387},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	summaries, err := client.BrandSummary(context.Background())
	require.NoError(t, err)

	require.Len(t, summaries, 2)
	assert.Equal(t, insight.BrandSummary{Brand: "Tata", TotalPosts: 412}, summaries[0])
}

func TestBrandTrendDecodesSnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analytics/trend/tata", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"current_percent":  71.4,
			"previous_percent": 64.2,
			"change_percent":   7.2,
			"trend_direction":  "upward",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	snapshot, err := client.BrandTrend(context.Background(), "tata")
	require.NoError(t, err)

	require.NotNil(t, snapshot)
	assert.Equal(t, "tata", snapshot.Company)
	assert.Equal(t, 71.4, snapshot.CurrentPercent)
	assert.Equal(t, 64.2, snapshot.PreviousPercent)
	assert.Equal(t, 7.2, snapshot.ChangePercent)
	assert.Equal(t, insight.TrendUpward, snapshot.Direction)
}

func TestBrandTrendInsufficientHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	snapshot, err := client.BrandTrend(context.Background(), "newcomer")

	assert.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestCompareProductsDecodesComparison(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analytics/compare", r.URL.Path)
		assert.Equal(t, "Nexon", r.URL.Query().Get("model1"))
		assert.Equal(t, "Creta", r.URL.Query().Get("model2"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"comparison": map[string]interface{}{
				"model1":       map[string]interface{}{"model_name": "Nexon", "total_reviews": 1240},
				"model2":       map[string]interface{}{"model_name": "Creta", "total_reviews": 980},
				"better_model": "Nexon",
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	comparison, err := client.CompareProducts(context.Background(), "Nexon", "Creta")
	require.NoError(t, err)

	assert.Equal(t, "Nexon", comparison.Model1.ModelName)
	assert.Equal(t, 980, comparison.Model2.TotalReviews)
	assert.Equal(t, "Nexon", comparison.BetterModel)
}

func TestCompareProductsMissingComparison(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"detail": "no such model"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	comparison, err := client.CompareProducts(context.Background(), "Nexon", "Batmobile")

	assert.Nil(t, comparison)
	assert.ErrorIs(t, err, insight.ErrNotFound)
}

func TestCompareProductsNotFoundStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail": "model not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	_, err := client.CompareProducts(context.Background(), "Nexon", "Batmobile")

	assert.ErrorIs(t, err, insight.ErrNotFound)
}

func TestCompareFeaturesDecodesComparison(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analytics/compare-features", r.URL.Path)
		assert.Equal(t, "Tata", r.URL.Query().Get("company1"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"company1":          "Tata",
			"company2":          "Hyundai",
			"company1_features": map[string]float64{"engine": 82, "price": 88},
			"company2_features": map[string]float64{"engine": 79, "price": 74},
			"ai_insight":        "Tata leads on value.",
			"recommendations": map[string]string{
				"Best Value": "Tata",
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	comparison, err := client.CompareFeatures(context.Background(), "Tata", "Hyundai")
	require.NoError(t, err)

	assert.Equal(t, "Hyundai", comparison.Company2)
	assert.Equal(t, 88.0, comparison.Features1["price"])
	assert.Equal(t, "Tata leads on value.", comparison.AIInsight)
	assert.Equal(t, "Tata", comparison.Recommendations["Best Value"])
}

func TestGetServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	_, err := client.BrandSummary(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
