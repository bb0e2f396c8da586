package intel

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geodrive/internal/domain/insight"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestAppendOrdersNewestFirst(t *testing.T) {
	store := NewActivityHistoryStore()

	for i := 0; i < 5; i++ {
		store.Append(insight.ClassificationEvent{
			Text:      fmt.Sprintf("feedback %d", i),
			Sentiment: insight.SentimentNeutral,
		})
	}

	entries := store.Entries()
	require.Len(t, entries, 5)
	for i, entry := range entries {
		assert.Equal(t, fmt.Sprintf("feedback %d", 4-i), entry.Event.Text)
	}
	assert.Equal(t, 5, store.Size())
}

func TestAppendDecoratesEntry(t *testing.T) {
	store := NewActivityHistoryStore()
	store.clock = func() time.Time {
		return time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC)
	}

	entry := store.Append(insight.ClassificationEvent{
		Text:      "smooth ride",
		Brand:     "Hyundai",
		Sentiment: insight.SentimentPositive,
		Latitude:  floatPtr(19.07),
		Longitude: floatPtr(72.87),
	})

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "2:30PM", entry.CapturedAt)
	require.NotNil(t, entry.Position)
	assert.Equal(t, 19.07, entry.Position.Latitude)
	assert.Equal(t, 72.87, entry.Position.Longitude)
}

func TestMarkerColorPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		event insight.ClassificationEvent
		want  string
	}{
		{
			name:  "brand match wins over sentiment",
			event: insight.ClassificationEvent{Brand: "Tata", Sentiment: insight.SentimentNegative},
			want:  brandColors["tata"],
		},
		{
			name:  "unknown brand falls back to sentiment",
			event: insight.ClassificationEvent{Brand: "Lada", Sentiment: insight.SentimentPositive},
			want:  sentimentColors[insight.SentimentPositive],
		},
		{
			name:  "negative sentiment fallback",
			event: insight.ClassificationEvent{Sentiment: insight.SentimentNegative},
			want:  sentimentColors[insight.SentimentNegative],
		},
		{
			name:  "nothing resolves",
			event: insight.ClassificationEvent{Brand: "Lada", Sentiment: "unknown"},
			want:  defaultMarkerColor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, markerColor(tt.event))
		})
	}
}

func TestGeoEntriesExcludesUntaggedEvents(t *testing.T) {
	store := NewActivityHistoryStore()

	store.Append(insight.ClassificationEvent{Text: "no location", Sentiment: insight.SentimentNeutral})
	store.Append(insight.ClassificationEvent{
		Text:      "tagged",
		Sentiment: insight.SentimentPositive,
		Latitude:  floatPtr(28.61),
		Longitude: floatPtr(77.2),
	})

	geo := store.GeoEntries()
	require.Len(t, geo, 1)
	assert.Equal(t, "tagged", geo[0].Event.Text)

	// Untagged events stay in the plain feed.
	assert.Len(t, store.Entries(), 2)
}

func TestEntriesReturnsCopy(t *testing.T) {
	store := NewActivityHistoryStore()
	store.Append(insight.ClassificationEvent{Text: "original", Sentiment: insight.SentimentNeutral})

	entries := store.Entries()
	entries[0].Event.Text = "mutated"

	assert.Equal(t, "original", store.Entries()[0].Event.Text)
}
