package intel

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"geodrive/internal/domain/insight"
)

// brandColors maps known brands to their feed marker color. Brand match takes
// precedence over sentiment when both resolve.
var brandColors = map[string]string{
	"tata":     "#2563eb",
	"hyundai":  "#0ea5e9",
	"maruti":   "#f59e0b",
	"mahindra": "#16a34a",
	"kia":      "#be123c",
	"toyota":   "#dc2626",
	"honda":    "#0891b2",
	"bmw":      "#7c3aed",
	"porsche":  "#b91c1c",
	"ford":     "#1e40af",
}

// sentimentColors is the fallback palette when the brand is unknown.
var sentimentColors = map[string]string{
	insight.SentimentPositive: "#22c55e",
	insight.SentimentNegative: "#ef4444",
	insight.SentimentNeutral:  "#64748b",
}

const defaultMarkerColor = "#64748b"

// ActivityHistoryStore is an append-only ordered log of decorated
// classification events, newest first. Entries are never edited or evicted;
// unbounded growth over a session is a deliberate tradeoff.
type ActivityHistoryStore struct {
	mu      sync.RWMutex
	entries []insight.HistoryEntry
	clock   func() time.Time
}

// NewActivityHistoryStore creates an empty history store.
func NewActivityHistoryStore() *ActivityHistoryStore {
	return &ActivityHistoryStore{
		clock: time.Now,
	}
}

// Append decorates an event and prepends it to the history. The capture time
// is display metadata only and is not used for trend windowing.
func (s *ActivityHistoryStore) Append(event insight.ClassificationEvent) insight.HistoryEntry {
	entry := insight.HistoryEntry{
		ID:          uuid.New().String(),
		Event:       event,
		MarkerColor: markerColor(event),
		CapturedAt:  s.clock().Format(time.Kitchen),
	}

	if event.HasLocation() {
		entry.Position = &insight.GeoPoint{
			Latitude:  *event.Latitude,
			Longitude: *event.Longitude,
		}
	}

	s.mu.Lock()
	s.entries = append([]insight.HistoryEntry{entry}, s.entries...)
	s.mu.Unlock()

	return entry
}

// Entries returns a copy of the full history, newest first.
func (s *ActivityHistoryStore) Entries() []insight.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]insight.HistoryEntry, len(s.entries))
	copy(entries, s.entries)
	return entries
}

// GeoEntries returns only the entries with a map-ready position, newest
// first. Entries without coordinates stay in the feed but are excluded from
// spatial views.
func (s *ActivityHistoryStore) GeoEntries() []insight.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []insight.HistoryEntry
	for _, entry := range s.entries {
		if entry.Position != nil {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Size returns the number of entries in the history.
func (s *ActivityHistoryStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// markerColor resolves a marker color with brand-first precedence: exact
// brand match, then sentiment fallback, then the neutral default.
func markerColor(event insight.ClassificationEvent) string {
	if color, ok := brandColors[strings.ToLower(strings.TrimSpace(event.Brand))]; ok {
		return color
	}
	if color, ok := sentimentColors[event.Sentiment]; ok {
		return color
	}
	return defaultMarkerColor
}
