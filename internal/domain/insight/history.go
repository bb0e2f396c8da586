package insight

// GeoPoint is a map-ready position for a geotagged history entry.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HistoryEntry is a ClassificationEvent decorated for the activity feed.
// Entries are immutable; the store never edits a past entry.
type HistoryEntry struct {
	ID          string              `json:"id"`
	Event       ClassificationEvent `json:"event"`
	MarkerColor string              `json:"marker_color"`
	CapturedAt  string              `json:"captured_at"`
	Position    *GeoPoint           `json:"position,omitempty"`
}
