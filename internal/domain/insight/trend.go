package insight

// TrendDirection classifies the sign of a trend's change percentage.
type TrendDirection string

const (
	TrendUpward   TrendDirection = "upward"
	TrendDownward TrendDirection = "downward"
	TrendStable   TrendDirection = "stable"
)

// DirectionFor derives the trend direction from a change percentage. The
// direction is always a pure function of the sign, never set independently.
func DirectionFor(changePercent float64) TrendDirection {
	switch {
	case changePercent > 0:
		return TrendUpward
	case changePercent < 0:
		return TrendDownward
	default:
		return TrendStable
	}
}

// TrendSnapshot compares positive-sentiment percentages over two fixed 30-day
// windows for one entity.
type TrendSnapshot struct {
	Company         string         `json:"company"`
	CurrentPercent  float64        `json:"current_percent"`
	PreviousPercent float64        `json:"previous_percent"`
	ChangePercent   float64        `json:"change_percent"`
	Direction       TrendDirection `json:"trend_direction"`
}
