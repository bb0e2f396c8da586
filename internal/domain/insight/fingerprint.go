package insight

// FingerprintVector is an ordered strength profile over the canonical topic
// set, one value per topic in Topics order, each clamped to [0,100]. Vectors
// are replaced wholesale on every update so consumers always observe a
// complete, consistent profile.
type FingerprintVector [NumTopics]float64

// ClampStrength bounds a raw strength value to the [0,100] range.
func ClampStrength(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Pairs expands the vector into labeled topic/strength pairs for rendering.
func (v FingerprintVector) Pairs() []TopicStrength {
	pairs := make([]TopicStrength, NumTopics)
	for i, topic := range Topics {
		pairs[i] = TopicStrength{Topic: topic, Strength: v[i]}
	}
	return pairs
}
