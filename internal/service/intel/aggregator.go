package intel

import (
	"sync"

	"geodrive/internal/domain/insight"
)

// sentimentScores maps a sentiment label to the spike strength written into
// the matched topic slot.
var sentimentScores = map[string]float64{
	insight.SentimentPositive: 95,
	insight.SentimentNeutral:  60,
	insight.SentimentNegative: 20,
}

// spikeBaseline is the strength every non-matched slot resets to on a spike
// update, so the radar emphasizes only the most recent topic.
const spikeBaseline = 0

// FingerprintAggregator owns the current fingerprint vector. It consumes
// classification events (spike mode) and deep-scan results (full-vector mode)
// and replaces the vector wholesale on every update.
type FingerprintAggregator struct {
	mu      sync.RWMutex
	current insight.FingerprintVector
}

// NewFingerprintAggregator creates an aggregator with an all-zero vector.
func NewFingerprintAggregator() *FingerprintAggregator {
	return &FingerprintAggregator{}
}

// Update applies a single-topic spike from a classification event. The
// matched slot is set from the sentiment score table and every other slot is
// reset to the baseline. An unrecognized topic leaves the vector unchanged.
func (a *FingerprintAggregator) Update(event insight.ClassificationEvent) insight.FingerprintVector {
	index, ok := insight.TopicIndex(event.KeyTopic)
	if !ok {
		return a.Vector()
	}

	score, ok := sentimentScores[event.Sentiment]
	if !ok {
		score = sentimentScores[insight.SentimentNeutral]
	}

	var next insight.FingerprintVector
	for i := range next {
		next[i] = spikeBaseline
	}
	next[index] = insight.ClampStrength(score)

	a.mu.Lock()
	a.current = next
	a.mu.Unlock()

	return next
}

// Replace installs a full per-topic vector from deep-scan fingerprint pairs.
// Topics absent from the pairs are set to 0, unrecognized topics are ignored
// and strengths are clamped to [0,100]. An empty input resets the vector to
// all-zero so a previous product's fingerprint never bleeds into a new lookup.
func (a *FingerprintAggregator) Replace(pairs []insight.TopicStrength) insight.FingerprintVector {
	var next insight.FingerprintVector
	for _, pair := range pairs {
		index, ok := insight.TopicIndex(pair.Topic)
		if !ok {
			continue
		}
		next[index] = insight.ClampStrength(pair.Strength)
	}

	a.mu.Lock()
	a.current = next
	a.mu.Unlock()

	return next
}

// Vector returns the current fingerprint vector.
func (a *FingerprintAggregator) Vector() insight.FingerprintVector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current
}
