package intel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"geodrive/internal/domain/insight"
)

// ErrEmptyInput signals that a submission was rejected locally, before any
// collaborator request was issued.
var ErrEmptyInput = errors.New("empty input")

// Classifier is the classification collaborator surface the engine consumes.
type Classifier interface {
	Analyze(ctx context.Context, text string, latitude, longitude *float64) (insight.ClassificationEvent, error)
	DeepScan(ctx context.Context, query string) (*insight.ProductProfile, error)
}

// PostArchive persists ingested classification events. Archive failures are
// non-fatal: the engine's session state never reads back from it.
type PostArchive interface {
	SavePost(ctx context.Context, event insight.ClassificationEvent) error
}

// EngineConfig contains configuration for the aggregation engine.
type EngineConfig struct {
	FeedTopic string
}

// Engine coordinates ingestion: it resolves classification and deep-scan
// results into fingerprint and history updates, archives posts, and publishes
// feed events. Commits are guarded by a monotonically increasing sequence so
// a request superseded by a newer one has its result discarded rather than
// overwriting newer state.
type Engine struct {
	classifier Classifier
	aggregator *FingerprintAggregator
	history    *ActivityHistoryStore
	trends     *TrendSnapshotAdapter
	archive    PostArchive
	eventBus   *nats.Conn
	config     EngineConfig

	mu      sync.Mutex
	seq     uint64
	applied uint64
	product *insight.ProductProfile
}

// NewEngine creates the aggregation engine. archive and eventBus may be nil.
func NewEngine(
	classifier Classifier,
	aggregator *FingerprintAggregator,
	history *ActivityHistoryStore,
	trends *TrendSnapshotAdapter,
	archive PostArchive,
	eventBus *nats.Conn,
	config EngineConfig,
) *Engine {
	return &Engine{
		classifier: classifier,
		aggregator: aggregator,
		history:    history,
		trends:     trends,
		archive:    archive,
		eventBus:   eventBus,
		config:     config,
	}
}

// AnalyzeResult is the outcome of a free-text submission. Entry is nil when
// the result was superseded and nothing was appended to the history.
type AnalyzeResult struct {
	Event       insight.ClassificationEvent `json:"event"`
	Fingerprint insight.FingerprintVector   `json:"fingerprint"`
	Entry       *insight.HistoryEntry       `json:"entry,omitempty"`
	Superseded  bool                        `json:"superseded,omitempty"`
}

// ScanResult is the outcome of a deep-scan product lookup.
type ScanResult struct {
	Profile     insight.ProductProfile    `json:"profile"`
	Fingerprint insight.FingerprintVector `json:"fingerprint"`
	Trend       *insight.TrendSnapshot    `json:"trend,omitempty"`
	Superseded  bool                      `json:"superseded,omitempty"`
}

// Analyze classifies free text and, unless superseded, applies the spike
// update and appends the decorated event to the history. A collaborator
// failure leaves all state unchanged.
func (e *Engine) Analyze(ctx context.Context, text string, latitude, longitude *float64) (*AnalyzeResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text is required: %w", ErrEmptyInput)
	}

	seq := e.begin()

	event, err := e.classifier.Analyze(ctx, text, latitude, longitude)
	if err != nil {
		return nil, fmt.Errorf("error classifying text: %w", err)
	}

	result := &AnalyzeResult{Event: event}

	committed := e.commit(seq, func() {
		result.Fingerprint = e.aggregator.Update(event)
		entry := e.history.Append(event)
		result.Entry = &entry
	})
	if !committed {
		result.Superseded = true
		result.Fingerprint = e.aggregator.Vector()
		return result, nil
	}

	if e.archive != nil {
		if err := e.archive.SavePost(ctx, event); err != nil {
			log.Warn().Err(err).Msg("failed to archive post")
		}
	}

	e.publishFeedEvent("classified", result.Entry)

	return result, nil
}

// DeepScan looks up a product profile and, unless superseded, replaces the
// fingerprint vector with the profile's per-topic strengths. A profile
// without fingerprint data resets the vector to all-zero. The company trend
// is prefetched best-effort.
func (e *Engine) DeepScan(ctx context.Context, query string) (*ScanResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("model query is required: %w", ErrEmptyInput)
	}

	seq := e.begin()

	profile, err := e.classifier.DeepScan(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error scanning product: %w", err)
	}

	result := &ScanResult{Profile: *profile}

	committed := e.commit(seq, func() {
		result.Fingerprint = e.aggregator.Replace(profile.Fingerprint)
		e.product = profile
	})
	if !committed {
		result.Superseded = true
		result.Fingerprint = e.aggregator.Vector()
		return result, nil
	}

	if e.trends != nil && profile.Company != "" {
		trend, err := e.trends.Fetch(ctx, profile.Company)
		if err != nil {
			log.Debug().Err(err).Str("company", profile.Company).Msg("trend prefetch skipped")
		} else {
			result.Trend = trend
		}
	}

	e.publishFeedEvent("scanned", result.Profile)

	return result, nil
}

// Fingerprint returns the current fingerprint vector.
func (e *Engine) Fingerprint() insight.FingerprintVector {
	return e.aggregator.Vector()
}

// History returns the activity history, optionally restricted to geotagged
// entries.
func (e *Engine) History(geoOnly bool) []insight.HistoryEntry {
	if geoOnly {
		return e.history.GeoEntries()
	}
	return e.history.Entries()
}

// ReportState snapshots the state the report composer consumes.
func (e *Engine) ReportState() insight.ReportState {
	e.mu.Lock()
	product := e.product
	e.mu.Unlock()

	return insight.ReportState{
		Product:     product,
		Fingerprint: e.aggregator.Vector(),
		HistorySize: e.history.Size(),
	}
}

// begin reserves the next request sequence number.
func (e *Engine) begin() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seq++
	return e.seq
}

// commit applies a state transition unless a newer request already committed.
// Last-write-wins is explicit here, not an accident of request timing.
func (e *Engine) commit(seq uint64, apply func()) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if seq < e.applied {
		return false
	}
	e.applied = seq
	apply()
	return true
}

// publishFeedEvent pushes a feed event onto the event bus for live clients.
func (e *Engine) publishFeedEvent(kind string, payload interface{}) {
	if e.eventBus == nil || e.config.FeedTopic == "" {
		return
	}

	data, err := json.Marshal(map[string]interface{}{
		"type":    kind,
		"payload": payload,
	})
	if err != nil {
		log.Error().Err(err).Str("type", kind).Msg("failed to marshal feed event")
		return
	}

	topic := fmt.Sprintf("%s.%s", e.config.FeedTopic, kind)
	if err := e.eventBus.Publish(topic, data); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("failed to publish feed event")
	}
}
