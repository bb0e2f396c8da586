package intel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geodrive/internal/domain/insight"
)

type fakeClassifier struct {
	analyze  func(ctx context.Context, text string, latitude, longitude *float64) (insight.ClassificationEvent, error)
	deepScan func(ctx context.Context, query string) (*insight.ProductProfile, error)
}

func (f *fakeClassifier) Analyze(ctx context.Context, text string, latitude, longitude *float64) (insight.ClassificationEvent, error) {
	return f.analyze(ctx, text, latitude, longitude)
}

func (f *fakeClassifier) DeepScan(ctx context.Context, query string) (*insight.ProductProfile, error) {
	return f.deepScan(ctx, query)
}

func newTestEngine(classifier Classifier, trends *TrendSnapshotAdapter) *Engine {
	return NewEngine(
		classifier,
		NewFingerprintAggregator(),
		NewActivityHistoryStore(),
		trends,
		nil,
		nil,
		EngineConfig{},
	)
}

func TestAnalyzeUpdatesFingerprintAndHistory(t *testing.T) {
	classifier := &fakeClassifier{
		analyze: func(ctx context.Context, text string, latitude, longitude *float64) (insight.ClassificationEvent, error) {
			return insight.ClassificationEvent{
				Text:      text,
				Brand:     "Porsche",
				Sentiment: insight.SentimentPositive,
				KeyTopic:  "engine",
			}, nil
		},
	}
	engine := newTestEngine(classifier, nil)

	result, err := engine.Analyze(context.Background(), "the engine sounds powerful", nil, nil)
	require.NoError(t, err)

	want := insight.FingerprintVector{0, 95, 0, 0, 0, 0, 0, 0, 0, 0}
	assert.Equal(t, want, result.Fingerprint)
	assert.False(t, result.Superseded)

	require.NotNil(t, result.Entry)
	assert.NotEmpty(t, result.Entry.ID)

	history := engine.History(false)
	require.Len(t, history, 1)
	assert.Equal(t, "the engine sounds powerful", history[0].Event.Text)
}

func TestAnalyzeRejectsEmptyText(t *testing.T) {
	classifier := &fakeClassifier{
		analyze: func(ctx context.Context, text string, latitude, longitude *float64) (insight.ClassificationEvent, error) {
			t.Fatal("no collaborator request may be issued for empty text")
			return insight.ClassificationEvent{}, nil
		},
	}
	engine := newTestEngine(classifier, nil)

	_, err := engine.Analyze(context.Background(), "   ", nil, nil)

	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestAnalyzeFailureLeavesStateUnchanged(t *testing.T) {
	calls := 0
	classifier := &fakeClassifier{
		analyze: func(ctx context.Context, text string, latitude, longitude *float64) (insight.ClassificationEvent, error) {
			calls++
			if calls > 1 {
				return insight.ClassificationEvent{}, errors.New("service unavailable")
			}
			return insight.ClassificationEvent{Text: text, Sentiment: insight.SentimentPositive, KeyTopic: "engine"}, nil
		},
	}
	engine := newTestEngine(classifier, nil)

	_, err := engine.Analyze(context.Background(), "good engine", nil, nil)
	require.NoError(t, err)
	before := engine.Fingerprint()

	_, err = engine.Analyze(context.Background(), "another one", nil, nil)
	require.Error(t, err)

	assert.Equal(t, before, engine.Fingerprint())
	assert.Len(t, engine.History(false), 1)
}

func TestDeepScanReplacesFingerprint(t *testing.T) {
	classifier := &fakeClassifier{
		deepScan: func(ctx context.Context, query string) (*insight.ProductProfile, error) {
			return &insight.ProductProfile{
				ModelName: "Tata Nexon",
				Company:   "Tata",
				Fingerprint: []insight.TopicStrength{
					{Topic: "price", Strength: 80},
					{Topic: "engine", Strength: 40},
				},
			}, nil
		},
	}
	trends := NewTrendSnapshotAdapter(&fakeTrendFetcher{
		snapshot: &insight.TrendSnapshot{CurrentPercent: 70, PreviousPercent: 62},
	}, time.Minute)
	engine := newTestEngine(classifier, trends)

	result, err := engine.DeepScan(context.Background(), "Tata Nexon")
	require.NoError(t, err)

	want := insight.FingerprintVector{0, 40, 0, 80, 0, 0, 0, 0, 0, 0}
	assert.Equal(t, want, result.Fingerprint)

	require.NotNil(t, result.Trend)
	assert.Equal(t, insight.TrendUpward, result.Trend.Direction)

	state := engine.ReportState()
	require.NotNil(t, state.Product)
	assert.Equal(t, "Tata Nexon", state.Product.ModelName)
}

func TestDeepScanWithoutFingerprintResetsVector(t *testing.T) {
	classifier := &fakeClassifier{
		analyze: func(ctx context.Context, text string, latitude, longitude *float64) (insight.ClassificationEvent, error) {
			return insight.ClassificationEvent{Text: text, Sentiment: insight.SentimentPositive, KeyTopic: "engine"}, nil
		},
		deepScan: func(ctx context.Context, query string) (*insight.ProductProfile, error) {
			return &insight.ProductProfile{ModelName: "Mystery Model"}, nil
		},
	}
	engine := newTestEngine(classifier, nil)

	_, err := engine.Analyze(context.Background(), "spike first", nil, nil)
	require.NoError(t, err)

	result, err := engine.DeepScan(context.Background(), "Mystery Model")
	require.NoError(t, err)

	// The previous spike must not bleed into a scan with no fingerprint data.
	assert.Equal(t, insight.FingerprintVector{}, result.Fingerprint)
}

func TestSupersededResultIsDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	classifier := &fakeClassifier{
		analyze: func(ctx context.Context, text string, latitude, longitude *float64) (insight.ClassificationEvent, error) {
			if text == "slow" {
				close(started)
				<-release
				return insight.ClassificationEvent{Text: text, Sentiment: insight.SentimentPositive, KeyTopic: "engine"}, nil
			}
			return insight.ClassificationEvent{Text: text, Sentiment: insight.SentimentNegative, KeyTopic: "price"}, nil
		},
	}
	engine := newTestEngine(classifier, nil)

	type analyzeOutcome struct {
		result *AnalyzeResult
		err    error
	}
	results := make(chan analyzeOutcome, 1)
	go func() {
		result, err := engine.Analyze(context.Background(), "slow", nil, nil)
		results <- analyzeOutcome{result: result, err: err}
	}()

	<-started
	_, err := engine.Analyze(context.Background(), "fast", nil, nil)
	require.NoError(t, err)
	close(release)

	outcome := <-results
	require.NoError(t, outcome.err)
	slow := outcome.result
	assert.True(t, slow.Superseded)

	// Nothing was appended for the stale request, so no entry is reported.
	assert.Nil(t, slow.Entry)

	// The newer price spike wins; the stale engine spike is discarded.
	want := insight.FingerprintVector{0, 0, 0, 20, 0, 0, 0, 0, 0, 0}
	assert.Equal(t, want, engine.Fingerprint())
	assert.Equal(t, want, slow.Fingerprint)

	history := engine.History(false)
	require.Len(t, history, 1)
	assert.Equal(t, "fast", history[0].Event.Text)
}
