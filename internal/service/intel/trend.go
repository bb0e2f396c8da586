package intel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"geodrive/internal/domain/insight"
)

// ErrTrendUnavailable signals that the analytics collaborator has no trend
// history for the requested company. Callers can distinguish this from a flat
// trend, which is a snapshot with a zero change percentage.
var ErrTrendUnavailable = errors.New("trend unavailable")

// TrendFetcher requests a raw trend summary from the analytics collaborator.
// A nil snapshot with a nil error means the collaborator has no data.
type TrendFetcher interface {
	BrandTrend(ctx context.Context, company string) (*insight.TrendSnapshot, error)
}

// TrendSnapshotAdapter requests and normalizes a comparative trend result for
// one entity. Change percentage and direction are recomputed locally from the
// two window percentages so the fields can never disagree.
type TrendSnapshotAdapter struct {
	fetcher TrendFetcher
	cache   *gocache.Cache
	ttl     time.Duration
}

// NewTrendSnapshotAdapter creates a trend adapter caching snapshots for ttl.
func NewTrendSnapshotAdapter(fetcher TrendFetcher, ttl time.Duration) *TrendSnapshotAdapter {
	return &TrendSnapshotAdapter{
		fetcher: fetcher,
		cache:   gocache.New(ttl, 2*ttl),
		ttl:     ttl,
	}
}

// Fetch returns the trend snapshot for a company identifier. The identifier
// is normalized case-insensitively before the request. Unavailable trends are
// never cached.
func (a *TrendSnapshotAdapter) Fetch(ctx context.Context, company string) (*insight.TrendSnapshot, error) {
	key := strings.ToLower(strings.TrimSpace(company))
	if key == "" {
		return nil, fmt.Errorf("company identifier is required")
	}

	if cached, found := a.cache.Get(key); found {
		snapshot := cached.(insight.TrendSnapshot)
		return &snapshot, nil
	}

	raw, err := a.fetcher.BrandTrend(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("error fetching trend for %s: %w", key, err)
	}
	if raw == nil {
		return nil, ErrTrendUnavailable
	}

	snapshot := insight.TrendSnapshot{
		Company:         key,
		CurrentPercent:  raw.CurrentPercent,
		PreviousPercent: raw.PreviousPercent,
		ChangePercent:   raw.CurrentPercent - raw.PreviousPercent,
	}
	snapshot.Direction = insight.DirectionFor(snapshot.ChangePercent)

	a.cache.Set(key, snapshot, a.ttl)

	return &snapshot, nil
}
