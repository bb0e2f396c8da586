package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"geodrive/internal/domain/insight"
)

// PostStore archives ingested classification events. It is write-mostly: the
// aggregation engine never reads its session state back from here.
type PostStore struct {
	db *pgxpool.Pool
}

// NewPostStore creates a new post store.
func NewPostStore(db *pgxpool.Pool) *PostStore {
	return &PostStore{
		db: db,
	}
}

// SavePost inserts a classification event into the social_posts table.
func (s *PostStore) SavePost(ctx context.Context, event insight.ClassificationEvent) error {
	query := `
		INSERT INTO social_posts (
			brand, text, latitude, longitude,
			sentiment, confidence, key_topic, created_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8
		)
	`

	_, err := s.db.Exec(
		ctx,
		query,
		event.Brand,
		event.Text,
		event.Latitude,
		event.Longitude,
		event.Sentiment,
		event.Confidence,
		event.KeyTopic,
		time.Now(),
	)

	if err != nil {
		return fmt.Errorf("error inserting post: %w", err)
	}

	return nil
}

// SentimentByBrand returns post counts grouped by brand and sentiment.
func (s *PostStore) SentimentByBrand(ctx context.Context) ([]insight.BrandSentiment, error) {
	query := `
		SELECT brand, sentiment, COUNT(*)
		FROM social_posts
		GROUP BY brand, sentiment
		ORDER BY brand, sentiment
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying sentiment rollup: %w", err)
	}
	defer rows.Close()

	var result []insight.BrandSentiment
	for rows.Next() {
		var row insight.BrandSentiment

		if err := rows.Scan(&row.Brand, &row.Sentiment, &row.Count); err != nil {
			return nil, fmt.Errorf("error scanning sentiment row: %w", err)
		}

		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sentiment rows: %w", err)
	}

	return result, nil
}

// RecentPosts returns the most recently archived events, newest first.
func (s *PostStore) RecentPosts(ctx context.Context, limit int) ([]insight.ClassificationEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT brand, text, latitude, longitude, sentiment, confidence, key_topic
		FROM social_posts
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying posts: %w", err)
	}
	defer rows.Close()

	var events []insight.ClassificationEvent
	for rows.Next() {
		var event insight.ClassificationEvent

		err := rows.Scan(
			&event.Brand,
			&event.Text,
			&event.Latitude,
			&event.Longitude,
			&event.Sentiment,
			&event.Confidence,
			&event.KeyTopic,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning post: %w", err)
		}

		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return events, nil
}
