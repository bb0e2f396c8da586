// internal/server/handlers/posts.go

package handlers

import (
	"context"
	"net/http"
	"strconv"

	"geodrive/internal/domain/insight"
)

// PostProvider serves archived classification events.
type PostProvider interface {
	RecentPosts(ctx context.Context, limit int) ([]insight.ClassificationEvent, error)
}

const (
	defaultRecentPostsLimit = 50
	maxRecentPostsLimit     = 500
)

// PostsHandler handles archived post HTTP requests
type PostsHandler struct {
	posts PostProvider
}

// NewPostsHandler creates a new posts handler
func NewPostsHandler(posts PostProvider) *PostsHandler {
	return &PostsHandler{
		posts: posts,
	}
}

// GetRecentPosts returns the most recently archived posts, newest first
func (h *PostsHandler) GetRecentPosts(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentPostsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid limit", nil)
			return
		}
		limit = parsed
	}
	if limit > maxRecentPostsLimit {
		limit = maxRecentPostsLimit
	}

	posts, err := h.posts.RecentPosts(r.Context(), limit)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get posts", err)
		return
	}
	if posts == nil {
		posts = []insight.ClassificationEvent{}
	}

	respondWithJSON(w, http.StatusOK, posts)
}
