// internal/server/server.go

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nats-io/nats.go"

	"geodrive/internal/config"
	"geodrive/internal/server/handlers"
	"geodrive/internal/service/intel"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server
func NewServer(
	cfg config.ServerConfig,
	natsConn *nats.Conn,
	eventsTopic string,
	engine *intel.Engine,
	composer *intel.ReportComposer,
	summaries handlers.SummaryProvider,
	trends handlers.TrendProvider,
	comparer handlers.Comparer,
	sentiments handlers.SentimentProvider,
	posts handlers.PostProvider,
) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handler dependencies
	insightHandler := handlers.NewInsightHandler(engine, composer)
	analyticsHandler := handlers.NewAnalyticsHandler(summaries, trends, comparer, sentiments)
	postsHandler := handlers.NewPostsHandler(posts)

	// Routes
	router.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		// API version
		r.Route("/v1", func(r chi.Router) {
			// Ingestion API
			r.Route("/ai", func(r chi.Router) {
				r.Post("/analyze", insightHandler.Analyze)
				r.Post("/analyze-product", insightHandler.DeepScan)
			})

			// Engine state API
			r.Get("/fingerprint", insightHandler.GetFingerprint)
			r.Get("/history", insightHandler.GetHistory)
			r.Get("/report/{kind}", insightHandler.GetReport)

			// Archived posts API
			r.Get("/posts/recent", postsHandler.GetRecentPosts)

			// Analytics API
			r.Route("/analytics", func(r chi.Router) {
				r.Get("/brand-summary", analyticsHandler.GetBrandSummary)
				r.Get("/sentiment", analyticsHandler.GetSentimentByBrand)
				r.Get("/trend/{company}", analyticsHandler.GetTrend)
				r.Get("/compare", analyticsHandler.CompareProducts)
				r.Get("/compare-features", analyticsHandler.CompareFeatures)
			})
		})
	})

	// WebSocket endpoint for the live activity feed
	router.Get("/ws/feed", handlers.FeedWebSocketHandler(natsConn, eventsTopic))

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
