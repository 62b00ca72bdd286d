package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/trovehq/trove/internal/account"
	"github.com/trovehq/trove/internal/collection"
	"github.com/trovehq/trove/internal/database"
	"github.com/trovehq/trove/internal/friends"
	"github.com/trovehq/trove/internal/handler"
	"github.com/trovehq/trove/internal/inventory"
	"github.com/trovehq/trove/internal/logger"
	"github.com/trovehq/trove/internal/market"
	"github.com/trovehq/trove/internal/metrics"
)

type Server struct {
	httpServer        *http.Server
	dbPool            database.Pool
	accountService    account.Service
	collectionService collection.Service
	inventoryService  inventory.Service
	marketService     market.Service
	friendsService    friends.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, accountService account.Service, collectionService collection.Service, inventoryService inventory.Service, marketService market.Service, friendsService friends.Service) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector(DefaultFailedAuthAlertThreshold, DefaultRequestRateLimit, DefaultRateWindow)

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Account routes
		accountHandler := handler.NewAccountHandler(accountService)
		r.Get("/account", accountHandler.Get)
		r.Route("/account", func(r chi.Router) {
			r.Post("/login", accountHandler.Login)
			r.Post("/rename", accountHandler.Rename)
			r.Delete("/", accountHandler.Delete)
		})

		// Collection routes
		collectionHandler := handler.NewCollectionHandler(collectionService)
		r.Post("/collect", collectionHandler.Collect)
		r.Get("/collect/status", collectionHandler.Status)

		// Inventory routes
		inventoryHandler := handler.NewInventoryHandler(inventoryService)
		r.Get("/inventory", inventoryHandler.Get)
		r.Route("/inventory", func(r chi.Router) {
			r.Post("/add", inventoryHandler.Add)
			r.Post("/remove", inventoryHandler.Remove)
			r.Post("/transfer", inventoryHandler.Transfer)
		})

		// Market routes
		marketHandler := handler.NewMarketHandler(marketService)
		r.Route("/market", func(r chi.Router) {
			r.Get("/listings", marketHandler.Browse)
			r.Get("/listings/mine", marketHandler.MyListings)
			r.Get("/listing/{listingID}", marketHandler.GetListing)
			r.Post("/list", marketHandler.List)
			r.Post("/buy", marketHandler.Buy)
			r.Post("/cancel", marketHandler.Cancel)
		})

		// Friends routes
		friendsHandler := handler.NewFriendsHandler(friendsService)
		r.Get("/friends", friendsHandler.List)
		r.Route("/friends", func(r chi.Router) {
			r.Post("/request", friendsHandler.Request)
			r.Post("/accept", friendsHandler.Accept)
			r.Post("/reject", friendsHandler.Reject)
			r.Post("/cancel", friendsHandler.Cancel)
			r.Post("/remove", friendsHandler.Remove)
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:            dbPool,
		accountService:    accountService,
		collectionService: collectionService,
		inventoryService:  inventoryService,
		marketService:     marketService,
		friendsService:    friendsService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, "Authorization") {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug("Request headers", "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
