// Package server provides the HTTP REST API for the CV builder.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/yassine/cvbuilder/internal/billing"
	"github.com/yassine/cvbuilder/internal/config"
	"github.com/yassine/cvbuilder/internal/db"
	"github.com/yassine/cvbuilder/internal/export"
	"github.com/yassine/cvbuilder/internal/importer"
	"github.com/yassine/cvbuilder/internal/llm"
	"github.com/yassine/cvbuilder/internal/server/middleware"
	"github.com/yassine/cvbuilder/internal/server/ratelimit"
	"github.com/yassine/cvbuilder/internal/templates"
	"github.com/yassine/cvbuilder/internal/wizard"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	logger      *zap.Logger
	rateLimiter *ratelimit.Limiter

	store     Store
	sessions  wizard.SessionStore
	registry  *templates.Registry
	generator *llm.Generator
	llmClient llm.Client
	importer  *importer.Importer
	exporter  *export.PDFExporter
	stripe    *billing.Client

	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
}

// New creates a new server instance
func New(cfg *config.ServerConfig) (*Server, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	registry, err := templates.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to build template registry: %w", err)
	}

	llmClient, err := llm.NewClient(context.Background(), llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}

	var sessions wizard.SessionStore
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		sessions = wizard.NewRedisStore(client, wizard.DefaultSessionTTL)
		logger.Info("using redis wizard session store", zap.String("addr", cfg.RedisAddr))
	} else {
		sessions = wizard.NewMemoryStore()
		logger.Info("using in-memory wizard session store")
	}

	var stripeClient *billing.Client
	if cfg.StripeSecretKey != "" {
		stripeClient = billing.NewClient(cfg.StripeSecretKey)
	}

	s := &Server{
		db:        database,
		logger:    logger,
		store:     database,
		sessions:  sessions,
		registry:  registry,
		generator: llm.NewGenerator(llmClient),
		llmClient: llmClient,
		importer:  importer.New(llmClient),
		exporter:  export.NewPDFExporter(registry),
		stripe:    stripeClient,
	}

	// Rate limiter
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// Authentication services
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(s.store, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF export can take a while
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the route table. Everything except health, auth and the
// template gallery requires a valid token.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	// Authentication
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	// Template gallery is public so visitors can browse before signing up.
	mux.HandleFunc("GET /templates", s.handleListTemplates)
	mux.HandleFunc("GET /templates/{id}", s.handleGetTemplate)
	mux.HandleFunc("GET /templates/{id}/preview", s.handleTemplatePreview)

	// Authenticated API
	authed := http.NewServeMux()
	authed.HandleFunc("GET /users/me", s.handleGetMe)
	authed.HandleFunc("PUT /users/me/password", s.handleUpdatePassword)

	authed.HandleFunc("POST /wizard/sessions", s.handleCreateSession)
	authed.HandleFunc("GET /wizard/sessions/{id}", s.handleGetSession)
	authed.HandleFunc("POST /wizard/sessions/{id}/next", s.handleSessionNext)
	authed.HandleFunc("POST /wizard/sessions/{id}/previous", s.handleSessionPrevious)
	authed.HandleFunc("PUT /wizard/sessions/{id}/steps/{step}", s.handleSessionUpdateStep)
	authed.HandleFunc("POST /wizard/sessions/{id}/template", s.handleSessionSelectTemplate)
	authed.HandleFunc("POST /wizard/sessions/{id}/finish", s.handleSessionFinish)

	authed.HandleFunc("GET /resumes", s.handleListResumes)
	authed.HandleFunc("GET /resumes/{id}", s.handleGetResume)
	authed.HandleFunc("DELETE /resumes/{id}", s.handleDeleteResume)
	authed.HandleFunc("GET /resumes/{id}/html", s.handleResumeHTML)
	authed.HandleFunc("GET /resumes/{id}/pdf", s.handleResumePDF)

	authed.HandleFunc("POST /ai/generate", s.handleAIGenerate)
	authed.HandleFunc("GET /ai/generations", s.handleListAIGenerations)
	authed.HandleFunc("POST /uploads", s.handleUpload)
	authed.HandleFunc("GET /uploads/{id}", s.handleGetUpload)

	authed.HandleFunc("POST /billing/checkout", s.handleCheckout)
	authed.HandleFunc("POST /billing/refresh", s.handleBillingRefresh)

	authMW := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	mux.Handle("/", authMW(authed))

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.llmClient != nil {
		_ = s.llmClient.Close()
	}
	s.db.Close()
	_ = s.logger.Sync()
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpdatePassword routes the password change to the auth handler with
// the authenticated user's id.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	s.authHandler.UpdatePasswordWithUserID(w, r, userID)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode json response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handlerError maps a domain error to its HTTP response.
func (s *Server) handlerError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("internal error", zap.Error(err))
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier from the request.
// This uses the IP from RemoteAddr; X-Forwarded-For is deliberately ignored
// until the server sits behind a trusted proxy.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	s.logger.Warn("rate limit exceeded",
		zap.Int("limit", info.Limit),
		zap.Time("reset", info.ResetTime),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
