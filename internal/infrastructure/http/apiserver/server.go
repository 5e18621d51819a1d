// Package apiserver provides the JSON API HTTP server.
package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/vothanhthong/yummyai/internal/infrastructure/auth"
	"github.com/vothanhthong/yummyai/internal/infrastructure/config"
	"github.com/vothanhthong/yummyai/internal/infrastructure/http/handlers"
	"github.com/vothanhthong/yummyai/internal/infrastructure/http/middleware"
	"github.com/vothanhthong/yummyai/internal/infrastructure/monitoring"
	"github.com/vothanhthong/yummyai/internal/ports/inbound"
	"go.uber.org/zap"
)

// Server is the API HTTP server: chat is open to anonymous callers,
// cookbook, suggestions and meal plan require a signed-in user.
type Server struct {
	config  *config.Config
	logger  *zap.Logger
	server  *http.Server
	router  *chi.Mux
	tokens  *auth.TokenService
	metrics *monitoring.Metrics

	chatService       inbound.ChatService
	cookbookService   inbound.CookbookService
	suggestionService inbound.SuggestionService
	mealPlanService   inbound.MealPlanService
}

// NewServer creates the API server instance.
func NewServer(
	cfg *config.Config,
	log *zap.Logger,
	tokens *auth.TokenService,
	metrics *monitoring.Metrics,
	chatService inbound.ChatService,
	cookbookService inbound.CookbookService,
	suggestionService inbound.SuggestionService,
	mealPlanService inbound.MealPlanService,
) *Server {
	s := &Server{
		config:            cfg,
		logger:            log,
		tokens:            tokens,
		metrics:           metrics,
		chatService:       chatService,
		cookbookService:   cookbookService,
		suggestionService: suggestionService,
		mealPlanService:   mealPlanService,
	}

	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.CORS())
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.Metrics(s.metrics))

	r.Get("/health", s.handleHealthCheck)
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		s.setupAPIV1Routes(r)
	})

	return r
}

func (s *Server) setupAPIV1Routes(r chi.Router) {
	chatH := handlers.NewChatAPIHandlers(s.chatService, s.logger)
	cookbookH := handlers.NewCookbookAPIHandlers(s.cookbookService, s.logger)
	suggestionH := handlers.NewSuggestionAPIHandlers(s.suggestionService, s.logger)
	mealPlanH := handlers.NewMealPlanAPIHandlers(s.mealPlanService, s.logger)

	// Chat works without a session; anonymous chats are just never
	// persisted.
	r.Route("/chat", func(r chi.Router) {
		r.Use(middleware.MaybeAuthenticate(s.tokens))
		r.Get("/history", chatH.History)
		r.Post("/history/older", chatH.LoadOlder)
		r.Post("/send", chatH.Send)
		r.Delete("/history", chatH.Clear)
	})

	r.Route("/cookbook", func(r chi.Router) {
		r.Use(middleware.Authenticate(s.tokens))
		r.Get("/", cookbookH.List)
		r.Post("/", cookbookH.Save)
		r.Get("/identifiers", cookbookH.SavedIdentifiers)
		r.Delete("/{recipeID}", cookbookH.Remove)
	})

	r.Route("/suggestions", func(r chi.Router) {
		r.Use(middleware.Authenticate(s.tokens))
		r.Get("/", suggestionH.List)
		r.Post("/", suggestionH.Create)
		r.Patch("/{suggestionID}", suggestionH.Update)
		r.Delete("/{suggestionID}", suggestionH.Delete)
	})

	r.Route("/mealplan", func(r chi.Router) {
		r.Use(middleware.Authenticate(s.tokens))
		r.Get("/", mealPlanH.Week)
		r.Put("/", mealPlanH.Plan)
		r.Delete("/", mealPlanH.Unplan)
	})
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","service":%q,"version":%q}`,
		s.config.App.Name, s.config.App.Version)
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.logger.Info("starting API server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.server.Shutdown(ctx)
}

// Router exposes the router for tests.
func (s *Server) Router() *chi.Mux {
	return s.router
}
