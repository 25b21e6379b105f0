// Package devserver is a local stand-in for the Fridge backend. It serves
// the REST contract the client consumes from a gorm database, signing
// HS256 tokens and hashing passwords with bcrypt.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pageza/fridge/config"
	"github.com/pageza/fridge/internal/logger"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	log    logrus.FieldLogger
}

// Option configures a Server
type Option func(*options)

type options struct {
	log      logrus.FieldLogger
	registry *prometheus.Registry
	limiter  *RateLimiter
}

// WithLogger sets the server logger
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) { o.log = log }
}

// WithRegistry sets the registry served on /metrics
func WithRegistry(reg *prometheus.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithRateLimiter limits recipe generation
func WithRateLimiter(rl *RateLimiter) Option {
	return func(o *options) { o.limiter = rl }
}

// New migrates db and builds the router
func New(cfg *config.Config, db *gorm.DB, opts ...Option) (*Server, error) {
	o := &options{log: logger.Discard()}
	for _, opt := range opts {
		opt(o)
	}
	if o.registry == nil {
		o.registry = prometheus.NewRegistry()
	}
	log := o.log.WithField("component", "devserver")

	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("failed to migrate dev server tables: %w", err)
	}

	if cfg.Env == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	authService := NewAuthService(db, cfg.JWTSecret)
	handlers := NewHandlers(authService, NewKitchenService(db), log)
	metrics := newHTTPMetrics(o.registry)

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log), metrics.middleware())
	if len(cfg.CORSOrigins) > 0 {
		router.Use(CORS(cfg.CORSOrigins))
	}

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{})))

	auth := router.Group("/auth")
	{
		auth.POST("/login", handlers.Login)
		auth.POST("/register", handlers.Register)
	}

	// Protected routes
	protected := router.Group("")
	protected.Use(AuthMiddleware(authService))

	generate := []gin.HandlerFunc{handlers.GenerateRecipe}
	if o.limiter != nil {
		generate = append([]gin.HandlerFunc{o.limiter.Middleware()}, generate...)
	}

	recipes := protected.Group("/recipes")
	{
		recipes.GET("", handlers.ListRecipes)
		recipes.GET("/recommended", handlers.Recommendations)
		recipes.GET("/history", handlers.RecipeHistory)
		recipes.POST("/generate", generate...)
		recipes.GET("/:id", handlers.GetRecipe)
		recipes.POST("/:id/save", handlers.SaveRecipe)
		recipes.POST("/:id/favorite", handlers.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", handlers.UnfavoriteRecipe)
	}

	user := protected.Group("/user")
	{
		user.GET("/saved-recipes", handlers.SavedRecipes)
		user.GET("/recipe-history", handlers.RecipeHistory)
		user.GET("/profile", handlers.Profile)
		user.PUT("/preferences", handlers.UpdatePreferences)
	}

	fitness := protected.Group("/fitness")
	{
		fitness.GET("/goals", handlers.FitnessGoals)
		fitness.POST("/goals", handlers.UpdateFitnessGoals)
	}

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.ServerHost, cfg.ServerPort),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		log: log,
	}, nil
}

// Handler returns the router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr is the address Start listens on
func (s *Server) Addr() string {
	return s.http.Addr
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.log.WithField("addr", s.http.Addr).Info("dev server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
