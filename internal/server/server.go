package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"classforge/internal/cache"
	"classforge/internal/config"
	"classforge/internal/handlers"
	"classforge/internal/llm"
	"classforge/internal/repositories"
	"classforge/internal/routes"
	"classforge/internal/services"
)

// Server bundles the HTTP server with the database handle it owns.
type Server struct {
	cfg  *config.Config
	log  *zap.Logger
	db   *sql.DB
	http *http.Server
}

// New opens the diagram store, wires repositories, services and handlers
// together and returns a server ready to start.
func New(cfg *config.Config, log *zap.Logger) (*Server, error) {
	db, dialect, err := repositories.Open(cfg.Database.Dialect, cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open diagram store: %w", err)
	}

	diagramRepo := repositories.NewDiagramRepository(db, dialect)
	diagramService := services.NewDiagramService(diagramRepo)
	generateService := services.NewGenerateService(cache.NewMemory(), cfg.CacheTTL(), log)
	suggestService := services.NewSuggestService(llm.New(llm.Options{
		Endpoint: cfg.LLM.Endpoint,
		APIKey:   cfg.LLM.APIKey,
		Model:    cfg.LLM.Model,
		Timeout:  cfg.LLMTimeout(),
	}), log)

	generateHandler := handlers.NewGenerateHandler(generateService)
	diagramHandler := handlers.NewDiagramHandler(diagramService, generateService)
	suggestHandler := handlers.NewSuggestHandler(suggestService)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(log), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.Server.AllowOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}))

	routes.RegisterRoutes(router, generateHandler, diagramHandler, suggestHandler)

	return &Server{
		cfg: cfg,
		log: log,
		db:  db,
		http: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}, nil
}

// Addr returns the listen address.
func (s *Server) Addr() string { return s.http.Addr }

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Start serves HTTP until Shutdown is called. It returns
// http.ErrServerClosed after a clean shutdown, like net/http.
func (s *Server) Start() error {
	s.log.Info("server listening", zap.String("addr", s.http.Addr))
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests and closes the database.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if cerr := s.db.Close(); err == nil {
		err = cerr
	}
	return err
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}
