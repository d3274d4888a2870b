package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	api "github.com/memstack/memdrive/internal/api/http"
	"github.com/memstack/memdrive/internal/api/middleware"
	"github.com/memstack/memdrive/internal/config"
	"github.com/memstack/memdrive/internal/engine"
	"github.com/memstack/memdrive/internal/logging"
	"github.com/memstack/memdrive/internal/monitoring"
	"github.com/memstack/memdrive/internal/providers/backup"
	"github.com/memstack/memdrive/internal/providers/catalog"
	"github.com/memstack/memdrive/internal/providers/drive"
	"github.com/memstack/memdrive/internal/service"
	"github.com/memstack/memdrive/internal/snapshot"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	engine   *engine.Engine
	registry *service.Registry
	backups  *snapshot.Manager
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
	httpSrv  *http.Server
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize logger
	logger := logging.Build(cfg.Logging.Level, cfg.Logging.Development)

	logger.Info("Initializing drive server",
		zap.String("port", cfg.Server.Port),
		zap.Strings("units", cfg.Drive.Units),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()
	logger.Info("Performance monitoring initialized")

	// Initialize the drive engine
	eng, err := engine.New(engine.Options{
		Units:         cfg.Drive.Units,
		IndexDegree:   cfg.Drive.IndexDegree,
		LogOperations: cfg.Drive.LogOperations,
		HistoryLimit:  cfg.Drive.HistoryLimit,
		Logger:        logger.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	// Initialize snapshot persistence
	backups, err := snapshot.NewManager(snapshot.Options{
		Dir:      cfg.Backup.Dir,
		Compress: cfg.Backup.Compress,
		Checksum: cfg.Backup.Checksum,
		Logger:   logger.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot manager: %w", err)
	}

	// Restore the latest snapshot, or seed a fresh hierarchy
	restored := false
	if cfg.Backup.Restore {
		if name, err := backups.RestoreLatest(eng); err == nil {
			logger.Info("Restored latest snapshot", zap.String("name", name))
			metrics.IncSnapshotsRestored()
			restored = true
		} else {
			logger.Info("Starting with a fresh drive", zap.Error(err))
		}
	}
	if !restored && cfg.Drive.Seed {
		if err := eng.Seed(); err != nil {
			return nil, fmt.Errorf("failed to seed drive: %w", err)
		}
	}
	metrics.SetCatalogEntries(eng.Catalog().Len())
	metrics.SetSessionsActive(eng.SessionCount())

	// Register service providers
	serviceRegistry := service.NewRegistry()
	logger.Info("Registering service providers...")
	registerProviders(serviceRegistry, eng, backups, metrics, logger)

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.ForOrigins(cfg.CORS.Origins)))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	// Create handlers
	handlers := api.NewHandlers(eng, serviceRegistry, metrics, logger.Logger)

	// Register routes
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	// Service management
	router.GET("/services", handlers.ListServices)
	router.POST("/services/discover", handlers.DiscoverServices)
	router.POST("/services/execute", handlers.ExecuteService)

	// Session endpoints
	router.POST("/sessions", handlers.CreateSession)
	router.GET("/sessions", handlers.ListSessions)
	router.GET("/sessions/:id", handlers.GetSession)
	router.DELETE("/sessions/:id", handlers.DeleteSession)

	// Metrics endpoints
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/metrics/json", handlers.MetricsJSON)

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		engine:   eng,
		registry: serviceRegistry,
		backups:  backups,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
		httpSrv: &http.Server{
			Addr:    cfg.Server.Host + ":" + cfg.Server.Port,
			Handler: router,
		},
	}, nil
}

// Engine exposes the drive engine, mainly for tests.
func (s *Server) Engine() *engine.Engine {
	return s.engine
}

// Router exposes the HTTP handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.httpSrv.Addr))
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		s.logger.Error("Failed to stop HTTP server", zap.Error(err))
		return fmt.Errorf("failed to stop http server: %w", err)
	}

	// Save a parting snapshot so a restart resumes where it stopped
	if s.config.Backup.Restore {
		if name, err := s.backups.Save(s.engine); err != nil {
			s.logger.Warn("Failed to save shutdown snapshot", zap.Error(err))
		} else {
			s.logger.Info("Saved shutdown snapshot", zap.String("name", name))
			if s.config.Backup.Keep > 0 {
				if removed, err := s.backups.Prune(s.config.Backup.Keep); err == nil && len(removed) > 0 {
					s.logger.Info("Pruned old snapshots", zap.Int("removed", len(removed)))
				}
			}
		}
	}

	// Sync logger before exit
	s.logger.Sync()

	return nil
}

func registerProviders(registry *service.Registry, eng *engine.Engine, backups *snapshot.Manager, metrics *monitoring.Metrics, logger *logging.Logger) {
	// Drive provider
	if err := registry.Register(drive.NewProvider(eng)); err != nil {
		logger.Warn("Failed to register drive provider", zap.Error(err))
	}

	// Catalog provider
	if err := registry.Register(catalog.NewProvider(eng)); err != nil {
		logger.Warn("Failed to register catalog provider", zap.Error(err))
	}

	// Backup provider
	if err := registry.Register(backup.NewProvider(eng, backups).WithMetrics(metrics)); err != nil {
		logger.Warn("Failed to register backup provider", zap.Error(err))
	}

	stats := registry.Stats()
	logger.Info("Providers registered",
		zap.Any("services", stats["total_services"]),
		zap.Any("tools", stats["total_tools"]),
	)
}
