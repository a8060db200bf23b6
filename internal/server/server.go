package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/carevault/apiserver/config"
	"github.com/carevault/apiserver/internal/db"
	"github.com/carevault/apiserver/internal/handlers"
	"github.com/carevault/apiserver/internal/logging"
	"github.com/carevault/apiserver/internal/mq"
	"github.com/carevault/apiserver/internal/services"
	"github.com/carevault/apiserver/internal/session"
	"github.com/carevault/apiserver/internal/storage"
	"github.com/carevault/apiserver/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Server wraps the HTTP server, router and the connections it owns.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	queue      *mq.MQ
	closeRedis func() error
	logger     *zap.Logger
}

// New constructs a Server with its middleware, dependencies and routes.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	logger, err := logging.NewLogger(cfg.Log.Level, cfg.Log.Format, logging.ServiceName)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	files, err := storage.New(ctx, cfg)
	if err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}

	queue, err := mq.Open(ctx, cfg.MQ)
	if err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("init mq: %w", err)
	}

	revoker, closeRedis, err := session.New(ctx, cfg.Redis)
	if err != nil {
		_ = queue.Close()
		_ = dbConn.Close()
		return nil, fmt.Errorf("init sessions: %w", err)
	}

	events := services.NewEvents(queue, cfg.MQ.Channel, logger)

	userRepo := store.NewUserRepository(dbConn)
	peopleRepo := store.NewYoungPersonRepository(dbConn)

	userService := services.NewUserService(userRepo, events)
	peopleService := services.NewYoungPersonService(peopleRepo, events)
	shiftLogService := services.NewShiftLogService(store.NewShiftLogRepository(dbConn), events)
	documentService := services.NewDocumentService(
		store.NewDocumentRepository(dbConn),
		store.NewYPDocumentRepository(dbConn),
		peopleRepo,
		files,
		events,
		logger,
	)
	hrService := services.NewHRActivityService(store.NewHRActivityRepository(dbConn), userRepo, files, events, logger)
	timesheetService := services.NewTimesheetService(store.NewTimesheetRepository(dbConn), events)
	taskService := services.NewTaskService(store.NewTaskRepository(dbConn), events)
	contactService := services.NewContactService(store.NewContactRepository(dbConn), events)

	shiftLogs := handlers.NewShiftLogHandler(shiftLogService, logger)
	api := handlers.API{
		Auth:         handlers.NewAuthHandler(userService, revoker, cfg.Auth, logger),
		Users:        handlers.NewUserHandler(userService, logger),
		YoungPeople:  handlers.NewYoungPersonHandler(peopleService, shiftLogs, logger),
		ShiftLogs:    shiftLogs,
		Documents:    handlers.NewDocumentHandler(documentService, cfg.Uploads.MaxBytes, logger),
		HRActivities: handlers.NewHRActivityHandler(hrService, cfg.Uploads.MaxBytes, logger),
		Timesheets:   handlers.NewTimesheetHandler(timesheetService, logger),
		Tasks:        handlers.NewTaskHandler(taskService, logger),
		Contacts:     handlers.NewContactHandler(contactService, logger),
	}

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		logging.RequestLogger(logger),
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/api", api.Mount)

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		queue:      queue,
		closeRedis: closeRedis,
		logger:     logger,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server. It returns nil after a graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then closes the database, broker
// and redis connections.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if s.queue != nil {
		if cerr := s.queue.Close(); cerr != nil {
			s.logger.Warn("close mq", zap.Error(cerr))
		}
	}
	if s.closeRedis != nil {
		if cerr := s.closeRedis(); cerr != nil {
			s.logger.Warn("close redis", zap.Error(cerr))
		}
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	_ = s.logger.Sync()
	return err
}
