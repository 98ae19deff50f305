package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/infinity-school/portfolio-apiserver/config"
	"github.com/infinity-school/portfolio-apiserver/internal/db"
	"github.com/infinity-school/portfolio-apiserver/internal/handlers"
	"github.com/infinity-school/portfolio-apiserver/internal/mq"
	"github.com/infinity-school/portfolio-apiserver/internal/services"
	"github.com/infinity-school/portfolio-apiserver/internal/storage"
	"github.com/infinity-school/portfolio-apiserver/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	queue      *mq.MQ
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		_ = dbConn.Close()
		return nil, errors.New("JWT_SECRET is required")
	}

	mediaStorage, err := newStorage(ctx, cfg)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	queue, err := newQueue(ctx, cfg)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	userRepo := store.NewUserRepository(dbConn)
	skillRepo := store.NewSkillRepository(dbConn)
	categoryRepo := store.NewCategoryRepository(dbConn)
	projectRepo := store.NewProjectRepository(dbConn)
	linkRepo := store.NewLinkRepository(dbConn)
	feedbackRepo := store.NewFeedbackRepository(dbConn)

	events := services.NewEventPublisher(queue)
	userService := services.NewUserService(userRepo, events)
	skillService := services.NewSkillService(skillRepo)
	projectService := services.NewProjectService(projectRepo, categoryRepo)
	linkService := services.NewLinkService(linkRepo)
	feedbackService := services.NewFeedbackService(feedbackRepo, events)
	mediaService := services.NewMediaService(mediaStorage)

	authMiddleware := handlers.RequireAuth(jwtSecret)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/", handlers.Root)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, userService, jwtSecret)
	})
	router.Route("/usuarios", func(r chi.Router) {
		handlers.UserRouter(r, userService, skillService, projectService, linkService, mediaService, authMiddleware)
	})
	router.Route("/habilidades", func(r chi.Router) {
		handlers.SkillRouter(r, skillService, authMiddleware)
	})
	router.Route("/categorias", func(r chi.Router) {
		handlers.CategoryRouter(r, projectService, authMiddleware)
	})
	router.Route("/projetos", func(r chi.Router) {
		handlers.ProjectRouter(r, projectService, mediaService, authMiddleware)
	})
	router.Route("/links", func(r chi.Router) {
		handlers.LinkRouter(r, linkService, authMiddleware)
	})
	router.Route("/feedbacks", func(r chi.Router) {
		handlers.FeedbackRouter(r, feedbackService)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		queue:      queue,
	}, nil
}

// newStorage selects the media storage backend. An empty selector
// disables uploads without failing startup.
func newStorage(ctx context.Context, cfg config.Config) (*storage.Storage, error) {
	switch cfg.StorageBackend {
	case "":
		return nil, nil
	case config.StorageBackendMinio:
		client, err := storage.NewMinioClient(cfg.Minio)
		if err != nil {
			return nil, err
		}
		if err := client.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return storage.NewStorage(client), nil
	case config.StorageBackendGCS:
		client, err := storage.NewGCSClient(ctx, cfg.GCS)
		if err != nil {
			return nil, err
		}
		if err := client.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return storage.NewStorage(client), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// newQueue selects the event queue backend. An empty selector disables
// event publishing without failing startup.
func newQueue(ctx context.Context, cfg config.Config) (*mq.MQ, error) {
	switch cfg.MQBackend {
	case "":
		return nil, nil
	case config.MQBackendRabbitMQ:
		client, err := mq.NewRabbitMQClient(cfg.RabbitMQ)
		if err != nil {
			return nil, err
		}
		return mq.New(client), nil
	case config.MQBackendPubSub:
		client, err := mq.NewPubSubClient(ctx, cfg.PubSub)
		if err != nil {
			return nil, err
		}
		return mq.New(client), nil
	default:
		return nil, fmt.Errorf("unknown mq backend %q", cfg.MQBackend)
	}
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.queue != nil {
		_ = s.queue.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}
