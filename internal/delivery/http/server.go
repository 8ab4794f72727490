package http

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/heritage-explorer/internal/config"
	"github.com/heritage-explorer/internal/delivery/http/handler"
	"github.com/heritage-explorer/internal/delivery/http/middleware"
	"github.com/heritage-explorer/internal/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Handlers - набор хендлеров локального сервера
type Handlers struct {
	Health     *handler.HealthHandler
	Map        *handler.MapHandler
	Bridge     *handler.BridgeHandler
	Catalog    *handler.CatalogHandler
	Session    *handler.SessionHandler
	Filter     *handler.FilterHandler
	Submission *handler.SubmissionHandler
}

// Server - HTTP сервер на основе Fiber: страница карты, мост и JSON API для нативной оболочки
type Server struct {
	app      *fiber.App
	config   *config.Config
	metrics  *metrics.Metrics
	logger   *zap.Logger
	handlers Handlers
}

// NewServer - создание нового HTTP сервера. m может быть nil, тогда /metrics не регистрируется.
func NewServer(cfg *config.Config, handlers Handlers, m *metrics.Metrics, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Heritage Explorer",
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		metrics:  m,
		logger:   logger,
		handlers: handlers,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - для тестов через app.Test
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		// SSE-поток нельзя буферизовать
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/bridge/")
		},
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	h := s.handlers

	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	if s.metrics != nil {
		s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})))
	}

	// Страницы карты для WebView
	s.app.Get("/", h.Map.Page)
	s.app.Get("/monumentos/:id/map", h.Map.MonumentPage)

	// Мост карты
	s.app.Get("/bridge/events", h.Bridge.Events)
	s.app.Post("/bridge/messages", h.Bridge.Messages)

	api := s.app.Group("/api/v1")

	api.Get("/health", h.Health.Health)

	// Map
	api.Get("/map/state", h.Map.State)
	api.Post("/map/refresh", h.Map.Refresh)

	// Catalog
	api.Get("/stats", h.Catalog.GetStatistics)
	api.Get("/monumentos", h.Catalog.Search)
	api.Get("/monumentos/:id", h.Catalog.GetMonument)
	api.Get("/featured", h.Catalog.Featured)

	// Filters
	api.Get("/filters", h.Filter.Get)
	api.Put("/filters", h.Filter.Update)
	api.Post("/filters/reset", h.Filter.Reset)
	api.Get("/filters/municipios", h.Filter.Municipalities)

	// Session
	api.Get("/session", h.Session.Current)
	api.Post("/session/login", h.Session.Login)
	api.Post("/session/register", h.Session.Register)
	api.Post("/session/google", h.Session.LoginWithGoogle)
	api.Post("/session/logout", h.Session.Logout)
	api.Put("/session/profile", h.Session.UpdateProfile)

	// Favorites
	api.Get("/favorites", h.Catalog.ListFavorites)
	api.Post("/favorites/:id/toggle", h.Session.ToggleFavorite)

	// Submissions
	api.Post("/proposals", h.Submission.Propose)
	api.Get("/proposals/mine", h.Submission.MyProposals)
	api.Post("/contact", h.Submission.Contact)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		errCode := "INTERNAL_SERVER_ERROR"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			if code == fiber.StatusNotFound {
				errCode = "NOT_FOUND"
			}
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    errCode,
				"message": err.Error(),
			},
		})
	}
}
