package main

import (
	"context"
	"time"

	"notekeep/cmd/server/handlers"
	authHandlers "notekeep/cmd/server/handlers/auth"
	"notekeep/cmd/server/handlers/httperr"
	notesHandlers "notekeep/cmd/server/handlers/notes"
	"notekeep/cmd/server/middlewares"
	"notekeep/internal/clients/mongo"
	"notekeep/internal/config"
	"notekeep/internal/logger"
	authServices "notekeep/internal/services/auth"
	notesServices "notekeep/internal/services/notes"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const rateLimitWindow = 1 * time.Minute

// setupRouter configures and returns a Fiber app with all routes
func setupRouter(ctx context.Context, cfg config.Config) *fiber.App {
	v := validator.New()

	app := fiber.New(fiber.Config{
		ErrorHandler: httperr.Handler,
		Immutable:    true, // make Fiber copy all request-derived strings
	})

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Content-Type, Authorization",
	}))

	if cfg.RouteMetricsEnabled {
		middlewares.AttachMetrics(app)
	}

	// Health check stays outside the API group to avoid request logging
	app.Get("/healthz", handlers.Healthz)

	var api fiber.Router
	if cfg.RequestLoggingEnabled {
		api = app.Group("/api", fiberlogger.New())
		logger.L().Info("request logging enabled")
	} else {
		api = app.Group("/api")
		logger.L().Info("request logging disabled")
	}

	jwtMiddleware := middlewares.JWT(cfg)

	usersRepo, err := mongo.NewUsersRepo(ctx, mongo.DB())
	if err != nil {
		logger.L().Error("failed to create users repository", "error", err)
		panic(err)
	}
	authSvc := authServices.NewService(usersRepo, cfg, logger.L())
	authH := authHandlers.NewHandlers(authSvc, v)

	authGrp := api.Group("/auth", middlewares.BuildRateLimiter(cfg.AuthRatePerMin, rateLimitWindow))
	authGrp.Post("/register", authH.Register)
	authGrp.Post("/login", authH.Login)

	notesRepo, err := mongo.NewNotesRepo(ctx, mongo.DB())
	if err != nil {
		logger.L().Error(notesServices.ErrCreateNotesRepo.Error(), "error", err)
		panic(err)
	}
	notesSvc := notesServices.NewService(notesRepo, logger.L())
	notesH := notesHandlers.NewHandlers(notesSvc, v)

	notesGrp := api.Group("/notes", jwtMiddleware)
	notesGrp.Get("/", notesH.List)
	notesGrp.Post("/", notesH.Create)
	notesGrp.Put("/:id", notesH.Update)
	notesGrp.Delete("/:id", notesH.Delete)

	// User profile endpoint (JWT middleware smoke surface)
	api.Get("/me", jwtMiddleware, handlers.Me)

	return app
}
