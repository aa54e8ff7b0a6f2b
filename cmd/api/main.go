package main

import (
	"log"

	"github.com/atlasops/planner-api/internal/config"
	"github.com/atlasops/planner-api/internal/database"
	"github.com/atlasops/planner-api/internal/handlers"
	"github.com/atlasops/planner-api/internal/logger"
	"github.com/atlasops/planner-api/internal/routes"
	"github.com/atlasops/planner-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		zlog.Fatal("database connect failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zlog.Fatal("database migrate failed", zap.Error(err))
	}

	notify := services.NewNotifyService(db, zlog)
	allocation := services.NewAllocationService(db)

	h := routes.Handlers{
		Auth:          handlers.NewAuthHandler(services.NewEmployeeService(db)),
		Products:      handlers.NewProductHandler(services.NewProductService(db, zlog)),
		Formations:    handlers.NewFormationHandler(services.NewFormationService(db, zlog, allocation), allocation),
		Initiatives:   handlers.NewInitiativeHandler(services.NewInitiativeService(db, zlog, notify)),
		Threads:       handlers.NewThreadHandler(services.NewThreadService(db, zlog, notify)),
		Notifications: handlers.NewNotificationHandler(notify),
	}

	app := fiber.New(fiber.Config{
		AppName: "planner-api",
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "data": "ok"})
	})

	routes.Setup(app, h)

	zlog.Info("listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
