package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/Botiquin-api/internal/application/location"
	"github.com/jhoicas/Botiquin-api/internal/application/stock"
	"github.com/jhoicas/Botiquin-api/internal/application/undo"
	"github.com/jhoicas/Botiquin-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Botiquin-api/internal/interfaces/http"
	"github.com/jhoicas/Botiquin-api/pkg/config"
	"github.com/jhoicas/Botiquin-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	txRunner := postgres.NewTxRunner(pool)

	// Repos de solo lectura directos al pool, para consultas fuera de tx.
	locationRepo := postgres.NewLocationRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	undoRepo := postgres.NewUndoRepository(pool)
	thresholdRepo := postgres.NewThresholdRepository(pool)

	stockUC := stock.NewUseCase(txRunner, log)
	queryUC := stock.NewQueryUseCase(locationRepo, stockRepo, catalogRepo, movementRepo, thresholdRepo)
	locationUC := location.NewUseCase(txRunner, log)
	undoUC := undo.NewUseCase(txRunner, undoRepo, log)

	if cfg.Seed.Enabled {
		seedUC := location.NewSeedUseCase(txRunner, log)
		if err := seedUC.EnsureDefaults(ctx); err != nil {
			log.Fatal().Err(err).Msg("siembra de datos por defecto")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Botiquin API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StockUC:    stockUC,
		QueryUC:    queryUC,
		LocationUC: locationUC,
		UndoUC:     undoUC,
		JWT:        cfg.JWT,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
