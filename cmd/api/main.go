package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jcardenas-dev/gestion-api/internal/application/counting"
	"github.com/jcardenas-dev/gestion-api/internal/application/inventory"
	"github.com/jcardenas-dev/gestion-api/internal/application/numbering"
	"github.com/jcardenas-dev/gestion-api/internal/application/sales"
	"github.com/jcardenas-dev/gestion-api/internal/infrastructure/postgres"
	httpRouter "github.com/jcardenas-dev/gestion-api/internal/interfaces/http"
	"github.com/jcardenas-dev/gestion-api/pkg/config"
	"github.com/jcardenas-dev/gestion-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (lecturas y escrituras de una sentencia).
	movementRepo := postgres.NewMovementRepository(pool)
	legacyRepo := postgres.NewLegacyMovementRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	docRepo := postgres.NewSalesDocumentRepository(pool)
	countRepo := postgres.NewTxCountSessionRepository(pool)
	seqRepo := postgres.NewSequenceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Casos de uso del núcleo de inventario.
	projector := inventory.NewProjector(movementRepo, legacyRepo)
	appendUC := inventory.NewAppendMovementUseCase(movementRepo, productRepo)
	transferUC := inventory.NewTransferUseCase(txRunner, productRepo)
	availabilityUC := inventory.NewAvailabilityUseCase(projector, docRepo, productRepo)
	kardexUC := inventory.NewKardexUseCase(movementRepo, legacyRepo)
	reconcileUC := counting.NewReconcileUseCase(projector, productRepo, countRepo)

	// Numeración y documentos comerciales.
	allocator := numbering.NewAllocator(seqRepo)
	documentUC := sales.NewDocumentUseCase(txRunner, docRepo, productRepo, legacyRepo, allocator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestión API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppendMovement: appendUC,
		Transfer:       transferUC,
		Availability:   availabilityUC,
		Kardex:         kardexUC,
		Reconcile:      reconcileUC,
		Documents:      documentUC,
		JWTSecret:      cfg.JWT.Secret,
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
