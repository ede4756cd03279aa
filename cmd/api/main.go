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

	"github.com/jhoicas/Comercial-api/internal/application/catalog"
	"github.com/jhoicas/Comercial-api/internal/application/document"
	"github.com/jhoicas/Comercial-api/internal/application/finance"
	"github.com/jhoicas/Comercial-api/internal/application/inventory"
	dominv "github.com/jhoicas/Comercial-api/internal/domain/inventory"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
	"github.com/jhoicas/Comercial-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Comercial-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Comercial-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Comercial-api/internal/interfaces/http"
	"github.com/jhoicas/Comercial-api/pkg/config"
	"github.com/jhoicas/Comercial-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Str("cost_policy", cfg.Engine.CostPolicy).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRunner repository.TxRunner
		repos    repository.TxRepos
	)
	switch cfg.DB.Driver {
	case "memory":
		store := memory.NewStore()
		txRunner = store
		repos = store.Repos()
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migración del esquema")
			}
		}
		txRunner = postgres.NewTxRunner(pool)
		repos = postgres.NewRepos(pool)
	}

	ledger := inventory.NewStockLedger()
	financialPoster := finance.NewFinancialPoster(cfg.Engine.DefaultDueDays)

	catalogUC := catalog.NewUseCase(txRunner, repos, ledger)
	posterUC := document.NewPostDocumentUseCase(
		txRunner, ledger,
		document.NewFulfillmentLinker(cfg.Engine.StrictOrderLink),
		document.PosterConfig{
			AllowEmptyDocuments: cfg.Engine.AllowEmptyDocuments,
			CostPolicy:          dominv.ParseCostPolicy(cfg.Engine.CostPolicy),
		},
		log,
		financialPoster,
	)
	documentsUC := document.NewUseCase(txRunner, repos, log)
	documentPDFUC := document.NewPDFUseCase(documentsUC, infrapdf.NewMarotoPDFGenerator(cfg.App.Name))
	ledgerUC := finance.NewLedgerUseCase(txRunner, repos.Entries, repos.Customers, repos.Suppliers, financialPoster, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestContext(log))

	// Swagger UI: http://localhost:<port>/docs (solo si existe el archivo)
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); cfg.HTTP.SwaggerFile != "" && err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Comercial API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Catalog:       catalogUC,
		Poster:        posterUC,
		Documents:     documentsUC,
		DocumentPDF:   documentPDFUC,
		StockQuery:    inventory.NewStockQueryUseCase(repos, cfg.Engine.MovementHistoryLimit),
		AdjustStock:   inventory.NewAdjustStockUseCase(txRunner, ledger, log),
		Replenishment: inventory.NewReplenishmentUseCase(repos.Products),
		Ledger:        ledgerUC,
		Log:           log,
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
