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

	"github.com/Victorkib/kisheka-construction-sub011/internal/application/approval"
	"github.com/Victorkib/kisheka-construction-sub011/internal/application/auth"
	appfinance "github.com/Victorkib/kisheka-construction-sub011/internal/application/finance"
	"github.com/Victorkib/kisheka-construction-sub011/internal/application/procurement"
	"github.com/Victorkib/kisheka-construction-sub011/internal/application/project"
	infrapdf "github.com/Victorkib/kisheka-construction-sub011/internal/infrastructure/pdf"
	"github.com/Victorkib/kisheka-construction-sub011/internal/infrastructure/postgres"
	httpRouter "github.com/Victorkib/kisheka-construction-sub011/internal/interfaces/http"
	"github.com/Victorkib/kisheka-construction-sub011/pkg/config"
	"github.com/Victorkib/kisheka-construction-sub011/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	projectRepo := postgres.NewProjectRepository(pool)
	requestRepo := postgres.NewSpendingRequestRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	priceRepo := postgres.NewSupplierPriceRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	projectUC := project.NewUseCase(txRunner, projectRepo)
	ledgerUC := appfinance.NewLedgerUseCase(projectRepo, expenseRepo)
	validatorUC := appfinance.NewValidatorUseCase(projectRepo)
	workflowUC := approval.NewWorkflowUseCase(txRunner, requestRepo, projectRepo, auditRepo, log)
	voucherUC := approval.NewVoucherUseCase(requestRepo, projectRepo, expenseRepo, infrapdf.NewMarotoVoucherGenerator())
	comparatorUC := procurement.NewComparatorUseCase(priceRepo)
	advisorUC := procurement.NewAdvisorUseCase(stockRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Kisheka Construction API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProjectUC:    projectUC,
		LedgerUC:     ledgerUC,
		ValidatorUC:  validatorUC,
		WorkflowUC:   workflowUC,
		VoucherUC:    voucherUC,
		ComparatorUC: comparatorUC,
		AdvisorUC:    advisorUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
