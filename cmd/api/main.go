package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appsync "github.com/jhoicas/warehouse-sync/internal/application/sync"
	"github.com/jhoicas/warehouse-sync/internal/domain/entity"
	"github.com/jhoicas/warehouse-sync/internal/infrastructure/feed"
	"github.com/jhoicas/warehouse-sync/internal/infrastructure/mailer"
	"github.com/jhoicas/warehouse-sync/internal/infrastructure/pdf"
	"github.com/jhoicas/warehouse-sync/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/warehouse-sync/internal/interfaces/http"
	"github.com/jhoicas/warehouse-sync/internal/scheduler"
	"github.com/jhoicas/warehouse-sync/pkg/config"
	"github.com/jhoicas/warehouse-sync/pkg/logger"
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

	productRepo := postgres.NewProductRepository(pool)
	quantRepo := postgres.NewQuantRepository(pool)
	syncLogRepo := postgres.NewSyncLogRepository(pool)
	configRepo := postgres.NewSyncConfigRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)

	// Semilla del correo de reporte si la fila de configuración aún no existe.
	if cfg.Sync.ReportEmailSeed != "" {
		if existing, err := configRepo.Get(); err == nil && existing == nil {
			if err := configRepo.Upsert(&entity.SyncConfig{ReportEmail: cfg.Sync.ReportEmailSeed}); err != nil {
				log.Warn().Err(err).Msg("no se pudo sembrar la configuración inicial")
			}
		}
	}

	feedClient := feed.NewClient(cfg.Feed.URL, cfg.Feed.Timeout)
	smtpSender := mailer.NewGomailSender(
		cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From,
	)
	pdfGenerator := pdf.NewMarotoReportGenerator()

	reportGen := appsync.NewReportGenerator(
		syncLogRepo, notificationRepo, configRepo,
		nil, // canal secundario deshabilitado por defecto
		smtpSender, pdfGenerator, log,
	)
	syncUC := appsync.NewUseCase(
		feedClient,
		appsync.NewProductMatcher(productRepo),
		appsync.NewInventoryUpdater(quantRepo, cfg.Sync.LocationID),
		productRepo, syncLogRepo, reportGen, log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SyncUC:    syncUC,
		Logs:      syncLogRepo,
		Configs:   configRepo,
		JWTSecret: cfg.JWT.Secret,
	})

	// Corridas programadas (cron interno); se detienen con el shutdown.
	schedCtx, stopScheduler := context.WithCancel(ctx)
	defer stopScheduler()
	if cfg.Sync.Enabled {
		go scheduler.New(syncUC, cfg.Sync.Interval, log).Start(schedCtx)
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stopScheduler()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
