// syncrun ejecuta una única corrida de sincronización y termina.
// Pensado para cron externo u operación manual desde consola.
//
// Uso: go run ./cmd/syncrun [user-id]
// Sin argumento corre como usuario "system". Exit code 0 si la corrida quedó
// en success, 1 si quedó en fail o no pudo ejecutarse.
package main

import (
	"context"
	"fmt"
	"os"

	appsync "github.com/jhoicas/warehouse-sync/internal/application/sync"
	"github.com/jhoicas/warehouse-sync/internal/domain/entity"
	"github.com/jhoicas/warehouse-sync/internal/infrastructure/feed"
	"github.com/jhoicas/warehouse-sync/internal/infrastructure/mailer"
	"github.com/jhoicas/warehouse-sync/internal/infrastructure/pdf"
	"github.com/jhoicas/warehouse-sync/internal/infrastructure/postgres"
	"github.com/jhoicas/warehouse-sync/pkg/config"
	"github.com/jhoicas/warehouse-sync/pkg/logger"
)

func main() {
	userID := appsync.SystemUserID
	if len(os.Args) > 1 {
		userID = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	quantRepo := postgres.NewQuantRepository(pool)
	syncLogRepo := postgres.NewSyncLogRepository(pool)
	configRepo := postgres.NewSyncConfigRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)

	reportGen := appsync.NewReportGenerator(
		syncLogRepo, notificationRepo, configRepo, nil,
		mailer.NewGomailSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From),
		pdf.NewMarotoReportGenerator(), log,
	)
	syncUC := appsync.NewUseCase(
		feed.NewClient(cfg.Feed.URL, cfg.Feed.Timeout),
		appsync.NewProductMatcher(productRepo),
		appsync.NewInventoryUpdater(quantRepo, cfg.Sync.LocationID),
		productRepo, syncLogRepo, reportGen, log,
	)

	run, err := syncUC.RunSync(ctx, userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "corrida fallida: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("run %s [%s]: %s\n", run.ID, run.Status, run.Message)
	if run.Status != entity.RunStatusSuccess {
		os.Exit(1)
	}
}
