package http

import (
	"github.com/gofiber/fiber/v2"

	appsync "github.com/jhoicas/warehouse-sync/internal/application/sync"
	"github.com/jhoicas/warehouse-sync/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SyncUC    *appsync.UseCase
	Logs      repository.SyncLogRepository
	Configs   repository.SyncConfigRepository
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Todo el sincronizador requiere Bearer Token
	protected := api.Group("/sync", AuthMiddleware(deps.JWTSecret))

	handler := NewSyncHandler(deps.SyncUC, deps.Logs, deps.Configs)

	// El disparo manual y la configuración son solo para admin;
	// los listados los puede consultar cualquier usuario autenticado.
	protected.Post("/run", RequireRole(RoleAdmin), handler.Run)
	protected.Get("/logs", handler.ListLogs)
	protected.Get("/runs", handler.ListRuns)
	protected.Get("/config", handler.GetConfig)
	protected.Put("/config", RequireRole(RoleAdmin), handler.UpdateConfig)
}
