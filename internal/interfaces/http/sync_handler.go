package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-sync/internal/application/dto"
	appsync "github.com/jhoicas/warehouse-sync/internal/application/sync"
	"github.com/jhoicas/warehouse-sync/internal/domain"
	"github.com/jhoicas/warehouse-sync/internal/domain/entity"
	"github.com/jhoicas/warehouse-sync/internal/domain/repository"
)

// defaultListLimit tope por defecto de los listados.
const defaultListLimit = 50

// SyncHandler maneja las peticiones HTTP del sincronizador (protegido).
type SyncHandler struct {
	uc      *appsync.UseCase
	logs    repository.SyncLogRepository
	configs repository.SyncConfigRepository
}

// NewSyncHandler construye el handler.
func NewSyncHandler(uc *appsync.UseCase, logs repository.SyncLogRepository, configs repository.SyncConfigRepository) *SyncHandler {
	return &SyncHandler{uc: uc, logs: logs, configs: configs}
}

// Run godoc
// @Summary      Disparar una corrida de sincronización
// @Description  Ejecuta una corrida completa contra la bodega remota. Solo una
//               corrida a la vez: si hay otra en curso responde 409.
// @Tags         sync
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RunResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sync/run [post]
func (h *SyncHandler) Run(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}

	run, err := h.uc.RunSync(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrSyncRunning) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SYNC_RUNNING", Message: "ya hay una sincronización en curso"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	// El resultado de la corrida (success/fail) viaja en el cuerpo; el HTTP 200
	// solo indica que la corrida se ejecutó y quedó registrada.
	return c.JSON(dto.RunResponse{
		RunID:     run.ID,
		Status:    run.Status,
		Message:   run.Message,
		CreatedAt: run.CreatedAt,
	})
}

// ListLogs godoc
// @Summary      Listar registros de auditoría del sync
// @Tags         sync
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de registros (por defecto 50)"
// @Success      200  {array}   dto.SyncLogDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sync/logs [get]
func (h *SyncHandler) ListLogs(c *fiber.Ctx) error {
	limit := queryLimit(c)
	entries, err := h.logs.ListRecentEntries(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.SyncLogDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.FromLogEntry(e))
	}
	return c.JSON(fiber.Map{"total": len(out), "logs": out})
}

// ListRuns godoc
// @Summary      Listar corridas de sincronización
// @Tags         sync
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de corridas (por defecto 50)"
// @Success      200  {array}   dto.SyncRunDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sync/runs [get]
func (h *SyncHandler) ListRuns(c *fiber.Ctx) error {
	limit := queryLimit(c)
	runs, err := h.logs.ListRecentRuns(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.SyncRunDTO, 0, len(runs))
	for _, r := range runs {
		out = append(out, dto.FromRunRecord(r))
	}
	return c.JSON(fiber.Map{"total": len(out), "runs": out})
}

// GetConfig godoc
// @Summary      Configuración vigente del sync
// @Tags         sync
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SyncConfigResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sync/config [get]
func (h *SyncHandler) GetConfig(c *fiber.Ctx) error {
	cfg, err := h.configs.Get()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if cfg == nil {
		return c.JSON(dto.SyncConfigResponse{})
	}
	return c.JSON(dto.SyncConfigResponse{ReportEmail: cfg.ReportEmail})
}

// UpdateConfig godoc
// @Summary      Actualizar la configuración del sync
// @Tags         sync
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SyncConfigRequest  true  "report_email (vacío desactiva el correo)"
// @Success      200  {object}  dto.SyncConfigResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sync/config [put]
func (h *SyncHandler) UpdateConfig(c *fiber.Ctx) error {
	var in dto.SyncConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.configs.Upsert(&entity.SyncConfig{ReportEmail: in.ReportEmail}); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.SyncConfigResponse{ReportEmail: in.ReportEmail})
}

func queryLimit(c *fiber.Ctx) int {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	return limit
}
