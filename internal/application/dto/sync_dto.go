package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-sync/internal/domain/entity"
)

// RunResponse resultado del disparo manual de una corrida.
type RunResponse struct {
	RunID     string    `json:"run_id"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// SyncLogDTO registro de auditoría de un ítem.
type SyncLogDTO struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku,omitempty"`
	MainID    string          `json:"main_id,omitempty"`
	Barcode   string          `json:"barcode,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	Alert     bool            `json:"alert"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"created_at"`
}

// SyncRunDTO resumen de una corrida.
type SyncRunDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// SyncConfigRequest cuerpo para actualizar la configuración del sync.
type SyncConfigRequest struct {
	ReportEmail string `json:"report_email"`
}

// SyncConfigResponse configuración vigente.
type SyncConfigResponse struct {
	ReportEmail string `json:"report_email"`
}

// FromLogEntry convierte la entidad al DTO de salida.
func FromLogEntry(e *entity.SyncLogEntry) SyncLogDTO {
	return SyncLogDTO{
		ID:        e.ID,
		SKU:       e.SKU,
		MainID:    e.MainID,
		Barcode:   e.Barcode,
		Quantity:  e.Quantity,
		Alert:     e.Alert,
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
	}
}

// FromRunRecord convierte la entidad al DTO de salida.
func FromRunRecord(r *entity.SyncRunRecord) SyncRunDTO {
	return SyncRunDTO{
		ID:        r.ID,
		UserID:    r.UserID,
		Status:    r.Status,
		Message:   r.Message,
		CreatedAt: r.CreatedAt,
	}
}
