package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SyncLogEntry es el registro de auditoría de un ítem procesado en un sync.
// Es append-only: nunca se actualiza ni se borra.
type SyncLogEntry struct {
	ID        string
	SKU       string
	MainID    string // identificador del ítem en el sistema externo
	Barcode   string
	Quantity  decimal.Decimal // cantidad sincronizada (salida de la tabla de reglas)
	Alert     bool            // true si quedó por debajo del umbral de stock bajo
	Note      string
	CreatedAt time.Time
}

// Estados posibles de una corrida de sincronización.
const (
	RunStatusSuccess = "success"
	RunStatusFail    = "fail"
)

// SyncRunRecord resume una invocación completa del sincronizador.
// Exactamente un registro por corrida, append-only.
type SyncRunRecord struct {
	ID        string
	UserID    string // quién disparó la corrida (usuario o system)
	Status    string // RunStatusSuccess | RunStatusFail
	Message   string
	CreatedAt time.Time
}
