package repository

import "github.com/jhoicas/warehouse-sync/internal/domain/entity"

// SyncLogRepository define el puerto del rastro de auditoría del sync.
// Las escrituras son append-only; nunca se actualizan ni se borran registros.
type SyncLogRepository interface {
	// CreateEntry persiste el registro de auditoría de un ítem procesado.
	CreateEntry(entry *entity.SyncLogEntry) error
	// CreateRun persiste el resumen de una corrida completa.
	CreateRun(run *entity.SyncRunRecord) error
	// ListRecentEntries devuelve los últimos registros por fecha de creación descendente.
	ListRecentEntries(limit int) ([]*entity.SyncLogEntry, error)
	// ListRecentRuns devuelve las últimas corridas por fecha de creación descendente.
	ListRecentRuns(limit int) ([]*entity.SyncRunRecord, error)
}
