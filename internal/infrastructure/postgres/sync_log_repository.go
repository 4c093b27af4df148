package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/warehouse-sync/internal/domain/entity"
	"github.com/jhoicas/warehouse-sync/internal/domain/repository"
)

var _ repository.SyncLogRepository = (*SyncLogRepo)(nil)

// SyncLogRepo implementación de SyncLogRepository sobre PostgreSQL.
// Las tablas sync_logs y sync_runs son append-only por contrato.
type SyncLogRepo struct {
	q Querier
}

// NewSyncLogRepository construye el adaptador del rastro de auditoría.
func NewSyncLogRepository(q Querier) *SyncLogRepo {
	return &SyncLogRepo{q: q}
}

// CreateEntry persiste el registro de un ítem procesado.
func (r *SyncLogRepo) CreateEntry(entry *entity.SyncLogEntry) error {
	query := `
		INSERT INTO sync_logs (id, sku, main_id, barcode, quantity, alert, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.SKU, entry.MainID, entry.Barcode,
		entry.Quantity, entry.Alert, entry.Note, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sync log: %w", err)
	}
	return nil
}

// CreateRun persiste el resumen de una corrida.
func (r *SyncLogRepo) CreateRun(run *entity.SyncRunRecord) error {
	query := `
		INSERT INTO sync_runs (id, user_id, status, message, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		run.ID, run.UserID, run.Status, run.Message, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sync run: %w", err)
	}
	return nil
}

// ListRecentEntries devuelve los últimos registros por fecha de creación descendente.
func (r *SyncLogRepo) ListRecentEntries(limit int) ([]*entity.SyncLogEntry, error) {
	query := `
		SELECT id, sku, main_id, barcode, quantity, alert, note, created_at
		FROM sync_logs ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list sync logs: %w", err)
	}
	defer rows.Close()

	var entries []*entity.SyncLogEntry
	for rows.Next() {
		var e entity.SyncLogEntry
		if err := rows.Scan(&e.ID, &e.SKU, &e.MainID, &e.Barcode, &e.Quantity, &e.Alert, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sync log: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// ListRecentRuns devuelve las últimas corridas por fecha de creación descendente.
func (r *SyncLogRepo) ListRecentRuns(limit int) ([]*entity.SyncRunRecord, error) {
	query := `
		SELECT id, user_id, status, message, created_at
		FROM sync_runs ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list sync runs: %w", err)
	}
	defer rows.Close()

	var runs []*entity.SyncRunRecord
	for rows.Next() {
		var run entity.SyncRunRecord
		if err := rows.Scan(&run.ID, &run.UserID, &run.Status, &run.Message, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sync run: %w", err)
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}
