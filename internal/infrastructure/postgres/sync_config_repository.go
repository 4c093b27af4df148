package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/warehouse-sync/internal/domain/entity"
	"github.com/jhoicas/warehouse-sync/internal/domain/repository"
)

var _ repository.SyncConfigRepository = (*SyncConfigRepo)(nil)

// SyncConfigRepo implementación de SyncConfigRepository sobre PostgreSQL.
// La tabla sync_config mantiene una fila única (id fijo).
type SyncConfigRepo struct {
	q Querier
}

// singletonConfigID id fijo de la fila única de configuración.
const singletonConfigID = "default"

// NewSyncConfigRepository construye el adaptador de configuración.
func NewSyncConfigRepository(q Querier) *SyncConfigRepo {
	return &SyncConfigRepo{q: q}
}

// Get devuelve la fila de configuración, o nil si aún no existe.
func (r *SyncConfigRepo) Get() (*entity.SyncConfig, error) {
	query := `SELECT id, report_email FROM sync_config WHERE id = $1`
	var cfg entity.SyncConfig
	err := r.q.QueryRow(context.Background(), query, singletonConfigID).Scan(&cfg.ID, &cfg.ReportEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sync config: %w", err)
	}
	return &cfg, nil
}

// Upsert crea o actualiza la fila única de configuración.
func (r *SyncConfigRepo) Upsert(cfg *entity.SyncConfig) error {
	query := `
		INSERT INTO sync_config (id, report_email)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET report_email = EXCLUDED.report_email`
	_, err := r.q.Exec(context.Background(), query, singletonConfigID, cfg.ReportEmail)
	if err != nil {
		return fmt.Errorf("upsert sync config: %w", err)
	}
	return nil
}
