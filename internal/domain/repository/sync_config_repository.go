package repository

import "github.com/jhoicas/warehouse-sync/internal/domain/entity"

// SyncConfigRepository define el puerto de la configuración del sincronizador.
type SyncConfigRepository interface {
	// Get devuelve la fila de configuración, o nil si no existe.
	Get() (*entity.SyncConfig, error)
	// Upsert crea o actualiza la fila única de configuración.
	Upsert(cfg *entity.SyncConfig) error
}
