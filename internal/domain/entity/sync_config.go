package entity

// SyncConfig configuración persistida del sincronizador (fila única).
// El core solo la lee; se administra desde el endpoint de configuración.
type SyncConfig struct {
	ID          string
	ReportEmail string // destino del reporte HTML; vacío = no se envía correo
}
