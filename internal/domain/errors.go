package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrSyncRunning  = errors.New("ya hay una sincronización en curso")
	ErrNoSyncConfig = errors.New("no hay configuración de sincronización")
)
