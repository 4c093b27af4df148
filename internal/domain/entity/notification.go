package entity

import "time"

// Tipos de aviso in-app.
const (
	NotificationKindAlert   = "notification" // aviso puntual (campana)
	NotificationKindMessage = "message"      // mensaje publicado en el muro del usuario
)

// UserNotification aviso in-app dirigido a un usuario (resumen del sync).
type UserNotification struct {
	ID        string
	UserID    string
	Kind      string // NotificationKindAlert | NotificationKindMessage
	Title     string
	Body      string
	CreatedAt time.Time
}
