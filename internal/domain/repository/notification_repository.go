package repository

import "github.com/jhoicas/warehouse-sync/internal/domain/entity"

// NotificationRepository define el puerto de avisos in-app
// (campana y mensajes en el muro del usuario).
type NotificationRepository interface {
	Create(n *entity.UserNotification) error
	// ListByUser devuelve los avisos más recientes del usuario.
	ListByUser(userID string, limit int) ([]*entity.UserNotification, error)
}
