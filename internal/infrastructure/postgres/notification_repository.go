package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/warehouse-sync/internal/domain/entity"
	"github.com/jhoicas/warehouse-sync/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo implementación de NotificationRepository sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador de avisos in-app.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create persiste un aviso (campana o mensaje de muro).
func (r *NotificationRepo) Create(n *entity.UserNotification) error {
	query := `
		INSERT INTO user_notifications (id, user_id, kind, title, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		n.ID, n.UserID, n.Kind, n.Title, n.Body, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListByUser devuelve los avisos más recientes del usuario.
func (r *NotificationRepo) ListByUser(userID string, limit int) ([]*entity.UserNotification, error) {
	query := `
		SELECT id, user_id, kind, title, body, created_at
		FROM user_notifications WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var out []*entity.UserNotification
	for rows.Next() {
		var n entity.UserNotification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Kind, &n.Title, &n.Body, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, &n)
	}
	return out, rows.Err()
}
