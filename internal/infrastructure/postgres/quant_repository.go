package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-sync/internal/domain/entity"
	"github.com/jhoicas/warehouse-sync/internal/domain/repository"
)

var _ repository.QuantRepository = (*QuantRepo)(nil)

// QuantRepo implementación de QuantRepository sobre PostgreSQL (usable con pool o tx).
type QuantRepo struct {
	q Querier
}

// NewQuantRepository construye el adaptador de existencias. Pasar pool o tx (Querier).
func NewQuantRepository(q Querier) *QuantRepo {
	return &QuantRepo{q: q}
}

// Get obtiene la fila de existencias de un producto en una ubicación, o nil si no existe.
func (r *QuantRepo) Get(productID, locationID string) (*entity.Quant, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM stock_quants WHERE product_id = $1 AND location_id = $2`
	var q entity.Quant
	err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(
		&q.ProductID, &q.LocationID, &q.Quantity, &q.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quant: %w", err)
	}
	return &q, nil
}

// Create crea la fila de existencias con la cantidad dada.
func (r *QuantRepo) Create(productID, locationID string, qty decimal.Decimal) error {
	query := `
		INSERT INTO stock_quants (product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())`
	_, err := r.q.Exec(context.Background(), query, productID, locationID, qty)
	if err != nil {
		return fmt.Errorf("insert quant: %w", err)
	}
	return nil
}

// UpdateQuantity sobrescribe la cantidad de una fila existente.
func (r *QuantRepo) UpdateQuantity(productID, locationID string, qty decimal.Decimal) error {
	query := `
		UPDATE stock_quants SET quantity = $3, updated_at = now()
		WHERE product_id = $1 AND location_id = $2`
	_, err := r.q.Exec(context.Background(), query, productID, locationID, qty)
	if err != nil {
		return fmt.Errorf("update quant: %w", err)
	}
	return nil
}
