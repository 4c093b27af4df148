package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-sync/internal/domain/entity"
)

// QuantRepository define el puerto para las existencias por producto+ubicación.
type QuantRepository interface {
	// Get devuelve la fila de existencias, o nil si no hay registro.
	Get(productID, locationID string) (*entity.Quant, error)
	// Create crea la fila de existencias con la cantidad dada.
	Create(productID, locationID string, qty decimal.Decimal) error
	// UpdateQuantity sobrescribe la cantidad de una fila existente.
	UpdateQuantity(productID, locationID string, qty decimal.Decimal) error
}
