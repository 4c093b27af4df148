package sync

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-sync/internal/domain/repository"
)

// InventoryUpdater aplica la cantidad normalizada al registro de existencias
// del producto en la ubicación fija del sync. Idempotente: aplicar dos veces
// la misma cantidad deja el mismo estado final.
type InventoryUpdater struct {
	quants     repository.QuantRepository
	locationID string // ubicación única de destino; fija por configuración
}

// NewInventoryUpdater construye el actualizador para la ubicación dada.
func NewInventoryUpdater(quants repository.QuantRepository, locationID string) *InventoryUpdater {
	return &InventoryUpdater{quants: quants, locationID: locationID}
}

// Apply sobrescribe la cantidad de la fila producto+ubicación,
// creándola si no existe.
func (u *InventoryUpdater) Apply(productID string, qty decimal.Decimal) error {
	quant, err := u.quants.Get(productID, u.locationID)
	if err != nil {
		return fmt.Errorf("consultar existencias: %w", err)
	}
	if quant == nil {
		if err := u.quants.Create(productID, u.locationID, qty); err != nil {
			return fmt.Errorf("crear existencias: %w", err)
		}
		return nil
	}
	if err := u.quants.UpdateQuantity(productID, u.locationID, qty); err != nil {
		return fmt.Errorf("actualizar existencias: %w", err)
	}
	return nil
}
