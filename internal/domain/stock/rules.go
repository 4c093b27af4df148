// Package stock contiene la lógica pura de la sincronización de bodega:
// la tabla de niveles de stock, el umbral de alerta y la nota de auditoría.
// Sin dependencias de infraestructura; todo es determinista.
package stock

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Cortes de la tabla de niveles y umbral de alerta.
var (
	qty30  = decimal.NewFromInt(30)
	qty50  = decimal.NewFromInt(50)
	qty200 = decimal.NewFromInt(200)

	tier2  = decimal.NewFromInt(2)
	tier5  = decimal.NewFromInt(5)
	tier10 = decimal.NewFromInt(10)

	// lowStockThreshold: por debajo de 5 unidades el producto entra en alerta.
	lowStockThreshold = decimal.NewFromInt(5)
)

// Notas de auditoría por ítem.
const (
	NoteLowStock = "LOW STOCK — DISABLED SALE"
	NoteStockOK  = "Stock OK"
)

// NormalizeQuantity mapea la cantidad cruda de la bodega remota a la cantidad
// local normalizada. La tabla se evalúa en orden y gana la primera coincidencia;
// se conservan los rangos y el orden originales de la política (incluida la rama
// raw < 30, cubierta por las dos anteriores) para no cambiar el comportamiento
// si la tabla se reordena o extiende.
//
// fallback es la cantidad local actual del producto y solo se usa si ninguna
// regla coincide.
func NormalizeQuantity(raw, fallback decimal.Decimal) decimal.Decimal {
	switch {
	case raw.IsZero():
		return decimal.Zero
	case raw.GreaterThanOrEqual(qty30) && raw.LessThanOrEqual(qty50):
		return tier2
	case raw.LessThan(qty30):
		return decimal.Zero
	case raw.GreaterThan(qty50) && raw.LessThan(qty200):
		return tier5
	case raw.GreaterThanOrEqual(qty200):
		return tier10
	default:
		return fallback
	}
}

// IsLowStock indica si la cantidad normalizada dispara la alerta de stock bajo
// (y con ella la suspensión de la venta pública).
func IsLowStock(qty decimal.Decimal) bool {
	return qty.LessThan(lowStockThreshold)
}

// BuildNote compone la nota del registro de auditoría para un ítem procesado.
// current es la cantidad local antes del sync.
func BuildNote(normalized, current decimal.Decimal, alert bool) string {
	if alert {
		return NoteLowStock
	}
	if !normalized.Equal(current) {
		return fmt.Sprintf("Stock rule triggered: new Odoo qty = %s", normalized)
	}
	return NoteStockOK
}
