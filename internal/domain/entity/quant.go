package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quant representa el registro de existencias de un producto en una ubicación
// (fila producto+ubicación). El sync escribe siempre sobre una única ubicación fija.
type Quant struct {
	ProductID  string
	LocationID string
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}
