package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto local sincronizable contra la bodega remota.
// Se identifica por SKU (código interno) y/o por código de barras; este servicio
// lo consulta y le ajusta stock y visibilidad, nunca lo crea.
type Product struct {
	ID               string
	SKU              string // puede estar vacío
	Barcode          string // puede estar vacío
	Name             string
	QtyAvailable     decimal.Decimal // stock disponible actual (antes del sync)
	WebsitePublished bool            // visible en la tienda pública
	UpdatedAt        time.Time
}
