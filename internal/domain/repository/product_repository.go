package repository

import "github.com/jhoicas/warehouse-sync/internal/domain/entity"

// ProductRepository define el puerto de consulta de productos locales (DIP).
// El sync nunca crea productos; solo los busca y actualiza campos puntuales.
type ProductRepository interface {
	// FindBySKU devuelve un único producto con ese SKU, o nil si no existe.
	FindBySKU(sku string) (*entity.Product, error)
	// FindByBarcode devuelve un único producto con ese código de barras, o nil.
	FindByBarcode(barcode string) (*entity.Product, error)
	// SetWebsitePublished fija la visibilidad pública del producto.
	SetWebsitePublished(productID string, published bool) error
}
