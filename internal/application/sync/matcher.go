package sync

import (
	"fmt"

	"github.com/jhoicas/warehouse-sync/internal/domain/entity"
	"github.com/jhoicas/warehouse-sync/internal/domain/repository"
)

// ProductMatcher resuelve un ítem del feed a un producto local:
// primero por SKU y, si no hay coincidencia, por código de barras.
type ProductMatcher struct {
	products repository.ProductRepository
}

// NewProductMatcher construye el matcher.
func NewProductMatcher(products repository.ProductRepository) *ProductMatcher {
	return &ProductMatcher{products: products}
}

// Match devuelve el producto correspondiente o nil si no hay coincidencia.
// "Sin coincidencia" no es un error: el orquestador omite el ítem en silencio.
func (m *ProductMatcher) Match(sku, barcode string) (*entity.Product, error) {
	if sku != "" {
		product, err := m.products.FindBySKU(sku)
		if err != nil {
			return nil, fmt.Errorf("buscar por sku %q: %w", sku, err)
		}
		if product != nil {
			return product, nil
		}
	}
	if barcode != "" {
		product, err := m.products.FindByBarcode(barcode)
		if err != nil {
			return nil, fmt.Errorf("buscar por barcode %q: %w", barcode, err)
		}
		if product != nil {
			return product, nil
		}
	}
	return nil, nil
}
