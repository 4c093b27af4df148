package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/warehouse-sync/internal/domain/entity"
	"github.com/jhoicas/warehouse-sync/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, sku, barcode, name, qty_available, website_published, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.SKU, &p.Barcode, &p.Name, &p.QtyAvailable, &p.WebsitePublished, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// FindBySKU devuelve un único producto por SKU (el más reciente si hubiera duplicados), o nil.
func (r *ProductRepo) FindBySKU(sku string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE sku = $1
		ORDER BY updated_at DESC LIMIT 1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, sku))
	if err != nil {
		return nil, fmt.Errorf("find product by sku: %w", err)
	}
	return p, nil
}

// FindByBarcode devuelve un único producto por código de barras, o nil.
func (r *ProductRepo) FindByBarcode(barcode string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE barcode = $1
		ORDER BY updated_at DESC LIMIT 1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, barcode))
	if err != nil {
		return nil, fmt.Errorf("find product by barcode: %w", err)
	}
	return p, nil
}

// SetWebsitePublished fija la visibilidad pública del producto.
func (r *ProductRepo) SetWebsitePublished(productID string, published bool) error {
	query := `
		UPDATE products SET website_published = $2, updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, productID, published)
	if err != nil {
		return fmt.Errorf("set website_published: %w", err)
	}
	return nil
}
