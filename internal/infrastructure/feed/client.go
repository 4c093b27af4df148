// Package feed implementa el cliente HTTP del API de la bodega remota.
// El endpoint devuelve JSON {success, data:[{sku, itemNumber, barcode,
// southbayStock}]}; cualquier otra forma es un PayloadError.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	appsync "github.com/jhoicas/warehouse-sync/internal/application/sync"
)

// FetchError fallo de transporte llegando al feed (red, DNS, timeout, status no-2xx).
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("feed fetch: %v", e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// PayloadError respuesta del feed con forma inesperada
// (sin indicador de éxito, sin colección data o JSON inválido).
type PayloadError struct {
	Reason string
}

func (e *PayloadError) Error() string { return "feed payload: " + e.Reason }

// DefaultTimeout tope conservador para la llamada al feed.
// El API de origen no define ninguno; aquí sí se acota siempre.
const DefaultTimeout = 30 * time.Second

// Client implementa sync.FeedClient sobre net/http.
type Client struct {
	httpClient *http.Client
	url        string
}

var _ appsync.FeedClient = (*Client)(nil)

// NewClient construye el cliente del feed. timeout <= 0 usa DefaultTimeout.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
	}
}

// ── Formas del wire ───────────────────────────────────────────────────────────

type feedPayload struct {
	Success bool        `json:"success"`
	Data    *[]feedItem `json:"data"` // puntero para distinguir "ausente" de "vacío"
}

type feedItem struct {
	SKU           string              `json:"sku"`
	ItemNumber    string              `json:"itemNumber"`
	Barcode       flexString          `json:"barcode"`
	SouthbayStock decimal.NullDecimal `json:"southbayStock"`
}

// flexString acepta string, número o null: el feed real mezcla barcodes
// numéricos y alfanuméricos.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = flexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		*s = flexString(num.String())
		return nil
	}
	return fmt.Errorf("barcode: ni string ni número: %s", strconv.Quote(string(data)))
}

// Fetch trae todos los ítems del feed. ctx acota la llamada junto con el
// timeout del cliente.
func (c *Client) Fetch(ctx context.Context) ([]appsync.FeedItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Err: err}
	}

	var payload feedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &PayloadError{Reason: "respuesta no es JSON válido: " + err.Error()}
	}
	if !payload.Success {
		return nil, &PayloadError{Reason: "el feed reporta success=false"}
	}
	if payload.Data == nil {
		return nil, &PayloadError{Reason: "la respuesta no trae colección data"}
	}

	items := make([]appsync.FeedItem, 0, len(*payload.Data))
	for _, it := range *payload.Data {
		qty := decimal.Zero
		if it.SouthbayStock.Valid {
			qty = it.SouthbayStock.Decimal
		}
		items = append(items, appsync.FeedItem{
			SKU:      it.SKU,
			MainID:   it.ItemNumber,
			Barcode:  string(it.Barcode),
			Quantity: qty,
		})
	}
	return items, nil
}
