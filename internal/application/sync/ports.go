package sync

import (
	"context"

	"github.com/shopspring/decimal"
)

// FeedItem es un registro del feed remoto ya decodificado.
// Efímero: solo existe durante una corrida.
type FeedItem struct {
	SKU      string
	MainID   string // itemNumber en el sistema externo
	Barcode  string
	Quantity decimal.Decimal // southbayStock; ausente en el feed = 0
}

// FeedClient define el puerto de salida hacia el API de la bodega remota.
// Fetch devuelve todos los ítems del feed o un error tipado
// (feed.FetchError / feed.PayloadError).
type FeedClient interface {
	Fetch(ctx context.Context) ([]FeedItem, error)
}

// ReportMailer define el puerto de envío del reporte por correo.
// attachment es la rendición PDF del reporte; puede ser nil.
type ReportMailer interface {
	Send(to, subject, htmlBody string, attachment []byte) error
}

// SecondaryNotifier es el canal de aviso secundario de mejor esfuerzo:
// sus fallos se ignoran y nunca afectan el resultado del reporte.
type SecondaryNotifier interface {
	Notify(userID, title, body string) error
}

// ReportPDFGenerator genera la rendición PDF del reporte.
type ReportPDFGenerator interface {
	Generate(report *Report) ([]byte, error)
}
