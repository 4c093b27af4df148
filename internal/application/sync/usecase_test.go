package sync_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsync "github.com/jhoicas/warehouse-sync/internal/application/sync"
	"github.com/jhoicas/warehouse-sync/internal/domain"
	"github.com/jhoicas/warehouse-sync/internal/domain/entity"
	"github.com/jhoicas/warehouse-sync/pkg/logger"
)

const testLocationID = "stock-location-main"

// harness agrupa las dependencias fake y el UseCase bajo prueba.
type harness struct {
	products *fakeProductRepo
	quants   *fakeQuantRepo
	logs     *fakeSyncLogRepo
	configs  *fakeConfigRepo
	notes    *fakeNotificationRepo
	feed     *fakeFeed
	mailer   *fakeMailer
	uc       *appsync.UseCase
}

func newHarness(feed *fakeFeed, products ...*entity.Product) *harness {
	h := &harness{
		products: newFakeProductRepo(products...),
		quants:   newFakeQuantRepo(),
		logs:     newFakeSyncLogRepo(),
		configs:  &fakeConfigRepo{Cfg: &entity.SyncConfig{ID: "default", ReportEmail: "bodega@example.com"}},
		notes:    &fakeNotificationRepo{},
		feed:     feed,
		mailer:   &fakeMailer{},
	}
	log := logger.Nop()
	reports := appsync.NewReportGenerator(h.logs, h.notes, h.configs, nil, h.mailer, &fakePDF{Bytes: []byte("%PDF")}, log)
	h.uc = appsync.NewUseCase(
		feed,
		appsync.NewProductMatcher(h.products),
		appsync.NewInventoryUpdater(h.quants, testLocationID),
		h.products,
		h.logs,
		reports,
		log,
	)
	return h
}

func product(id, sku, barcode string, qty int64) *entity.Product {
	return &entity.Product{
		ID:           id,
		SKU:          sku,
		Barcode:      barcode,
		Name:         "Producto " + sku,
		QtyAvailable: decimal.NewFromInt(qty),
		UpdatedAt:    time.Now(),
	}
}

func TestRunSync_StockCeroDeshabilitaVenta(t *testing.T) {
	// El feed reporta 0 para A1: cantidad normalizada 0, alerta, nota de
	// stock bajo, stock sobrescrito y producto despublicado.
	feed := &fakeFeed{Items: []appsync.FeedItem{
		{SKU: "A1", MainID: "E1", Barcode: "123", Quantity: decimal.Zero},
	}}
	h := newHarness(feed, product("p1", "A1", "123", 10))

	run, err := h.uc.RunSync(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.RunStatusSuccess, run.Status)
	assert.Equal(t, "Sync successful", run.Message)

	require.Len(t, h.logs.Entries, 1)
	entry := h.logs.Entries[0]
	assert.Equal(t, "A1", entry.SKU)
	assert.Equal(t, "E1", entry.MainID)
	assert.True(t, entry.Quantity.IsZero())
	assert.True(t, entry.Alert)
	assert.Equal(t, "LOW STOCK — DISABLED SALE", entry.Note)

	// La fila de existencias no existía: se crea con la cantidad nueva.
	assert.Equal(t, 1, h.quants.Creates)
	quant := h.quants.Quants["p1|"+testLocationID]
	require.NotNil(t, quant)
	assert.True(t, quant.Quantity.IsZero())

	assert.False(t, h.products.Published["p1"])
}

func TestRunSync_StockAdecuadoPublicaYNoEscribe(t *testing.T) {
	// southbayStock=40 cae en el nivel 30..50 → 2; el producto ya tiene 2,
	// así que no hay escritura de stock pero sí registro y visibilidad.
	feed := &fakeFeed{Items: []appsync.FeedItem{
		{SKU: "B2", Barcode: "456", Quantity: decimal.NewFromInt(40)},
	}}
	h := newHarness(feed, product("p2", "B2", "456", 2))

	run, err := h.uc.RunSync(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.RunStatusSuccess, run.Status)

	require.Len(t, h.logs.Entries, 1)
	entry := h.logs.Entries[0]
	assert.True(t, entry.Quantity.Equal(decimal.NewFromInt(2)))
	assert.False(t, entry.Alert)
	assert.Equal(t, "Stock OK", entry.Note)

	assert.Zero(t, h.quants.Creates)
	assert.Zero(t, h.quants.Updates)
	assert.True(t, h.products.Published["p2"])
}

func TestRunSync_NivelAltoRegistraNotaDeRegla(t *testing.T) {
	// southbayStock=250 → nivel 10; cambia desde 3 y queda la nota con la
	// cantidad nueva.
	feed := &fakeFeed{Items: []appsync.FeedItem{
		{SKU: "C3", Quantity: decimal.NewFromInt(250)},
	}}
	h := newHarness(feed, product("p3", "C3", "", 3))

	_, err := h.uc.RunSync(context.Background(), "u1")
	require.NoError(t, err)

	require.Len(t, h.logs.Entries, 1)
	entry := h.logs.Entries[0]
	assert.True(t, entry.Quantity.Equal(decimal.NewFromInt(10)))
	assert.False(t, entry.Alert)
	assert.Equal(t, "Stock rule triggered: new Odoo qty = 10", entry.Note)
	assert.Equal(t, 1, h.quants.Creates)
}

func TestRunSync_MatchPorBarcode(t *testing.T) {
	// El SKU del feed no existe localmente pero el barcode sí.
	feed := &fakeFeed{Items: []appsync.FeedItem{
		{SKU: "NO-EXISTE", Barcode: "789", Quantity: decimal.NewFromInt(35)},
	}}
	h := newHarness(feed, product("p4", "D4", "789", 9))

	_, err := h.uc.RunSync(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, h.logs.Entries, 1)
	assert.True(t, h.logs.Entries[0].Quantity.Equal(decimal.NewFromInt(2)))
}

func TestRunSync_SinCoincidenciaOmiteEnSilencio(t *testing.T) {
	feed := &fakeFeed{Items: []appsync.FeedItem{
		{SKU: "X9", Barcode: "000", Quantity: decimal.NewFromInt(100)},
	}}
	h := newHarness(feed) // catálogo vacío

	run, err := h.uc.RunSync(context.Background(), "u1")
	require.NoError(t, err)

	// Omisión silenciosa: corrida exitosa, sin auditoría ni escrituras.
	assert.Equal(t, entity.RunStatusSuccess, run.Status)
	assert.Empty(t, h.logs.Entries)
	assert.Zero(t, h.quants.Creates)
	assert.Empty(t, h.products.Published)
}

func TestRunSync_SegundaCorridaIdempotente(t *testing.T) {
	feed := &fakeFeed{Items: []appsync.FeedItem{
		{SKU: "A1", Barcode: "123", Quantity: decimal.NewFromInt(40)},
	}}
	p := product("p1", "A1", "123", 10)
	h := newHarness(feed, p)

	_, err := h.uc.RunSync(context.Background(), "u1")
	require.NoError(t, err)
	writesAfterFirst := h.quants.Creates + h.quants.Updates
	assert.Equal(t, 1, writesAfterFirst)

	// El producto local ya refleja la cantidad normalizada.
	p.QtyAvailable = decimal.NewFromInt(2)

	_, err = h.uc.RunSync(context.Background(), "u1")
	require.NoError(t, err)

	// Segunda corrida con el mismo feed: sin nuevas escrituras de stock,
	// pero sí nuevo registro de auditoría y de corrida.
	assert.Equal(t, writesAfterFirst, h.quants.Creates+h.quants.Updates)
	assert.Len(t, h.logs.Entries, 2)
	assert.Len(t, h.logs.Runs, 2)
}

func TestRunSync_FeedInvalidoRegistraCorridaFallida(t *testing.T) {
	feed := &fakeFeed{Err: errors.New("respuesta del feed sin éxito")}
	h := newHarness(feed, product("p1", "A1", "123", 10))

	run, err := h.uc.RunSync(context.Background(), "u1")
	require.NoError(t, err)

	// El fallo de payload no es fatal para la corrida: queda registrada
	// como fallida, con cero registros de auditoría y cero escrituras.
	assert.Equal(t, entity.RunStatusFail, run.Status)
	assert.Equal(t, "respuesta del feed sin éxito", run.Message)
	assert.Empty(t, h.logs.Entries)
	assert.Zero(t, h.quants.Creates)
	require.Len(t, h.logs.Runs, 1)

	// El reporte se despacha igual, aun con corrida fallida.
	assert.NotEmpty(t, h.notes.Notes)
}

func TestRunSync_ErrorDeItemAislado(t *testing.T) {
	// El ítem del medio falla al persistir su auditoría; los demás siguen.
	feed := &fakeFeed{Items: []appsync.FeedItem{
		{SKU: "A1", Barcode: "1", Quantity: decimal.NewFromInt(40)},
		{SKU: "B2", Barcode: "2", Quantity: decimal.NewFromInt(60)},
		{SKU: "C3", Barcode: "3", Quantity: decimal.NewFromInt(250)},
	}}
	h := newHarness(feed,
		product("p1", "A1", "1", 10),
		product("p2", "B2", "2", 10),
		product("p3", "C3", "3", 10),
	)
	h.logs.EntryErr["B2"] = errors.New("deadlock detectado")

	run, err := h.uc.RunSync(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, entity.RunStatusFail, run.Status)
	assert.Contains(t, run.Message, "1 de 3 ítems fallaron")
	assert.Contains(t, run.Message, "deadlock detectado")

	// A1 y C3 se procesaron completos pese al fallo de B2.
	require.Len(t, h.logs.Entries, 2)
	assert.Equal(t, "A1", h.logs.Entries[0].SKU)
	assert.Equal(t, "C3", h.logs.Entries[1].SKU)
	assert.True(t, h.products.Published["p1"])
	assert.True(t, h.products.Published["p3"])
	_, touched := h.products.Published["p2"]
	assert.False(t, touched)
}

func TestRunSync_CorridaConcurrenteRechazada(t *testing.T) {
	feed := &fakeFeed{
		Started: make(chan struct{}),
		Release: make(chan struct{}),
	}
	h := newHarness(feed)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := h.uc.RunSync(context.Background(), appsync.SystemUserID)
		assert.NoError(t, err)
	}()

	// Con la primera corrida bloqueada en el fetch, la segunda se rechaza.
	<-feed.Started
	_, err := h.uc.RunSync(context.Background(), "u2")
	assert.ErrorIs(t, err, domain.ErrSyncRunning)

	close(feed.Release)
	<-done

	// Liberado el candado, una corrida nueva vuelve a ser aceptada.
	feed.Started = nil
	_, err = h.uc.RunSync(context.Background(), "u2")
	assert.NoError(t, err)
	assert.Len(t, h.logs.Runs, 2)
}

func TestRunSync_ReporteSiempreSeDespacha(t *testing.T) {
	feed := &fakeFeed{Items: []appsync.FeedItem{
		{SKU: "A1", Barcode: "123", Quantity: decimal.Zero},
	}}
	h := newHarness(feed, product("p1", "A1", "123", 10))

	_, err := h.uc.RunSync(context.Background(), "u7")
	require.NoError(t, err)

	// Dos avisos in-app (campana + muro) para quien disparó la corrida.
	require.Len(t, h.notes.Notes, 2)
	kinds := []string{h.notes.Notes[0].Kind, h.notes.Notes[1].Kind}
	assert.Contains(t, kinds, entity.NotificationKindAlert)
	assert.Contains(t, kinds, entity.NotificationKindMessage)
	assert.Equal(t, "u7", h.notes.Notes[0].UserID)

	// Correo con el detalle al destino configurado.
	require.Len(t, h.mailer.Sent, 1)
	assert.Equal(t, "bodega@example.com", h.mailer.Sent[0].To)
	assert.Equal(t, "Warehouse Sync Report", h.mailer.Sent[0].Subject)
	assert.NotEmpty(t, h.mailer.Sent[0].Attachment)
}
