package sync_test

import (
	"context"
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	appsync "github.com/jhoicas/warehouse-sync/internal/application/sync"
	"github.com/jhoicas/warehouse-sync/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes in-memory de los puertos del sincronizador.
// Sin mocks generados: el estado observable (escrituras, llamadas) queda en
// campos públicos para que los asserts lean directo.
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products []*entity.Product
	// Published registra la última visibilidad fijada por producto.
	Published map[string]bool
	// ErrBySKU permite inyectar un fallo de store para un SKU puntual.
	ErrBySKU map[string]error
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	return &fakeProductRepo{
		products:  products,
		Published: make(map[string]bool),
		ErrBySKU:  make(map[string]error),
	}
}

func (r *fakeProductRepo) FindBySKU(sku string) (*entity.Product, error) {
	if err := r.ErrBySKU[sku]; err != nil {
		return nil, err
	}
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) FindByBarcode(barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) SetWebsitePublished(productID string, published bool) error {
	r.Published[productID] = published
	for _, p := range r.products {
		if p.ID == productID {
			p.WebsitePublished = published
		}
	}
	return nil
}

type fakeQuantRepo struct {
	Quants  map[string]*entity.Quant // key: productID + "|" + locationID
	Creates int
	Updates int
}

func newFakeQuantRepo() *fakeQuantRepo {
	return &fakeQuantRepo{Quants: make(map[string]*entity.Quant)}
}

func (r *fakeQuantRepo) key(productID, locationID string) string {
	return productID + "|" + locationID
}

func (r *fakeQuantRepo) Get(productID, locationID string) (*entity.Quant, error) {
	return r.Quants[r.key(productID, locationID)], nil
}

func (r *fakeQuantRepo) Create(productID, locationID string, qty decimal.Decimal) error {
	r.Creates++
	r.Quants[r.key(productID, locationID)] = &entity.Quant{
		ProductID: productID, LocationID: locationID, Quantity: qty,
	}
	return nil
}

func (r *fakeQuantRepo) UpdateQuantity(productID, locationID string, qty decimal.Decimal) error {
	r.Updates++
	q, ok := r.Quants[r.key(productID, locationID)]
	if !ok {
		return errors.New("quant inexistente")
	}
	q.Quantity = qty
	return nil
}

type fakeSyncLogRepo struct {
	Entries []*entity.SyncLogEntry
	Runs    []*entity.SyncRunRecord
	// EntryErr hace fallar CreateEntry para un SKU puntual.
	EntryErr map[string]error
}

func newFakeSyncLogRepo() *fakeSyncLogRepo {
	return &fakeSyncLogRepo{EntryErr: make(map[string]error)}
}

func (r *fakeSyncLogRepo) CreateEntry(entry *entity.SyncLogEntry) error {
	if err := r.EntryErr[entry.SKU]; err != nil {
		return err
	}
	r.Entries = append(r.Entries, entry)
	return nil
}

func (r *fakeSyncLogRepo) CreateRun(run *entity.SyncRunRecord) error {
	r.Runs = append(r.Runs, run)
	return nil
}

func (r *fakeSyncLogRepo) ListRecentEntries(limit int) ([]*entity.SyncLogEntry, error) {
	out := make([]*entity.SyncLogEntry, len(r.Entries))
	copy(out, r.Entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeSyncLogRepo) ListRecentRuns(limit int) ([]*entity.SyncRunRecord, error) {
	out := make([]*entity.SyncRunRecord, len(r.Runs))
	copy(out, r.Runs)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeConfigRepo struct {
	Cfg *entity.SyncConfig
}

func (r *fakeConfigRepo) Get() (*entity.SyncConfig, error) { return r.Cfg, nil }
func (r *fakeConfigRepo) Upsert(cfg *entity.SyncConfig) error {
	r.Cfg = cfg
	return nil
}

type fakeNotificationRepo struct {
	Notes []*entity.UserNotification
	Err   error
}

func (r *fakeNotificationRepo) Create(n *entity.UserNotification) error {
	if r.Err != nil {
		return r.Err
	}
	r.Notes = append(r.Notes, n)
	return nil
}

func (r *fakeNotificationRepo) ListByUser(userID string, limit int) ([]*entity.UserNotification, error) {
	var out []*entity.UserNotification
	for _, n := range r.Notes {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

type fakeFeed struct {
	Items []appsync.FeedItem
	Err   error
	// Block permite simular una corrida larga: Fetch avisa por Started y
	// espera a que el test cierre Release.
	Started chan struct{}
	Release chan struct{}
}

func (f *fakeFeed) Fetch(_ context.Context) ([]appsync.FeedItem, error) {
	if f.Started != nil {
		close(f.Started)
		<-f.Release
	}
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Items, nil
}

type sentMail struct {
	To         string
	Subject    string
	HTMLBody   string
	Attachment []byte
}

type fakeMailer struct {
	Sent []sentMail
	Err  error
}

func (m *fakeMailer) Send(to, subject, htmlBody string, attachment []byte) error {
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, sentMail{To: to, Subject: subject, HTMLBody: htmlBody, Attachment: attachment})
	return nil
}

type fakeSecondary struct {
	Calls int
	Err   error
}

func (s *fakeSecondary) Notify(_, _, _ string) error {
	s.Calls++
	return s.Err
}

type fakePDF struct {
	Bytes []byte
	Err   error
}

func (p *fakePDF) Generate(_ *appsync.Report) ([]byte, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Bytes, nil
}
