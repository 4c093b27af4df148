package sync

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/warehouse-sync/internal/domain/entity"
	"github.com/jhoicas/warehouse-sync/internal/domain/repository"
	"github.com/jhoicas/warehouse-sync/pkg/logger"
)

// reportLogLimit cuántos registros recientes entran al reporte.
const reportLogLimit = 100

// reportTitle asunto/título del resumen en todos los canales.
const reportTitle = "Warehouse Sync Report"

// Report agregado listo para renderizar (HTML, PDF y texto plano).
type Report struct {
	GeneratedAt time.Time
	Total       int
	LowStock    int
	Entries     []*entity.SyncLogEntry
}

// Summary devuelve el resumen en texto plano para los canales in-app.
func (r *Report) Summary() string {
	return fmt.Sprintf("Sincronización de bodega: %d ítems registrados, %d con alerta de stock bajo.",
		r.Total, r.LowStock)
}

// ReportGenerator arma el resumen de los últimos registros del sync y lo
// despacha por los cuatro canales: notificación in-app, mensaje en el muro,
// aviso secundario de mejor esfuerzo y correo HTML con PDF adjunto.
type ReportGenerator struct {
	logs          repository.SyncLogRepository
	notifications repository.NotificationRepository
	configs       repository.SyncConfigRepository
	secondary     SecondaryNotifier // puede ser nil: canal deshabilitado
	mailer        ReportMailer
	pdf           ReportPDFGenerator
	log           *logger.Logger
}

// NewReportGenerator construye el generador de reportes.
func NewReportGenerator(
	logs repository.SyncLogRepository,
	notifications repository.NotificationRepository,
	configs repository.SyncConfigRepository,
	secondary SecondaryNotifier,
	mailer ReportMailer,
	pdf ReportPDFGenerator,
	log *logger.Logger,
) *ReportGenerator {
	return &ReportGenerator{
		logs:          logs,
		notifications: notifications,
		configs:       configs,
		secondary:     secondary,
		mailer:        mailer,
		pdf:           pdf,
		log:           log,
	}
}

// Build agrega los últimos registros de auditoría en un Report.
func (g *ReportGenerator) Build() (*Report, error) {
	entries, err := g.logs.ListRecentEntries(reportLogLimit)
	if err != nil {
		return nil, fmt.Errorf("leer registros recientes: %w", err)
	}
	report := &Report{GeneratedAt: time.Now(), Total: len(entries), Entries: entries}
	for _, e := range entries {
		if e.Alert {
			report.LowStock++
		}
	}
	return report, nil
}

// SendSummary genera y despacha el reporte para el usuario que disparó la
// corrida. Cada canal tiene su propia frontera de fallo: un canal caído no
// impide los demás. Devuelve el primer error encontrado, solo para log del
// caller; nunca debe alterar el estado de la corrida.
func (g *ReportGenerator) SendSummary(userID string) error {
	report, err := g.Build()
	if err != nil {
		return err
	}
	summary := report.Summary()
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	// (a) Notificación in-app para quien disparó la corrida.
	keep(g.notify(userID, entity.NotificationKindAlert, summary))

	// (b) El mismo resumen publicado en el muro del usuario.
	keep(g.notify(userID, entity.NotificationKindMessage, summary))

	// (c) Canal secundario de mejor esfuerzo: el fallo se ignora.
	if g.secondary != nil {
		if err := g.secondary.Notify(userID, reportTitle, summary); err != nil {
			g.log.Debug().Err(err).Msg("aviso secundario falló (ignorado)")
		}
	}

	// (d) Correo HTML con el detalle, si hay destino configurado.
	keep(g.email(report))

	return firstErr
}

func (g *ReportGenerator) notify(userID, kind, body string) error {
	n := &entity.UserNotification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Kind:      kind,
		Title:     reportTitle,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := g.notifications.Create(n); err != nil {
		return fmt.Errorf("aviso in-app (%s): %w", kind, err)
	}
	return nil
}

// email envía el reporte HTML al correo configurado. Sin fila de configuración
// o con correo vacío el paso se omite con un warning, no falla.
func (g *ReportGenerator) email(report *Report) error {
	cfg, err := g.configs.Get()
	if err != nil {
		return fmt.Errorf("leer configuración del sync: %w", err)
	}
	if cfg == nil || cfg.ReportEmail == "" {
		g.log.Warn().Msg("sin correo de reporte configurado; se omite el envío")
		return nil
	}

	htmlBody, err := renderHTML(report)
	if err != nil {
		return fmt.Errorf("renderizar reporte HTML: %w", err)
	}

	// El PDF es un adjunto de cortesía: si falla se envía el correo sin él.
	var attachment []byte
	if g.pdf != nil {
		attachment, err = g.pdf.Generate(report)
		if err != nil {
			g.log.Warn().Err(err).Msg("no se pudo generar el PDF del reporte; se envía sin adjunto")
			attachment = nil
		}
	}

	if err := g.mailer.Send(cfg.ReportEmail, reportTitle, htmlBody, attachment); err != nil {
		return fmt.Errorf("enviar correo de reporte: %w", err)
	}
	g.log.Info().Str("to", cfg.ReportEmail).Msg("reporte del sync enviado por correo")
	return nil
}

// ── Render HTML ───────────────────────────────────────────────────────────────

// reportRow fila ya formateada para la tabla; los valores ausentes van como "N/A".
type reportRow struct {
	CreatedAt string
	SKU       string
	Barcode   string
	MainID    string
	Quantity  string
	Alert     string
	Note      string
}

var reportTemplate = template.Must(template.New("report").Parse(`<html>
<body>
<h2>{{.Title}}</h2>
<p>{{.Summary}}</p>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Fecha</th><th>SKU</th><th>Barcode</th><th>Main ID</th><th>Cantidad</th><th>Alerta</th><th>Nota</th></tr>
{{range .Rows}}<tr><td>{{.CreatedAt}}</td><td>{{.SKU}}</td><td>{{.Barcode}}</td><td>{{.MainID}}</td><td>{{.Quantity}}</td><td>{{.Alert}}</td><td>{{.Note}}</td></tr>
{{end}}</table>
</body>
</html>`))

func renderHTML(report *Report) (string, error) {
	rows := make([]reportRow, 0, len(report.Entries))
	for _, e := range report.Entries {
		alert := "No"
		if e.Alert {
			alert = "Yes"
		}
		rows = append(rows, reportRow{
			CreatedAt: e.CreatedAt.Format("2006-01-02 15:04:05"),
			SKU:       orNA(e.SKU),
			Barcode:   orNA(e.Barcode),
			MainID:    orNA(e.MainID),
			Quantity:  e.Quantity.String(),
			Alert:     alert,
			Note:      orNA(e.Note),
		})
	}

	var buf bytes.Buffer
	err := reportTemplate.Execute(&buf, struct {
		Title   string
		Summary string
		Rows    []reportRow
	}{Title: reportTitle, Summary: report.Summary(), Rows: rows})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
