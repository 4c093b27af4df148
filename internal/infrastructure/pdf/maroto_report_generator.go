// Package pdf implementa la rendición PDF del reporte de sincronización que
// se adjunta al correo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Warehouse Sync Report + fecha de generación         │
//	│  RESUMEN: total de ítems / alertas de stock bajo             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | SKU | Barcode | Cant | Alerta | Nota         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appsync "github.com/jhoicas/warehouse-sync/internal/application/sync"
	"github.com/jhoicas/warehouse-sync/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var _ appsync.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa sync.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// Generate genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) Generate(report *appsync.Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Warehouse Sync Report", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(report.Entries) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(report *appsync.Report) core.Row {
	return row.New(12).Add(
		col.New(8).Add(
			text.New("Warehouse Sync Report", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New(report.GeneratedAt.Format("2006-01-02 15:04:05"), props.Text{
				Size: 9, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// summaryRow: totales de la corrida.
func summaryRow(report *appsync.Report) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Ítems registrados: %d   |   Alertas de stock bajo: %d",
				report.Total, report.LowStock),
				props.Text{Size: 9, Top: 1},
			),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de registros.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("SKU", 2, align.Left),
		h("Barcode", 2, align.Left),
		h("Cant.", 1, align.Right),
		h("Alerta", 1, align.Center),
		h("Nota", 4, align.Left),
	)
}

// tableRows: una fila por registro de auditoría; las alertas van en rojo.
func tableRows(entries []*entity.SyncLogEntry) []core.Row {
	cell := func(value string, size int, a align.Type, color *props.Color) core.Col {
		p := props.Text{Size: 7, Align: a, Top: 1, Left: 1, Right: 1}
		if color != nil {
			p.Color = color
		}
		return col.New(size).Add(text.New(value, p))
	}

	result := make([]core.Row, 0, len(entries))
	for _, e := range entries {
		alert := "No"
		var alertColor *props.Color
		if e.Alert {
			alert = "Yes"
			alertColor = colorAlert
		}
		result = append(result, row.New(6).Add(
			cell(e.CreatedAt.Format("2006-01-02 15:04:05"), 2, align.Left, colorGray),
			cell(orNA(e.SKU), 2, align.Left, nil),
			cell(orNA(e.Barcode), 2, align.Left, nil),
			cell(e.Quantity.String(), 1, align.Right, nil),
			cell(alert, 1, align.Center, alertColor),
			cell(orNA(e.Note), 4, align.Left, alertColor),
		))
	}
	return result
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
