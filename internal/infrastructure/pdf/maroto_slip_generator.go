// Package pdf implementa la generación de la planilla de entrega de stock:
// la copia física que firma el agente al recibir una asignación.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────────┐
//	│  HEADER: FieldOps + N° Planilla + Fecha        │
//	│  ───────────────────────────────────────────  │
//	│  AGENTE: nombre / teléfono / región            │
//	│  ───────────────────────────────────────────  │
//	│  DETALLE: Producto | Presentación | Cantidad   │
//	│  ───────────────────────────────────────────  │
//	│  OBSERVACIONES + FIRMAS (entregó / recibió)    │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
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

	"github.com/jhoicas/fieldops-api/internal/application/stock"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 16, Green: 94, Blue: 56}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ stock.AllocationSlipPDFGenerator = (*MarotoSlipGenerator)(nil)

// MarotoSlipGenerator implementa stock.AllocationSlipPDFGenerator usando Maroto v2.
type MarotoSlipGenerator struct{}

// NewMarotoSlipGenerator construye el generador.
func NewMarotoSlipGenerator() *MarotoSlipGenerator { return &MarotoSlipGenerator{} }

// GenerateSlipPDF genera la planilla de entrega y devuelve sus bytes.
func (g *MarotoSlipGenerator) GenerateSlipPDF(
	_ context.Context,
	allocation *entity.Allocation,
	agent *entity.User,
	pack *entity.PackSize,
	product *entity.Product,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Planilla de Entrega "+allocation.SlipNumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(allocation))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(agentRow(agent))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(detailRow(product, pack, allocation))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	if allocation.Notes != "" {
		m.AddRows(notesRow(allocation.Notes))
	}
	m.AddRows(line.NewRow(4))
	m.AddRows(signatureRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar planilla: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: marca (izq) y N° planilla + fecha (der).
func headerRow(allocation *entity.Allocation) core.Row {
	fecha := allocation.CreatedAt.Format("02/01/2006 15:04")

	return row.New(16).Add(
		col.New(6).Add(
			text.New("FieldOps", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Planilla de entrega de stock", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New("PLANILLA N°", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(allocation.SlipNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

// agentRow: datos del agente que recibe.
func agentRow(agent *entity.User) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("AGENTE RECEPTOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(agent.Username, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Tel: %s   |   Región: %s",
				nonEmpty(agent.Phone, "—"),
				nonEmpty(agent.Region, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de detalle.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 6, align.Left),
		h("Presentación", 3, align.Center),
		h("Cantidad", 3, align.Right),
	)
}

// detailRow: la línea de la asignación (una planilla = un pack).
func detailRow(product *entity.Product, pack *entity.PackSize, allocation *entity.Allocation) core.Row {
	return row.New(8).Add(
		col.New(6).Add(text.New(
			product.Name,
			props.Text{Size: 9, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(3).Add(text.New(
			pack.Label,
			props.Text{Size: 9, Align: align.Center, Top: 1},
		)),
		col.New(3).Add(text.New(
			fmt.Sprintf("%d", allocation.Quantity),
			props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// notesRow: observaciones de bodega.
func notesRow(notes string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("Observaciones: "+notes, props.Text{
			Size: 8, Color: colorGray, Top: 2,
		}),
	))
}

// signatureRow: líneas de firma para quien entrega y quien recibe.
func signatureRow() core.Row {
	sig := func(label string) core.Col {
		return col.New(6).Add(
			text.New("______________________________", props.Text{
				Size: 9, Align: align.Center, Top: 10, Color: colorGray,
			}),
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 16,
			}),
		)
	}
	return row.New(22).Add(
		sig("ENTREGÓ (bodega)"),
		sig("RECIBIÓ (agente)"),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
