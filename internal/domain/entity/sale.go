package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta realizada por un agente en un mercado.
// El precio unitario queda congelado al momento de la venta (resuelto desde
// la lista de precios vigente o digitado manualmente por el agente).
type Sale struct {
	ID             string
	AgentID        string
	MarketID       string
	VisitID        string // opcional: visita durante la cual se registró
	PackID         string
	Quantity       int64
	UnitPrice      decimal.Decimal
	DiscountAmount decimal.Decimal
	PromoCodeID    string
	CampaignID     string
	Revenue        decimal.Decimal // derivado, ver ComputeRevenue
	LedgerRef      string          // ID de la entrada del ledger generada por esta venta
	SoldAt         time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ComputeRevenue recalcula Revenue = UnitPrice*Quantity - DiscountAmount.
// Se invoca en cada persistencia; la derivación es determinista, persistir
// el mismo registro N veces produce siempre el mismo Revenue.
func (s *Sale) ComputeRevenue() {
	gross := s.UnitPrice.Mul(decimal.NewFromInt(s.Quantity))
	s.Revenue = gross.Sub(s.DiscountAmount)
}
