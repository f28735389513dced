package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Propósitos de visita.
const (
	VisitCheckup  = "checkup"
	VisitDelivery = "delivery"
	VisitPromo    = "promo"
)

// Visit representa la visita de un agente a un mercado u outlet.
type Visit struct {
	ID        string
	AgentID   string
	MarketID  string
	OutletID  string // opcional
	VisitedAt time.Time
	GeoLat    *decimal.Decimal
	GeoLong   *decimal.Decimal
	Purpose   string // checkup, delivery, promo
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
