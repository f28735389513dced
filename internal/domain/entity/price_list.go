package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una entrada de lista de precios.
const (
	PriceStatusActive   = "active"
	PriceStatusInactive = "inactive"
)

// PriceListEntry representa el precio de un pack en un mercado durante una
// ventana de vigencia [EffectiveFrom, EffectiveTo]. EffectiveTo nil = vigente
// sin fecha de cierre. Para un (pack, mercado) las ventanas activas no se solapan.
type PriceListEntry struct {
	ID             string
	PackID         string
	MarketID       string
	UnitPrice      decimal.Decimal
	TaxRate        decimal.Decimal
	DiscountPolicy []byte // JSON opcional: reglas de descuento por volumen/promoción
	EffectiveFrom  time.Time
	EffectiveTo    *time.Time
	Status         string // active, inactive
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// InEffect indica si la entrada cubre la fecha dada (solo fechas, sin hora).
func (p *PriceListEntry) InEffect(asOf time.Time) bool {
	if p.Status != PriceStatusActive {
		return false
	}
	if asOf.Before(p.EffectiveFrom) {
		return false
	}
	return p.EffectiveTo == nil || !asOf.After(*p.EffectiveTo)
}
