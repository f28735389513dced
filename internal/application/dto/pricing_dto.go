package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreatePriceRequest body para POST /api/prices. Fechas en formato 2006-01-02.
type CreatePriceRequest struct {
	PackID        string          `json:"pack_id"`
	MarketID      string          `json:"market_id"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	DiscountJSON  json.RawMessage `json:"discount_policy,omitempty"`
	EffectiveFrom string          `json:"effective_from"`
	EffectiveTo   string          `json:"effective_to,omitempty"` // vacío = vigencia abierta
}

// PriceResponse representación de una entrada de lista de precios.
type PriceResponse struct {
	ID            string          `json:"id"`
	PackID        string          `json:"pack_id"`
	MarketID      string          `json:"market_id"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	DiscountJSON  json.RawMessage `json:"discount_policy,omitempty"`
	EffectiveFrom string          `json:"effective_from"`
	EffectiveTo   string          `json:"effective_to,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}
