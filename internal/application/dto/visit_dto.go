package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LogVisitRequest body para POST /api/visits.
type LogVisitRequest struct {
	MarketID  string           `json:"market_id"`
	OutletID  string           `json:"outlet_id,omitempty"`
	VisitedAt *time.Time       `json:"visited_at,omitempty"` // nil = ahora
	GeoLat    *decimal.Decimal `json:"geo_lat,omitempty"`
	GeoLong   *decimal.Decimal `json:"geo_long,omitempty"`
	Purpose   string           `json:"purpose,omitempty"` // checkup, delivery, promo
	Notes     string           `json:"notes,omitempty"`
}

// VisitResponse representación de una visita.
type VisitResponse struct {
	ID        string           `json:"id"`
	AgentID   string           `json:"agent_id"`
	MarketID  string           `json:"market_id"`
	OutletID  string           `json:"outlet_id,omitempty"`
	VisitedAt time.Time        `json:"visited_at"`
	GeoLat    *decimal.Decimal `json:"geo_lat,omitempty"`
	GeoLong   *decimal.Decimal `json:"geo_long,omitempty"`
	Purpose   string           `json:"purpose,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
