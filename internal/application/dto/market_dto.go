package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMarketRequest body para POST /api/markets.
type CreateMarketRequest struct {
	Name    string           `json:"name"`
	Region  string           `json:"region"`
	GPSLat  *decimal.Decimal `json:"gps_lat,omitempty"`
	GPSLong *decimal.Decimal `json:"gps_long,omitempty"`
}

// MarketResponse representación de un mercado.
type MarketResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Region    string           `json:"region"`
	GPSLat    *decimal.Decimal `json:"gps_lat,omitempty"`
	GPSLong   *decimal.Decimal `json:"gps_long,omitempty"`
	IsActive  bool             `json:"is_active"`
	CreatedAt time.Time        `json:"created_at"`
}

// CreateOutletRequest body para POST /api/markets/:id/outlets.
type CreateOutletRequest struct {
	Name       string `json:"name"`
	Descriptor string `json:"descriptor,omitempty"`
}

// OutletResponse representación de un punto de venta.
type OutletResponse struct {
	ID         string    `json:"id"`
	MarketID   string    `json:"market_id"`
	Name       string    `json:"name"`
	Descriptor string    `json:"descriptor,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
