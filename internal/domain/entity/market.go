package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Market representa un mercado o zona comercial donde operan los agentes.
type Market struct {
	ID        string
	Name      string
	Region    string
	GPSLat    *decimal.Decimal
	GPSLong   *decimal.Decimal
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Outlet representa un punto de venta dentro de un mercado.
type Outlet struct {
	ID         string
	MarketID   string
	Name       string
	Descriptor string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
