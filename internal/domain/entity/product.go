package entity

import "time"

// Product representa un producto del catálogo de distribución.
type Product struct {
	ID          string
	Name        string
	Category    string
	Description string
	SKU         string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PackSize representa una presentación vendible de un producto (ej. "50g").
// Es la unidad que se asigna, transfiere y vende; el ledger de stock cuenta packs.
type PackSize struct {
	ID        string
	ProductID string
	Label     string // "50g", "100g", "caja x12"
	SKU       string
	Unit      string // g, kg, unidad
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
