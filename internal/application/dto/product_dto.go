package dto

import "time"

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	SKU         string `json:"sku"`
}

// UpdateProductRequest body para PUT /api/products/:id.
type UpdateProductRequest struct {
	Name        string `json:"name,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// ProductResponse representación de un producto.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	SKU         string    `json:"sku"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreatePackSizeRequest body para POST /api/products/:id/packs.
type CreatePackSizeRequest struct {
	Label string `json:"label"` // "50g"
	SKU   string `json:"sku"`
	Unit  string `json:"unit,omitempty"` // default "g"
}

// PackSizeResponse representación de una presentación.
type PackSizeResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Label     string    `json:"label"`
	SKU       string    `json:"sku"`
	Unit      string    `json:"unit"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
