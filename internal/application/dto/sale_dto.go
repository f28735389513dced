package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordSaleRequest body para POST /api/sales.
// Si UnitPrice viene nil, el precio se resuelve desde la lista vigente
// para (pack, mercado) en la fecha de la venta.
type RecordSaleRequest struct {
	MarketID       string           `json:"market_id"`
	VisitID        string           `json:"visit_id,omitempty"`
	PackID         string           `json:"pack_id"`
	Quantity       int64            `json:"quantity"`
	UnitPrice      *decimal.Decimal `json:"unit_price,omitempty"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	PromoCode      string           `json:"promo_code,omitempty"`
	CampaignID     string           `json:"campaign_id,omitempty"`
}

// SaleResponse representación de una venta.
type SaleResponse struct {
	ID             string          `json:"id"`
	AgentID        string          `json:"agent_id"`
	MarketID       string          `json:"market_id"`
	VisitID        string          `json:"visit_id,omitempty"`
	PackID         string          `json:"pack_id"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Revenue        decimal.Decimal `json:"revenue"`
	LedgerRef      string          `json:"ledger_ref,omitempty"`
	SoldAt         time.Time       `json:"sold_at"`
}

// CreatePaymentRequest body para POST /api/sales/:id/payments.
type CreatePaymentRequest struct {
	Method         string          `json:"method"` // cash, credit, mpesa, card
	Amount         decimal.Decimal `json:"amount"`
	TransactionRef string          `json:"transaction_ref,omitempty"`
	Notes          string          `json:"notes,omitempty"`
}

// UpdatePaymentStatusRequest body para PATCH /api/payments/:id.
type UpdatePaymentStatusRequest struct {
	Status         string `json:"status"` // completed, failed, refunded
	TransactionRef string `json:"transaction_ref,omitempty"`
}

// PaymentResponse representación de un pago.
type PaymentResponse struct {
	ID             string          `json:"id"`
	SaleID         string          `json:"sale_id"`
	Method         string          `json:"method"`
	Amount         decimal.Decimal `json:"amount"`
	Status         string          `json:"status"`
	TransactionRef string          `json:"transaction_ref,omitempty"`
	ProcessedAt    *time.Time      `json:"processed_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}
