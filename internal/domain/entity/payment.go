package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en campo.
const (
	PaymentCash   = "cash"
	PaymentCredit = "credit"
	PaymentMpesa  = "mpesa"
	PaymentCard   = "card"
)

// Estados de un pago.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// ValidPaymentMethod verifica el método de pago.
func ValidPaymentMethod(m string) bool {
	return m == PaymentCash || m == PaymentCredit || m == PaymentMpesa || m == PaymentCard
}

// Payment representa un pago (total o parcial) asociado a una venta.
type Payment struct {
	ID             string
	SaleID         string
	Method         string
	Amount         decimal.Decimal
	Status         string
	TransactionRef string // referencia externa (ej. código M-Pesa)
	ProcessedAt    *time.Time
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
