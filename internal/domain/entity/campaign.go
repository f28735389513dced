package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de campaña de marketing.
const (
	CampaignPromo    = "promo"
	CampaignSampling = "sampling"
	CampaignDiscount = "discount"
	CampaignEvent    = "event"
)

// Estados de campaña.
const (
	CampaignDraft     = "draft"
	CampaignActive    = "active"
	CampaignPaused    = "paused"
	CampaignCompleted = "completed"
	CampaignCancelled = "cancelled"
)

// Campaign representa una campaña de marketing/activación en campo.
// BudgetTotal/BudgetSpent son informativos; no hay contabilidad de presupuesto.
type Campaign struct {
	ID          string
	Name        string
	Type        string
	BudgetTotal decimal.Decimal
	BudgetSpent decimal.Decimal
	StartDate   time.Time
	EndDate     time.Time
	Objectives  []byte // JSON libre
	Status      string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PromoCode representa un código promocional asociado a una campaña.
type PromoCode struct {
	ID            string
	Code          string
	CampaignID    string
	DiscountType  string // percent, fixed
	DiscountValue decimal.Decimal
	ValidFrom     time.Time
	ValidTo       time.Time
	UsageLimit    *int64
	UsedCount     int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
