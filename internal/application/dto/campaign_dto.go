package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateCampaignRequest body para POST /api/campaigns. Fechas 2006-01-02.
type CreateCampaignRequest struct {
	Name        string          `json:"name"`
	Type        string          `json:"type"` // promo, sampling, discount, event
	BudgetTotal decimal.Decimal `json:"budget_total"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	Objectives  json.RawMessage `json:"objectives,omitempty"`
}

// UpdateCampaignStatusRequest body para PATCH /api/campaigns/:id/status.
type UpdateCampaignStatusRequest struct {
	Status string `json:"status"` // active, paused, completed, cancelled
}

// CampaignResponse representación de una campaña.
type CampaignResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	BudgetTotal decimal.Decimal `json:"budget_total"`
	BudgetSpent decimal.Decimal `json:"budget_spent"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
	Objectives  json.RawMessage `json:"objectives,omitempty"`
	Status      string          `json:"status"`
	OwnerID     string          `json:"owner_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreatePromoCodeRequest body para POST /api/campaigns/:id/promo-codes.
type CreatePromoCodeRequest struct {
	Code          string          `json:"code"`
	DiscountType  string          `json:"discount_type"` // percent, fixed
	DiscountValue decimal.Decimal `json:"discount_value"`
	ValidFrom     time.Time       `json:"valid_from"`
	ValidTo       time.Time       `json:"valid_to"`
	UsageLimit    *int64          `json:"usage_limit,omitempty"`
}

// PromoCodeResponse representación de un código promocional.
type PromoCodeResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	CampaignID    string          `json:"campaign_id"`
	DiscountType  string          `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	ValidFrom     time.Time       `json:"valid_from"`
	ValidTo       time.Time       `json:"valid_to"`
	UsageLimit    *int64          `json:"usage_limit,omitempty"`
	UsedCount     int64           `json:"used_count"`
}
