package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/fieldops-api/internal/application/dto"
	"github.com/jhoicas/fieldops-api/internal/application/pricing"
	"github.com/jhoicas/fieldops-api/internal/domain"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

// Transiciones válidas de estado de campaña.
var campaignTransitions = map[string][]string{
	entity.CampaignDraft:  {entity.CampaignActive, entity.CampaignCancelled},
	entity.CampaignActive: {entity.CampaignPaused, entity.CampaignCompleted, entity.CampaignCancelled},
	entity.CampaignPaused: {entity.CampaignActive, entity.CampaignCompleted, entity.CampaignCancelled},
}

// CampaignUseCase casos de uso CRUD para campañas y códigos promocionales.
// El presupuesto es informativo: no hay contabilidad de gasto.
type CampaignUseCase struct {
	repo      repository.CampaignRepository
	promoRepo repository.PromoCodeRepository
}

// NewCampaignUseCase construye el caso de uso.
func NewCampaignUseCase(repo repository.CampaignRepository, promoRepo repository.PromoCodeRepository) *CampaignUseCase {
	return &CampaignUseCase{repo: repo, promoRepo: promoRepo}
}

// Create crea una campaña en estado draft.
func (uc *CampaignUseCase) Create(ownerID string, in dto.CreateCampaignRequest) (*dto.CampaignResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.Type {
	case entity.CampaignPromo, entity.CampaignSampling, entity.CampaignDiscount, entity.CampaignEvent:
	default:
		return nil, domain.ErrInvalidInput
	}
	start, err := time.Parse(pricing.DateLayout, in.StartDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	end, err := time.Parse(pricing.DateLayout, in.EndDate)
	if err != nil || end.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	campaign := &entity.Campaign{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Type:        in.Type,
		BudgetTotal: in.BudgetTotal,
		BudgetSpent: decimal.Zero,
		StartDate:   start,
		EndDate:     end,
		Objectives:  in.Objectives,
		Status:      entity.CampaignDraft,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(campaign); err != nil {
		return nil, err
	}
	return toCampaignResponse(campaign), nil
}

// UpdateStatus transiciona el estado de la campaña según el ciclo
// draft -> active -> paused/completed/cancelled.
func (uc *CampaignUseCase) UpdateStatus(id string, in dto.UpdateCampaignStatusRequest) (*dto.CampaignResponse, error) {
	campaign, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, domain.ErrNotFound
	}
	allowed := false
	for _, next := range campaignTransitions[campaign.Status] {
		if next == in.Status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, domain.ErrConflict
	}
	campaign.Status = in.Status
	campaign.UpdatedAt = time.Now()
	if err := uc.repo.Update(campaign); err != nil {
		return nil, err
	}
	return toCampaignResponse(campaign), nil
}

// List lista campañas, opcionalmente por estado.
func (uc *CampaignUseCase) List(status string, limit, offset int) ([]*dto.CampaignResponse, error) {
	campaigns, err := uc.repo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CampaignResponse, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, toCampaignResponse(c))
	}
	return out, nil
}

// AddPromoCode crea un código promocional para la campaña.
func (uc *CampaignUseCase) AddPromoCode(campaignID string, in dto.CreatePromoCodeRequest) (*dto.PromoCodeResponse, error) {
	if in.Code == "" || in.ValidTo.Before(in.ValidFrom) {
		return nil, domain.ErrInvalidInput
	}
	if in.DiscountType != "percent" && in.DiscountType != "fixed" {
		return nil, domain.ErrInvalidInput
	}
	campaign, err := uc.repo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, domain.ErrNotFound
	}
	if existing, _ := uc.promoRepo.GetByCode(in.Code); existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	code := &entity.PromoCode{
		ID:            uuid.New().String(),
		Code:          in.Code,
		CampaignID:    campaignID,
		DiscountType:  in.DiscountType,
		DiscountValue: in.DiscountValue,
		ValidFrom:     in.ValidFrom,
		ValidTo:       in.ValidTo,
		UsageLimit:    in.UsageLimit,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.promoRepo.Create(code); err != nil {
		return nil, err
	}
	return toPromoCodeResponse(code), nil
}

func toCampaignResponse(c *entity.Campaign) *dto.CampaignResponse {
	return &dto.CampaignResponse{
		ID:          c.ID,
		Name:        c.Name,
		Type:        c.Type,
		BudgetTotal: c.BudgetTotal,
		BudgetSpent: c.BudgetSpent,
		StartDate:   c.StartDate.Format(pricing.DateLayout),
		EndDate:     c.EndDate.Format(pricing.DateLayout),
		Objectives:  c.Objectives,
		Status:      c.Status,
		OwnerID:     c.OwnerID,
		CreatedAt:   c.CreatedAt,
	}
}

func toPromoCodeResponse(p *entity.PromoCode) *dto.PromoCodeResponse {
	return &dto.PromoCodeResponse{
		ID:            p.ID,
		Code:          p.Code,
		CampaignID:    p.CampaignID,
		DiscountType:  p.DiscountType,
		DiscountValue: p.DiscountValue,
		ValidFrom:     p.ValidFrom,
		ValidTo:       p.ValidTo,
		UsageLimit:    p.UsageLimit,
		UsedCount:     p.UsedCount,
	}
}
