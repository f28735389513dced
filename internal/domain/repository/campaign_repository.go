package repository

import "github.com/jhoicas/fieldops-api/internal/domain/entity"

// CampaignRepository define el puerto de persistencia para campañas.
type CampaignRepository interface {
	Create(campaign *entity.Campaign) error
	GetByID(id string) (*entity.Campaign, error)
	List(status string, limit, offset int) ([]*entity.Campaign, error)
	Update(campaign *entity.Campaign) error
}

// PromoCodeRepository define el puerto de persistencia para códigos promocionales.
type PromoCodeRepository interface {
	Create(code *entity.PromoCode) error
	GetByCode(code string) (*entity.PromoCode, error)
	ListByCampaign(campaignID string) ([]*entity.PromoCode, error)
	IncrementUsage(id string) error
}
