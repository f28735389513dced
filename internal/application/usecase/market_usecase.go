package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/fieldops-api/internal/application/dto"
	"github.com/jhoicas/fieldops-api/internal/domain"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

// MarketUseCase casos de uso CRUD para mercados y puntos de venta.
type MarketUseCase struct {
	repo       repository.MarketRepository
	outletRepo repository.OutletRepository
}

// NewMarketUseCase construye el caso de uso.
func NewMarketUseCase(repo repository.MarketRepository, outletRepo repository.OutletRepository) *MarketUseCase {
	return &MarketUseCase{repo: repo, outletRepo: outletRepo}
}

// Create crea un mercado. (name, region) es único.
func (uc *MarketUseCase) Create(in dto.CreateMarketRequest) (*dto.MarketResponse, error) {
	if in.Name == "" || in.Region == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	market := &entity.Market{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Region:    in.Region,
		GPSLat:    in.GPSLat,
		GPSLong:   in.GPSLong,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(market); err != nil {
		return nil, err
	}
	return toMarketResponse(market), nil
}

// GetByID obtiene un mercado.
func (uc *MarketUseCase) GetByID(id string) (*dto.MarketResponse, error) {
	market, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if market == nil {
		return nil, nil
	}
	return toMarketResponse(market), nil
}

// List lista mercados, opcionalmente filtrados por región.
func (uc *MarketUseCase) List(region string, limit, offset int) ([]*dto.MarketResponse, error) {
	markets, err := uc.repo.List(region, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MarketResponse, 0, len(markets))
	for _, m := range markets {
		out = append(out, toMarketResponse(m))
	}
	return out, nil
}

// AddOutlet agrega un punto de venta al mercado.
func (uc *MarketUseCase) AddOutlet(marketID string, in dto.CreateOutletRequest) (*dto.OutletResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	market, err := uc.repo.GetByID(marketID)
	if err != nil {
		return nil, err
	}
	if market == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	outlet := &entity.Outlet{
		ID:         uuid.New().String(),
		MarketID:   marketID,
		Name:       in.Name,
		Descriptor: in.Descriptor,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.outletRepo.Create(outlet); err != nil {
		return nil, err
	}
	return toOutletResponse(outlet), nil
}

// ListOutlets lista los puntos de venta de un mercado.
func (uc *MarketUseCase) ListOutlets(marketID string) ([]*dto.OutletResponse, error) {
	outlets, err := uc.outletRepo.ListByMarket(marketID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OutletResponse, 0, len(outlets))
	for _, o := range outlets {
		out = append(out, toOutletResponse(o))
	}
	return out, nil
}

func toMarketResponse(m *entity.Market) *dto.MarketResponse {
	return &dto.MarketResponse{
		ID:        m.ID,
		Name:      m.Name,
		Region:    m.Region,
		GPSLat:    m.GPSLat,
		GPSLong:   m.GPSLong,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

func toOutletResponse(o *entity.Outlet) *dto.OutletResponse {
	return &dto.OutletResponse{
		ID:         o.ID,
		MarketID:   o.MarketID,
		Name:       o.Name,
		Descriptor: o.Descriptor,
		CreatedAt:  o.CreatedAt,
	}
}
