package pricing

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/fieldops-api/internal/application/dto"
	"github.com/jhoicas/fieldops-api/internal/domain"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

// Formato de fechas de vigencia en la API.
const DateLayout = "2006-01-02"

// UseCase resuelve precios vigentes y administra la lista de precios.
// La resolución es una lectura pura: "gana el precio aplicable más reciente".
type UseCase struct {
	priceRepo  repository.PriceListRepository
	packRepo   repository.PackSizeRepository
	marketRepo repository.MarketRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(priceRepo repository.PriceListRepository, packRepo repository.PackSizeRepository, marketRepo repository.MarketRepository) *UseCase {
	return &UseCase{priceRepo: priceRepo, packRepo: packRepo, marketRepo: marketRepo}
}

// ResolvePrice devuelve la entrada activa cuya ventana de vigencia cubre asOf
// para el (pack, mercado). Entre varias candidatas gana la de EffectiveFrom
// más reciente (desempate: la creada más recientemente). ErrNoPriceAvailable
// si ninguna aplica; el caller decide si rechaza la venta o pide precio manual.
func (uc *UseCase) ResolvePrice(ctx context.Context, packID, marketID string, asOf time.Time) (*entity.PriceListEntry, error) {
	if packID == "" || marketID == "" {
		return nil, domain.ErrInvalidInput
	}
	entry, err := uc.priceRepo.FindEffective(packID, marketID, asOf)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNoPriceAvailable
	}
	return entry, nil
}

// CreatePrice agrega una entrada a la lista de precios. Rechaza con
// ErrPriceOverlap si la ventana se solapa con otra activa del mismo
// (pack, mercado): las vigencias activas deben ser disjuntas.
func (uc *UseCase) CreatePrice(ctx context.Context, in dto.CreatePriceRequest) (*entity.PriceListEntry, error) {
	if in.UnitPrice.LessThan(decimal.Zero) || in.TaxRate.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	from, err := time.Parse(DateLayout, in.EffectiveFrom)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	var to *time.Time
	if in.EffectiveTo != "" {
		t, err := time.Parse(DateLayout, in.EffectiveTo)
		if err != nil || t.Before(from) {
			return nil, domain.ErrInvalidInput
		}
		to = &t
	}
	pack, err := uc.packRepo.GetByID(in.PackID)
	if err != nil || pack == nil {
		return nil, domain.ErrNotFound
	}
	market, err := uc.marketRepo.GetByID(in.MarketID)
	if err != nil || market == nil {
		return nil, domain.ErrNotFound
	}
	if in.DiscountJSON != nil && !json.Valid(in.DiscountJSON) {
		return nil, domain.ErrInvalidInput
	}

	overlap, err := uc.priceRepo.HasActiveOverlap(in.PackID, in.MarketID, from, to)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, domain.ErrPriceOverlap
	}

	now := time.Now()
	entry := &entity.PriceListEntry{
		ID:             uuid.New().String(),
		PackID:         in.PackID,
		MarketID:       in.MarketID,
		UnitPrice:      in.UnitPrice,
		TaxRate:        in.TaxRate,
		DiscountPolicy: in.DiscountJSON,
		EffectiveFrom:  from,
		EffectiveTo:    to,
		Status:         entity.PriceStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.priceRepo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// ListByPack lista el histórico de precios de un pack.
func (uc *UseCase) ListByPack(ctx context.Context, packID string, limit, offset int) ([]*entity.PriceListEntry, error) {
	return uc.priceRepo.ListByPack(packID, limit, offset)
}

// Deactivate marca una entrada como inactive. Las entradas no se borran:
// el histórico de precios es permanente.
func (uc *UseCase) Deactivate(ctx context.Context, id string) error {
	entry, err := uc.priceRepo.GetByID(id)
	if err != nil {
		return err
	}
	if entry == nil {
		return domain.ErrNotFound
	}
	return uc.priceRepo.Deactivate(id)
}
