package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/fieldops-api/internal/application/dto"
	"github.com/jhoicas/fieldops-api/internal/domain"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

// VisitUseCase registra y consulta visitas de agentes a mercados.
type VisitUseCase struct {
	repo       repository.VisitRepository
	marketRepo repository.MarketRepository
	outletRepo repository.OutletRepository
}

// NewVisitUseCase construye el caso de uso.
func NewVisitUseCase(repo repository.VisitRepository, marketRepo repository.MarketRepository, outletRepo repository.OutletRepository) *VisitUseCase {
	return &VisitUseCase{repo: repo, marketRepo: marketRepo, outletRepo: outletRepo}
}

// Log registra una visita del agente. El outlet, si viene, debe pertenecer al mercado.
func (uc *VisitUseCase) Log(agentID string, in dto.LogVisitRequest) (*dto.VisitResponse, error) {
	if in.MarketID == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.Purpose {
	case "", entity.VisitCheckup, entity.VisitDelivery, entity.VisitPromo:
	default:
		return nil, domain.ErrInvalidInput
	}
	market, err := uc.marketRepo.GetByID(in.MarketID)
	if err != nil || market == nil {
		return nil, domain.ErrNotFound
	}
	if in.OutletID != "" {
		outlet, err := uc.outletRepo.GetByID(in.OutletID)
		if err != nil || outlet == nil {
			return nil, domain.ErrNotFound
		}
		if outlet.MarketID != in.MarketID {
			return nil, domain.ErrInvalidInput
		}
	}
	now := time.Now()
	visitedAt := now
	if in.VisitedAt != nil {
		visitedAt = *in.VisitedAt
	}
	visit := &entity.Visit{
		ID:        uuid.New().String(),
		AgentID:   agentID,
		MarketID:  in.MarketID,
		OutletID:  in.OutletID,
		VisitedAt: visitedAt,
		GeoLat:    in.GeoLat,
		GeoLong:   in.GeoLong,
		Purpose:   in.Purpose,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(visit); err != nil {
		return nil, err
	}
	return toVisitResponse(visit), nil
}

// ListByAgent lista las visitas de un agente en un rango de fechas.
func (uc *VisitUseCase) ListByAgent(agentID string, from, to *time.Time, limit, offset int) ([]*dto.VisitResponse, error) {
	visits, err := uc.repo.ListByAgent(agentID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.VisitResponse, 0, len(visits))
	for _, v := range visits {
		out = append(out, toVisitResponse(v))
	}
	return out, nil
}

func toVisitResponse(v *entity.Visit) *dto.VisitResponse {
	return &dto.VisitResponse{
		ID:        v.ID,
		AgentID:   v.AgentID,
		MarketID:  v.MarketID,
		OutletID:  v.OutletID,
		VisitedAt: v.VisitedAt,
		GeoLat:    v.GeoLat,
		GeoLong:   v.GeoLong,
		Purpose:   v.Purpose,
		Notes:     v.Notes,
		CreatedAt: v.CreatedAt,
	}
}
