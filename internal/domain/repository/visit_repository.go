package repository

import (
	"time"

	"github.com/jhoicas/fieldops-api/internal/domain/entity"
)

// VisitRepository define el puerto de persistencia para visitas.
type VisitRepository interface {
	Create(visit *entity.Visit) error
	GetByID(id string) (*entity.Visit, error)
	ListByAgent(agentID string, from, to *time.Time, limit, offset int) ([]*entity.Visit, error)
	ListByMarket(marketID string, limit, offset int) ([]*entity.Visit, error)
}
