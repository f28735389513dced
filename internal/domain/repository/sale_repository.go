package repository

import (
	"time"

	"github.com/jhoicas/fieldops-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	ListByAgent(agentID string, from, to *time.Time, limit, offset int) ([]*entity.Sale, error)
	ListByMarket(marketID string, from, to *time.Time, limit, offset int) ([]*entity.Sale, error)
}

// PaymentRepository define el puerto de persistencia para pagos.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	ListBySale(saleID string) ([]*entity.Payment, error)
	UpdateStatus(id, status, transactionRef string, processedAt *time.Time) error
}
