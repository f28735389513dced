package repository

import "github.com/jhoicas/fieldops-api/internal/domain/entity"

// AllocationRepository define el puerto de persistencia para asignaciones.
type AllocationRepository interface {
	Create(allocation *entity.Allocation) error
	GetByID(id string) (*entity.Allocation, error)
	GetBySlipNumber(slipNumber string) (*entity.Allocation, error)
	ListByAgent(agentID string, limit, offset int) ([]*entity.Allocation, error)
	MarkProcessed(id string) error
}

// TransferRepository define el puerto de persistencia para traslados.
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	ListByStatus(status string, limit, offset int) ([]*entity.Transfer, error)
	ListByAgent(agentID string, limit, offset int) ([]*entity.Transfer, error)
	UpdateStatus(id, status, approverID string, processed bool) error
}

// ReturnRepository define el puerto de persistencia para devoluciones.
type ReturnRepository interface {
	Create(ret *entity.Return) error
	GetByID(id string) (*entity.Return, error)
	ListByStatus(status string, limit, offset int) ([]*entity.Return, error)
	ListByAgent(agentID string, limit, offset int) ([]*entity.Return, error)
	UpdateStatus(id, status string, processed bool) error
}

// AdjustmentRepository define el puerto de persistencia para ajustes.
type AdjustmentRepository interface {
	Create(adjustment *entity.Adjustment) error
	GetByID(id string) (*entity.Adjustment, error)
	ListByAgent(agentID string, limit, offset int) ([]*entity.Adjustment, error)
	MarkProcessed(id string) error
}
