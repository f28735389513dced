package repository

import (
	"time"

	"github.com/jhoicas/fieldops-api/internal/domain/entity"
)

// StockLedgerRepository define el puerto de persistencia del ledger de stock.
// El ledger es append-only: no existen Update ni Delete.
type StockLedgerRepository interface {
	Append(entry *entity.StockLedgerEntry) error
	GetByID(id string) (*entity.StockLedgerEntry, error)
	ListByScope(scope entity.MovementScope, from, to *time.Time, limit, offset int) ([]*entity.StockLedgerEntry, error)
	ListByAgent(agentID string, limit, offset int) ([]*entity.StockLedgerEntry, error)
}

// StockBalanceRepository define el puerto del saldo materializado por scope.
type StockBalanceRepository interface {
	Get(scope entity.MovementScope) (*entity.StockBalance, error)
	// GetForUpdate siembra la fila del scope si no existe y la bloquea
	// (SELECT FOR UPDATE). Serializa los movimientos concurrentes del scope,
	// incluido el primero.
	GetForUpdate(scope entity.MovementScope) (*entity.StockBalance, error)
	Upsert(balance *entity.StockBalance) error
	ListByAgent(agentID string) ([]*entity.StockBalance, error)
}
