package stock

import (
	"context"

	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el ledger de stock:
// bloquear saldo, insertar entrada y actualizar saldo suceden todos o ninguno.
type TxRunner interface {
	// Run para registrar un movimiento suelto del ledger.
	Run(ctx context.Context, fn func(
		ledger repository.StockLedgerRepository,
		balances repository.StockBalanceRepository,
	) error) error

	// RunStockOps incluye los repositorios de los registros de negocio
	// (asignaciones, traslados, devoluciones, ajustes) para que el registro
	// origen y su movimiento queden en la misma transacción.
	RunStockOps(ctx context.Context, fn func(
		ledger repository.StockLedgerRepository,
		balances repository.StockBalanceRepository,
		allocations repository.AllocationRepository,
		transfers repository.TransferRepository,
		returns repository.ReturnRepository,
		adjustments repository.AdjustmentRepository,
	) error) error
}

// AllocationSlipPDFGenerator genera la planilla de entrega de una asignación
// (copia física que firma el agente al recibir el stock).
type AllocationSlipPDFGenerator interface {
	GenerateSlipPDF(ctx context.Context,
		allocation *entity.Allocation,
		agent *entity.User,
		pack *entity.PackSize,
		product *entity.Product,
	) ([]byte, error)
}
