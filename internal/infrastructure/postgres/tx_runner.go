package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/fieldops-api/internal/application/sales"
	"github.com/jhoicas/fieldops-api/internal/application/stock"
	"github.com/jhoicas/fieldops-api/internal/domain"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

// Ensure TxRunner implements stock.TxRunner and sales.TxRunner.
var _ stock.TxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	ledgerRepo repository.StockLedgerRepository,
	balanceRepo repository.StockBalanceRepository,
) error) error {
	return r.inTx(ctx, func(tx Querier) error {
		return fn(NewStockLedgerRepository(tx), NewStockBalanceRepository(tx))
	})
}

// RunStockOps inicia una transacción con los repos del ledger y de operaciones de stock.
func (r *TxRunner) RunStockOps(ctx context.Context, fn func(
	ledgerRepo repository.StockLedgerRepository,
	balanceRepo repository.StockBalanceRepository,
	allocationRepo repository.AllocationRepository,
	transferRepo repository.TransferRepository,
	returnRepo repository.ReturnRepository,
	adjustmentRepo repository.AdjustmentRepository,
) error) error {
	return r.inTx(ctx, func(tx Querier) error {
		return fn(
			NewStockLedgerRepository(tx),
			NewStockBalanceRepository(tx),
			NewAllocationRepository(tx),
			NewTransferRepository(tx),
			NewReturnRepository(tx),
			NewAdjustmentRepository(tx),
		)
	})
}

// RunSale inicia una transacción con repos de ventas y de ledger (para RecordSale).
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	ledgerRepo repository.StockLedgerRepository,
	balanceRepo repository.StockBalanceRepository,
) error) error {
	return r.inTx(ctx, func(tx Querier) error {
		return fn(NewSaleRepository(tx), NewStockLedgerRepository(tx), NewStockBalanceRepository(tx))
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		if isConcurrencyFailure(err) {
			return domain.ErrConcurrencyConflict
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isConcurrencyFailure(err) {
			return domain.ErrConcurrencyConflict
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
