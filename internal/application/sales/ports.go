package sales

import (
	"context"

	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

// TxRunner ejecuta el registro de una venta dentro de una transacción:
// la fila de la venta y su movimiento de ledger se confirman juntos o ninguno.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		sales repository.SaleRepository,
		ledger repository.StockLedgerRepository,
		balances repository.StockBalanceRepository,
	) error) error
}
