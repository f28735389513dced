package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/fieldops-api/internal/domain"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

// LedgerUseCase registra movimientos de stock de forma transaccional
// (allocation, transfer, sale, return, adjustment) con bloqueo de fila
// sobre el saldo del scope y Commit/Rollback.
//
// El ledger es append-only; el saldo materializado por scope se actualiza bajo
// SELECT FOR UPDATE en la misma transacción, de modo que dos movimientos
// concurrentes del mismo scope nunca leen el mismo saldo previo y los
// BalanceAfter forman una suma corrida sin huecos. Movimientos de scopes
// distintos no se bloquean entre sí.
type LedgerUseCase struct {
	txRunner    TxRunner
	userRepo    repository.UserRepository
	packRepo    repository.PackSizeRepository
	marketRepo  repository.MarketRepository
	ledgerRepo  repository.StockLedgerRepository
	balanceRepo repository.StockBalanceRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	userRepo repository.UserRepository,
	packRepo repository.PackSizeRepository,
	marketRepo repository.MarketRepository,
	ledgerRepo repository.StockLedgerRepository,
	balanceRepo repository.StockBalanceRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:    txRunner,
		userRepo:    userRepo,
		packRepo:    packRepo,
		marketRepo:  marketRepo,
		ledgerRepo:  ledgerRepo,
		balanceRepo: balanceRepo,
	}
}

// MovementInput entrada para registrar un movimiento de stock.
// Quantity lleva signo: positivo entrada, negativo salida. Nunca cero.
type MovementInput struct {
	Scope        entity.MovementScope
	MovementType string
	Quantity     int64
	SourceRef    string // ID del registro de negocio origen
	ActorID      string
}

// RecordMovement valida la entrada, verifica que agente/pack/mercado existan,
// e inicia una transacción que bloquea el saldo del scope, calcula el nuevo
// saldo y agrega la entrada inmutable al ledger. Un movimiento de salida que
// dejaría el saldo negativo se rechaza con ErrInsufficientStock sin escribir nada.
func (uc *LedgerUseCase) RecordMovement(ctx context.Context, input MovementInput) (*entity.StockLedgerEntry, error) {
	pack, err := uc.validate(input)
	if err != nil {
		return nil, err
	}

	var entry *entity.StockLedgerEntry
	err = uc.txRunner.Run(ctx, func(
		ledger repository.StockLedgerRepository,
		balances repository.StockBalanceRepository,
	) error {
		entry, err = uc.RecordMovementInTx(ledger, balances, pack.ProductID, input, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// RecordMovementInTx aplica el movimiento usando los repositorios
// proporcionados (misma transacción del caller). Lo usan la venta y los
// workflows de stock para que el registro de negocio y su movimiento queden
// en una sola transacción. El caller es responsable de validar agente/pack/mercado.
func (uc *LedgerUseCase) RecordMovementInTx(
	ledger repository.StockLedgerRepository,
	balances repository.StockBalanceRepository,
	productID string,
	input MovementInput,
	now time.Time,
) (*entity.StockLedgerEntry, error) {
	if input.Quantity == 0 || !entity.ValidMovementType(input.MovementType) {
		return nil, domain.ErrInvalidInput
	}

	// Siembra y bloquea la fila de saldo del scope (SELECT FOR UPDATE):
	// serializa los movimientos concurrentes del mismo scope.
	bal, err := balances.GetForUpdate(input.Scope)
	if err != nil {
		return nil, err
	}

	newBalance := bal.Quantity + input.Quantity
	if newBalance < 0 {
		return nil, domain.ErrInsufficientStock
	}

	bal.Quantity = newBalance
	bal.UpdatedAt = now
	if err := balances.Upsert(bal); err != nil {
		return nil, err
	}

	entry := &entity.StockLedgerEntry{
		ID:           uuid.New().String(),
		MovementType: input.MovementType,
		AgentID:      input.Scope.AgentID,
		MarketID:     input.Scope.MarketID,
		ProductID:    productID,
		PackID:       input.Scope.PackID,
		Quantity:     input.Quantity,
		BalanceAfter: newBalance,
		SourceRef:    input.SourceRef,
		ActorID:      input.ActorID,
		CreatedAt:    now,
	}
	if err := ledger.Append(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// GetCurrentBalance devuelve el saldo actual del scope, 0 si nunca tuvo movimientos.
// Lectura pura, sin bloqueos.
func (uc *LedgerUseCase) GetCurrentBalance(ctx context.Context, scope entity.MovementScope) (int64, error) {
	bal, err := uc.balanceRepo.Get(scope)
	if err != nil {
		return 0, err
	}
	if bal == nil {
		return 0, nil
	}
	return bal.Quantity, nil
}

// ListLedger devuelve el histórico de movimientos del scope para auditoría.
func (uc *LedgerUseCase) ListLedger(ctx context.Context, scope entity.MovementScope, from, to *time.Time, limit, offset int) ([]*entity.StockLedgerEntry, error) {
	return uc.ledgerRepo.ListByScope(scope, from, to, limit, offset)
}

// AgentStock devuelve todos los saldos del agente (snapshot para dashboard).
func (uc *LedgerUseCase) AgentStock(ctx context.Context, agentID string) ([]*entity.StockBalance, error) {
	return uc.balanceRepo.ListByAgent(agentID)
}

// validate verifica tipo, cantidad y existencia de agente, pack y mercado.
// Devuelve el pack para denormalizar ProductID en la entrada del ledger.
func (uc *LedgerUseCase) validate(input MovementInput) (*entity.PackSize, error) {
	if input.Quantity == 0 || !entity.ValidMovementType(input.MovementType) {
		return nil, domain.ErrInvalidInput
	}
	if input.Scope.AgentID == "" || input.Scope.PackID == "" {
		return nil, domain.ErrInvalidInput
	}

	agent, err := uc.userRepo.GetByID(input.Scope.AgentID)
	if err != nil || agent == nil {
		return nil, domain.ErrNotFound
	}
	if agent.Role != entity.RoleAgent {
		return nil, domain.ErrInvalidInput
	}
	pack, err := uc.packRepo.GetByID(input.Scope.PackID)
	if err != nil || pack == nil {
		return nil, domain.ErrNotFound
	}
	if input.Scope.MarketID != "" {
		market, err := uc.marketRepo.GetByID(input.Scope.MarketID)
		if err != nil || market == nil {
			return nil, domain.ErrNotFound
		}
	}
	return pack, nil
}
