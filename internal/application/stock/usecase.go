package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/fieldops-api/internal/application/dto"
	"github.com/jhoicas/fieldops-api/internal/domain"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

// OpsUseCase orquesta los workflows de stock (asignación, traslado, devolución,
// ajuste). Cada workflow, al llegar a su estado "procesado", registra el
// movimiento correspondiente en el ledger dentro de la misma transacción que
// actualiza el registro de negocio.
type OpsUseCase struct {
	txRunner    TxRunner
	ledgerUC    *LedgerUseCase
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	packRepo    repository.PackSizeRepository
	marketRepo  repository.MarketRepository
	allocRepo   repository.AllocationRepository
	transferRepo repository.TransferRepository
	returnRepo  repository.ReturnRepository
	adjustRepo  repository.AdjustmentRepository
	slipPDF     AllocationSlipPDFGenerator
}

// NewOpsUseCase construye el caso de uso.
func NewOpsUseCase(
	txRunner TxRunner,
	ledgerUC *LedgerUseCase,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	packRepo repository.PackSizeRepository,
	marketRepo repository.MarketRepository,
	allocRepo repository.AllocationRepository,
	transferRepo repository.TransferRepository,
	returnRepo repository.ReturnRepository,
	adjustRepo repository.AdjustmentRepository,
	slipPDF AllocationSlipPDFGenerator,
) *OpsUseCase {
	return &OpsUseCase{
		txRunner:    txRunner,
		ledgerUC:    ledgerUC,
		userRepo:    userRepo,
		productRepo: productRepo,
		packRepo:    packRepo,
		marketRepo:  marketRepo,
		allocRepo:   allocRepo,
		transferRepo: transferRepo,
		returnRepo:  returnRepo,
		adjustRepo:  adjustRepo,
		slipPDF:     slipPDF,
	}
}

// ── Asignaciones ──────────────────────────────────────────────────────────────

// CreateAllocation registra una asignación de stock al agente y la procesa de
// inmediato: inserta el registro y el movimiento "allocation" (+qty) en una
// sola transacción.
func (uc *OpsUseCase) CreateAllocation(ctx context.Context, actorID string, in dto.CreateAllocationRequest) (*entity.Allocation, error) {
	if in.SlipNumber == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	agent, pack, err := uc.agentAndPack(in.AgentID, in.PackID)
	if err != nil {
		return nil, err
	}
	if existing, _ := uc.allocRepo.GetBySlipNumber(in.SlipNumber); existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	alloc := &entity.Allocation{
		ID:         uuid.New().String(),
		SlipNumber: in.SlipNumber,
		AgentID:    agent.ID,
		PackID:     pack.ID,
		Quantity:   in.Quantity,
		Notes:      in.Notes,
		CreatedBy:  actorID,
		Processed:  true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = uc.txRunner.RunStockOps(ctx, func(
		ledger repository.StockLedgerRepository,
		balances repository.StockBalanceRepository,
		allocations repository.AllocationRepository,
		_ repository.TransferRepository,
		_ repository.ReturnRepository,
		_ repository.AdjustmentRepository,
	) error {
		if err := allocations.Create(alloc); err != nil {
			return err
		}
		_, err := uc.ledgerUC.RecordMovementInTx(ledger, balances, pack.ProductID, MovementInput{
			Scope:        entity.MovementScope{AgentID: agent.ID, PackID: pack.ID},
			MovementType: entity.MovementAllocation,
			Quantity:     in.Quantity,
			SourceRef:    alloc.ID,
			ActorID:      actorID,
		}, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return alloc, nil
}

// AllocationSlip genera el PDF de la planilla de entrega de la asignación.
func (uc *OpsUseCase) AllocationSlip(ctx context.Context, allocationID string) ([]byte, error) {
	alloc, err := uc.allocRepo.GetByID(allocationID)
	if err != nil {
		return nil, err
	}
	if alloc == nil {
		return nil, domain.ErrNotFound
	}
	agent, err := uc.userRepo.GetByID(alloc.AgentID)
	if err != nil || agent == nil {
		return nil, domain.ErrNotFound
	}
	pack, err := uc.packRepo.GetByID(alloc.PackID)
	if err != nil || pack == nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.productRepo.GetByID(pack.ProductID)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.slipPDF.GenerateSlipPDF(ctx, alloc, agent, pack, product)
}

// ListAllocations lista asignaciones de un agente.
func (uc *OpsUseCase) ListAllocations(ctx context.Context, agentID string, limit, offset int) ([]*entity.Allocation, error) {
	return uc.allocRepo.ListByAgent(agentID, limit, offset)
}

// ── Traslados ─────────────────────────────────────────────────────────────────

// RequestTransfer crea una solicitud de traslado en estado pending.
// El destino es otro agente o un mercado (exactamente uno).
func (uc *OpsUseCase) RequestTransfer(ctx context.Context, fromAgentID string, in dto.CreateTransferRequest) (*entity.Transfer, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if (in.ToAgentID == "") == (in.ToMarketID == "") {
		return nil, domain.ErrInvalidInput
	}
	if in.ToAgentID == fromAgentID {
		return nil, domain.ErrInvalidInput
	}
	_, pack, err := uc.agentAndPack(fromAgentID, in.PackID)
	if err != nil {
		return nil, err
	}
	if in.ToAgentID != "" {
		dest, err := uc.userRepo.GetByID(in.ToAgentID)
		if err != nil || dest == nil || dest.Role != entity.RoleAgent {
			return nil, domain.ErrNotFound
		}
	} else {
		market, err := uc.marketRepo.GetByID(in.ToMarketID)
		if err != nil || market == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	transfer := &entity.Transfer{
		ID:         uuid.New().String(),
		FromAgent:  fromAgentID,
		ToAgent:    in.ToAgentID,
		ToMarketID: in.ToMarketID,
		PackID:     pack.ID,
		Quantity:   in.Quantity,
		Reason:     in.Reason,
		Status:     entity.TransferPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.transferRepo.Create(transfer); err != nil {
		return nil, err
	}
	return transfer, nil
}

// ApproveTransfer aprueba y ejecuta un traslado pendiente: en una sola
// transacción resta del scope origen y suma en el scope destino, dejando dos
// entradas "transfer" en el ledger, y marca la solicitud como completed.
// Un traslado hacia un mercado mueve el stock global del agente a su scope
// de ese mercado (stock en consignación).
func (uc *OpsUseCase) ApproveTransfer(ctx context.Context, approverID, transferID string) error {
	transfer, err := uc.transferRepo.GetByID(transferID)
	if err != nil {
		return err
	}
	if transfer == nil {
		return domain.ErrNotFound
	}
	if transfer.Status != entity.TransferPending {
		return domain.ErrConflict
	}
	pack, err := uc.packRepo.GetByID(transfer.PackID)
	if err != nil || pack == nil {
		return domain.ErrNotFound
	}

	source := entity.MovementScope{AgentID: transfer.FromAgent, PackID: transfer.PackID}
	var dest entity.MovementScope
	if transfer.ToAgent != "" {
		dest = entity.MovementScope{AgentID: transfer.ToAgent, PackID: transfer.PackID}
	} else {
		dest = entity.MovementScope{AgentID: transfer.FromAgent, MarketID: transfer.ToMarketID, PackID: transfer.PackID}
	}

	now := time.Now()
	return uc.txRunner.RunStockOps(ctx, func(
		ledger repository.StockLedgerRepository,
		balances repository.StockBalanceRepository,
		_ repository.AllocationRepository,
		transfers repository.TransferRepository,
		_ repository.ReturnRepository,
		_ repository.AdjustmentRepository,
	) error {
		// Salida en origen; falla con ErrInsufficientStock si no alcanza.
		if _, err := uc.ledgerUC.RecordMovementInTx(ledger, balances, pack.ProductID, MovementInput{
			Scope:        source,
			MovementType: entity.MovementTransfer,
			Quantity:     -transfer.Quantity,
			SourceRef:    transfer.ID,
			ActorID:      approverID,
		}, now); err != nil {
			return err
		}
		// Entrada en destino.
		if _, err := uc.ledgerUC.RecordMovementInTx(ledger, balances, pack.ProductID, MovementInput{
			Scope:        dest,
			MovementType: entity.MovementTransfer,
			Quantity:     transfer.Quantity,
			SourceRef:    transfer.ID,
			ActorID:      approverID,
		}, now); err != nil {
			return err
		}
		return transfers.UpdateStatus(transfer.ID, entity.TransferCompleted, approverID, true)
	})
}

// RejectTransfer rechaza una solicitud pendiente. No toca el ledger.
func (uc *OpsUseCase) RejectTransfer(ctx context.Context, approverID, transferID string) error {
	transfer, err := uc.transferRepo.GetByID(transferID)
	if err != nil {
		return err
	}
	if transfer == nil {
		return domain.ErrNotFound
	}
	if transfer.Status != entity.TransferPending {
		return domain.ErrConflict
	}
	return uc.transferRepo.UpdateStatus(transferID, entity.TransferRejected, approverID, false)
}

// ListTransfers lista solicitudes por estado (vacío = todas) para revisión.
func (uc *OpsUseCase) ListTransfers(ctx context.Context, status string, limit, offset int) ([]*entity.Transfer, error) {
	return uc.transferRepo.ListByStatus(status, limit, offset)
}

// ── Devoluciones ──────────────────────────────────────────────────────────────

// FileReturn presenta una devolución en estado pending.
func (uc *OpsUseCase) FileReturn(ctx context.Context, agentID string, in dto.CreateReturnRequest) (*entity.Return, error) {
	if in.Quantity <= 0 || in.ReasonCode == "" {
		return nil, domain.ErrInvalidInput
	}
	_, pack, err := uc.agentAndPack(agentID, in.PackID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	ret := &entity.Return{
		ID:         uuid.New().String(),
		AgentID:    agentID,
		PackID:     pack.ID,
		Quantity:   in.Quantity,
		ReasonCode: in.ReasonCode,
		Status:     entity.ReturnPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.returnRepo.Create(ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// ReceiveReturn recibe una devolución pendiente: registra el movimiento
// "return" (+qty) en el scope del agente y marca received en la misma transacción.
func (uc *OpsUseCase) ReceiveReturn(ctx context.Context, managerID, returnID string) error {
	ret, err := uc.returnRepo.GetByID(returnID)
	if err != nil {
		return err
	}
	if ret == nil {
		return domain.ErrNotFound
	}
	if ret.Status != entity.ReturnPending {
		return domain.ErrConflict
	}
	pack, err := uc.packRepo.GetByID(ret.PackID)
	if err != nil || pack == nil {
		return domain.ErrNotFound
	}

	now := time.Now()
	return uc.txRunner.RunStockOps(ctx, func(
		ledger repository.StockLedgerRepository,
		balances repository.StockBalanceRepository,
		_ repository.AllocationRepository,
		_ repository.TransferRepository,
		returns repository.ReturnRepository,
		_ repository.AdjustmentRepository,
	) error {
		if _, err := uc.ledgerUC.RecordMovementInTx(ledger, balances, pack.ProductID, MovementInput{
			Scope:        entity.MovementScope{AgentID: ret.AgentID, PackID: ret.PackID},
			MovementType: entity.MovementReturn,
			Quantity:     ret.Quantity,
			SourceRef:    ret.ID,
			ActorID:      managerID,
		}, now); err != nil {
			return err
		}
		return returns.UpdateStatus(ret.ID, entity.ReturnReceived, true)
	})
}

// RejectReturn rechaza una devolución pendiente. No toca el ledger.
func (uc *OpsUseCase) RejectReturn(ctx context.Context, managerID, returnID string) error {
	ret, err := uc.returnRepo.GetByID(returnID)
	if err != nil {
		return err
	}
	if ret == nil {
		return domain.ErrNotFound
	}
	if ret.Status != entity.ReturnPending {
		return domain.ErrConflict
	}
	return uc.returnRepo.UpdateStatus(returnID, entity.ReturnRejected, false)
}

// ListReturns lista devoluciones por estado (vacío = todas).
func (uc *OpsUseCase) ListReturns(ctx context.Context, status string, limit, offset int) ([]*entity.Return, error) {
	return uc.returnRepo.ListByStatus(status, limit, offset)
}

// ── Ajustes ───────────────────────────────────────────────────────────────────

// CreateAdjustment registra un ajuste de auditoría y lo procesa de inmediato.
// Quantity lleva signo; un ajuste negativo que dejaría el saldo bajo cero se
// rechaza con ErrInsufficientStock.
func (uc *OpsUseCase) CreateAdjustment(ctx context.Context, actorID string, in dto.CreateAdjustmentRequest) (*entity.Adjustment, error) {
	if in.Quantity == 0 || in.ReasonCode == "" {
		return nil, domain.ErrInvalidInput
	}
	agent, pack, err := uc.agentAndPack(in.AgentID, in.PackID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	adj := &entity.Adjustment{
		ID:         uuid.New().String(),
		AgentID:    agent.ID,
		PackID:     pack.ID,
		Quantity:   in.Quantity,
		ReasonCode: in.ReasonCode,
		Notes:      in.Notes,
		ActorID:    actorID,
		Processed:  true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = uc.txRunner.RunStockOps(ctx, func(
		ledger repository.StockLedgerRepository,
		balances repository.StockBalanceRepository,
		_ repository.AllocationRepository,
		_ repository.TransferRepository,
		_ repository.ReturnRepository,
		adjustments repository.AdjustmentRepository,
	) error {
		if err := adjustments.Create(adj); err != nil {
			return err
		}
		_, err := uc.ledgerUC.RecordMovementInTx(ledger, balances, pack.ProductID, MovementInput{
			Scope:        entity.MovementScope{AgentID: agent.ID, PackID: pack.ID},
			MovementType: entity.MovementAdjustment,
			Quantity:     in.Quantity,
			SourceRef:    adj.ID,
			ActorID:      actorID,
		}, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return adj, nil
}

// agentAndPack valida que el agente exista con rol agent y el pack esté activo.
func (uc *OpsUseCase) agentAndPack(agentID, packID string) (*entity.User, *entity.PackSize, error) {
	agent, err := uc.userRepo.GetByID(agentID)
	if err != nil || agent == nil {
		return nil, nil, domain.ErrNotFound
	}
	if agent.Role != entity.RoleAgent {
		return nil, nil, domain.ErrInvalidInput
	}
	pack, err := uc.packRepo.GetByID(packID)
	if err != nil || pack == nil {
		return nil, nil, domain.ErrNotFound
	}
	if !pack.IsActive {
		return nil, nil, domain.ErrInvalidInput
	}
	return agent, pack, nil
}
