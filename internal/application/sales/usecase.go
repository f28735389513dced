package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/fieldops-api/internal/application/dto"
	"github.com/jhoicas/fieldops-api/internal/application/pricing"
	"github.com/jhoicas/fieldops-api/internal/application/stock"
	"github.com/jhoicas/fieldops-api/internal/domain"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

// UseCase registra ventas: resuelve el precio vigente, calcula el revenue y
// descuenta el stock del agente vía ledger, todo en una sola transacción.
type UseCase struct {
	txRunner    TxRunner
	pricingUC   *pricing.UseCase
	ledgerUC    *stock.LedgerUseCase
	userRepo    repository.UserRepository
	packRepo    repository.PackSizeRepository
	marketRepo  repository.MarketRepository
	saleRepo    repository.SaleRepository
	paymentRepo repository.PaymentRepository
	promoRepo   repository.PromoCodeRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	pricingUC *pricing.UseCase,
	ledgerUC *stock.LedgerUseCase,
	userRepo repository.UserRepository,
	packRepo repository.PackSizeRepository,
	marketRepo repository.MarketRepository,
	saleRepo repository.SaleRepository,
	paymentRepo repository.PaymentRepository,
	promoRepo repository.PromoCodeRepository,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		pricingUC:   pricingUC,
		ledgerUC:    ledgerUC,
		userRepo:    userRepo,
		packRepo:    packRepo,
		marketRepo:  marketRepo,
		saleRepo:    saleRepo,
		paymentRepo: paymentRepo,
		promoRepo:   promoRepo,
	}
}

// RecordSale registra una venta del agente. Si el request no trae precio
// unitario, se resuelve desde la lista vigente para (pack, mercado) en la
// fecha de la venta; si no hay precio vigente la venta se rechaza con
// ErrNoPriceAvailable. El movimiento "sale" (-qty) sobre el scope
// (agente, mercado, pack) y la fila de la venta se confirman en la misma
// transacción; stock insuficiente revierte todo.
func (uc *UseCase) RecordSale(ctx context.Context, agentID string, in dto.RecordSaleRequest) (*entity.Sale, error) {
	if in.Quantity < 1 || in.MarketID == "" || in.PackID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.DiscountAmount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	agent, err := uc.userRepo.GetByID(agentID)
	if err != nil || agent == nil || agent.Role != entity.RoleAgent {
		return nil, domain.ErrNotFound
	}
	pack, err := uc.packRepo.GetByID(in.PackID)
	if err != nil || pack == nil || !pack.IsActive {
		return nil, domain.ErrNotFound
	}
	market, err := uc.marketRepo.GetByID(in.MarketID)
	if err != nil || market == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()

	var unitPrice decimal.Decimal
	if in.UnitPrice != nil {
		if in.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		unitPrice = *in.UnitPrice
	} else {
		price, err := uc.pricingUC.ResolvePrice(ctx, in.PackID, in.MarketID, now)
		if err != nil {
			return nil, err
		}
		unitPrice = price.UnitPrice
	}

	var promoID string
	if in.PromoCode != "" {
		promo, err := uc.promoRepo.GetByCode(in.PromoCode)
		if err != nil || promo == nil {
			return nil, domain.ErrNotFound
		}
		if now.Before(promo.ValidFrom) || now.After(promo.ValidTo) {
			return nil, domain.ErrInvalidInput
		}
		if promo.UsageLimit != nil && promo.UsedCount >= *promo.UsageLimit {
			return nil, domain.ErrConflict
		}
		promoID = promo.ID
	}

	sale := &entity.Sale{
		ID:             uuid.New().String(),
		AgentID:        agentID,
		MarketID:       in.MarketID,
		VisitID:        in.VisitID,
		PackID:         in.PackID,
		Quantity:       in.Quantity,
		UnitPrice:      unitPrice,
		DiscountAmount: in.DiscountAmount,
		PromoCodeID:    promoID,
		CampaignID:     in.CampaignID,
		SoldAt:         now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	sale.ComputeRevenue()

	err = uc.txRunner.RunSale(ctx, func(
		salesRepo repository.SaleRepository,
		ledger repository.StockLedgerRepository,
		balances repository.StockBalanceRepository,
	) error {
		entry, err := uc.ledgerUC.RecordMovementInTx(ledger, balances, pack.ProductID, stock.MovementInput{
			Scope:        entity.MovementScope{AgentID: agentID, MarketID: in.MarketID, PackID: in.PackID},
			MovementType: entity.MovementSale,
			Quantity:     -in.Quantity,
			SourceRef:    sale.ID,
			ActorID:      agentID,
		}, now)
		if err != nil {
			return err
		}
		sale.LedgerRef = entry.ID
		return salesRepo.Create(sale)
	})
	if err != nil {
		return nil, err
	}

	if promoID != "" {
		// Fuera de la tx de la venta: perder un incremento de uso no
		// compromete la contabilidad del stock.
		_ = uc.promoRepo.IncrementUsage(promoID)
	}
	return sale, nil
}

// GetByID obtiene una venta.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

// ListByAgent lista ventas de un agente en un rango de fechas.
func (uc *UseCase) ListByAgent(ctx context.Context, agentID string, from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	return uc.saleRepo.ListByAgent(agentID, from, to, limit, offset)
}

// AddPayment registra un pago (pending) contra una venta.
func (uc *UseCase) AddPayment(ctx context.Context, saleID string, in dto.CreatePaymentRequest) (*entity.Payment, error) {
	if !entity.ValidPaymentMethod(in.Method) || in.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	payment := &entity.Payment{
		ID:             uuid.New().String(),
		SaleID:         saleID,
		Method:         in.Method,
		Amount:         in.Amount,
		Status:         entity.PaymentPending,
		TransactionRef: in.TransactionRef,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.paymentRepo.Create(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// UpdatePaymentStatus transiciona un pago: pending -> completed|failed,
// completed -> refunded. Cualquier otra transición es ErrConflict.
func (uc *UseCase) UpdatePaymentStatus(ctx context.Context, paymentID string, in dto.UpdatePaymentStatusRequest) error {
	payment, err := uc.paymentRepo.GetByID(paymentID)
	if err != nil {
		return err
	}
	if payment == nil {
		return domain.ErrNotFound
	}
	valid := (payment.Status == entity.PaymentPending && (in.Status == entity.PaymentCompleted || in.Status == entity.PaymentFailed)) ||
		(payment.Status == entity.PaymentCompleted && in.Status == entity.PaymentRefunded)
	if !valid {
		return domain.ErrConflict
	}
	var processedAt *time.Time
	if in.Status == entity.PaymentCompleted {
		now := time.Now()
		processedAt = &now
	}
	return uc.paymentRepo.UpdateStatus(paymentID, in.Status, in.TransactionRef, processedAt)
}

// ListPayments lista los pagos de una venta.
func (uc *UseCase) ListPayments(ctx context.Context, saleID string) ([]*entity.Payment, error) {
	return uc.paymentRepo.ListBySale(saleID)
}
