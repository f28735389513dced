package sales_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fieldops-api/internal/application/dto"
	"github.com/jhoicas/fieldops-api/internal/application/pricing"
	"github.com/jhoicas/fieldops-api/internal/application/sales"
	"github.com/jhoicas/fieldops-api/internal/application/stock"
	"github.com/jhoicas/fieldops-api/internal/domain"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

const (
	testAgentID  = "00000000-0000-0000-0000-0000000000a1"
	testPackID   = "00000000-0000-0000-0000-0000000000b1"
	testMarketID = "00000000-0000-0000-0000-0000000000c1"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct{}

func (fakeUserRepo) Create(u *entity.User) error { return nil }
func (fakeUserRepo) GetByID(id string) (*entity.User, error) {
	if id == testAgentID {
		return &entity.User{ID: id, Username: "amina", Role: entity.RoleAgent}, nil
	}
	return nil, nil
}
func (fakeUserRepo) FindByUsername(username string) (*entity.User, error) { return nil, nil }
func (fakeUserRepo) List(role string, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}
func (fakeUserRepo) Update(u *entity.User) error { return nil }
func (fakeUserRepo) SoftDelete(id string) error  { return nil }

type fakePackRepo struct{}

func (fakePackRepo) Create(p *entity.PackSize) error { return nil }
func (fakePackRepo) GetByID(id string) (*entity.PackSize, error) {
	if id == testPackID {
		return &entity.PackSize{ID: id, ProductID: "prod-1", Label: "50g", IsActive: true}, nil
	}
	return nil, nil
}
func (fakePackRepo) ListByProduct(productID string) ([]*entity.PackSize, error) { return nil, nil }
func (fakePackRepo) Update(p *entity.PackSize) error                           { return nil }

type fakeMarketRepo struct{}

func (fakeMarketRepo) Create(m *entity.Market) error { return nil }
func (fakeMarketRepo) GetByID(id string) (*entity.Market, error) {
	if id == testMarketID {
		return &entity.Market{ID: id, Name: "Gikomba", IsActive: true}, nil
	}
	return nil, nil
}
func (fakeMarketRepo) List(region string, limit, offset int) ([]*entity.Market, error) {
	return nil, nil
}
func (fakeMarketRepo) Update(m *entity.Market) error { return nil }

type fakePriceRepo struct {
	entries []*entity.PriceListEntry
}

func (r *fakePriceRepo) Create(e *entity.PriceListEntry) error { return nil }
func (r *fakePriceRepo) GetByID(id string) (*entity.PriceListEntry, error) {
	return nil, nil
}
func (r *fakePriceRepo) FindEffective(packID, marketID string, asOf time.Time) (*entity.PriceListEntry, error) {
	for _, e := range r.entries {
		if e.PackID == packID && e.MarketID == marketID && e.InEffect(asOf) {
			return e, nil
		}
	}
	return nil, nil
}
func (r *fakePriceRepo) HasActiveOverlap(packID, marketID string, from time.Time, to *time.Time) (bool, error) {
	return false, nil
}
func (r *fakePriceRepo) ListByPack(packID string, limit, offset int) ([]*entity.PriceListEntry, error) {
	return nil, nil
}
func (r *fakePriceRepo) Deactivate(id string) error { return nil }

type fakeLedgerRepo struct {
	entries []*entity.StockLedgerEntry
}

func (r *fakeLedgerRepo) Append(e *entity.StockLedgerEntry) error {
	r.entries = append(r.entries, e)
	return nil
}
func (r *fakeLedgerRepo) GetByID(id string) (*entity.StockLedgerEntry, error) { return nil, nil }
func (r *fakeLedgerRepo) ListByScope(scope entity.MovementScope, from, to *time.Time, limit, offset int) ([]*entity.StockLedgerEntry, error) {
	return nil, nil
}
func (r *fakeLedgerRepo) ListByAgent(agentID string, limit, offset int) ([]*entity.StockLedgerEntry, error) {
	return nil, nil
}

type fakeBalanceRepo struct {
	balances map[entity.MovementScope]int64
}

func (r *fakeBalanceRepo) Get(scope entity.MovementScope) (*entity.StockBalance, error) {
	qty, ok := r.balances[scope]
	if !ok {
		return nil, nil
	}
	return &entity.StockBalance{AgentID: scope.AgentID, PackID: scope.PackID, MarketID: scope.MarketID, Quantity: qty}, nil
}
func (r *fakeBalanceRepo) GetForUpdate(scope entity.MovementScope) (*entity.StockBalance, error) {
	if _, ok := r.balances[scope]; !ok {
		r.balances[scope] = 0
	}
	return &entity.StockBalance{AgentID: scope.AgentID, PackID: scope.PackID, MarketID: scope.MarketID, Quantity: r.balances[scope]}, nil
}
func (r *fakeBalanceRepo) Upsert(b *entity.StockBalance) error {
	r.balances[entity.MovementScope{AgentID: b.AgentID, PackID: b.PackID, MarketID: b.MarketID}] = b.Quantity
	return nil
}
func (r *fakeBalanceRepo) ListByAgent(agentID string) ([]*entity.StockBalance, error) {
	return nil, nil
}

type fakeSaleRepo struct {
	sales map[string]*entity.Sale
}

func (r *fakeSaleRepo) Create(s *entity.Sale) error { r.sales[s.ID] = s; return nil }
func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	return r.sales[id], nil
}
func (r *fakeSaleRepo) ListByAgent(agentID string, from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	return nil, nil
}
func (r *fakeSaleRepo) ListByMarket(marketID string, from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	return nil, nil
}

type fakePaymentRepo struct {
	payments map[string]*entity.Payment
}

func (r *fakePaymentRepo) Create(p *entity.Payment) error { r.payments[p.ID] = p; return nil }
func (r *fakePaymentRepo) GetByID(id string) (*entity.Payment, error) {
	return r.payments[id], nil
}
func (r *fakePaymentRepo) ListBySale(saleID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.payments {
		if p.SaleID == saleID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *fakePaymentRepo) UpdateStatus(id, status, transactionRef string, processedAt *time.Time) error {
	p, ok := r.payments[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	if transactionRef != "" {
		p.TransactionRef = transactionRef
	}
	p.ProcessedAt = processedAt
	return nil
}

type fakePromoRepo struct {
	codes      map[string]*entity.PromoCode
	increments []string
}

func (r *fakePromoRepo) Create(c *entity.PromoCode) error { r.codes[c.Code] = c; return nil }
func (r *fakePromoRepo) GetByCode(code string) (*entity.PromoCode, error) {
	return r.codes[code], nil
}
func (r *fakePromoRepo) ListByCampaign(campaignID string) ([]*entity.PromoCode, error) {
	return nil, nil
}
func (r *fakePromoRepo) IncrementUsage(id string) error {
	r.increments = append(r.increments, id)
	for _, c := range r.codes {
		if c.ID == id {
			c.UsedCount++
		}
	}
	return nil
}

// fakeTxRunner implementa el TxRunner de ventas y el de stock con un mutex
// global que hace las veces del bloqueo de fila. Si fn falla, los cambios de
// la venta se descartan como haría el Rollback real.
type fakeTxRunner struct {
	mu       sync.Mutex
	ledger   *fakeLedgerRepo
	balances *fakeBalanceRepo
	sales    *fakeSaleRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(repository.StockLedgerRepository, repository.StockBalanceRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.ledger, r.balances)
}

func (r *fakeTxRunner) RunStockOps(ctx context.Context, fn func(
	repository.StockLedgerRepository,
	repository.StockBalanceRepository,
	repository.AllocationRepository,
	repository.TransferRepository,
	repository.ReturnRepository,
	repository.AdjustmentRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.ledger, r.balances, nil, nil, nil, nil)
}

func (r *fakeTxRunner) RunSale(ctx context.Context, fn func(
	repository.SaleRepository,
	repository.StockLedgerRepository,
	repository.StockBalanceRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.sales, r.ledger, r.balances)
}

type fixture struct {
	uc       *sales.UseCase
	sales    *fakeSaleRepo
	payments *fakePaymentRepo
	promos   *fakePromoRepo
	ledger   *fakeLedgerRepo
	balances *fakeBalanceRepo
}

// newFixture deja al agente con 50 unidades del pack en el mercado y una
// lista de precios vigente de 100.00 con vigencia abierta.
func newFixture() *fixture {
	ledger := &fakeLedgerRepo{}
	balances := &fakeBalanceRepo{balances: map[entity.MovementScope]int64{
		{AgentID: testAgentID, PackID: testPackID, MarketID: testMarketID}: 50,
	}}
	saleRepo := &fakeSaleRepo{sales: map[string]*entity.Sale{}}
	paymentRepo := &fakePaymentRepo{payments: map[string]*entity.Payment{}}
	promoRepo := &fakePromoRepo{codes: map[string]*entity.PromoCode{}}
	priceRepo := &fakePriceRepo{entries: []*entity.PriceListEntry{{
		ID: "price-100", PackID: testPackID, MarketID: testMarketID,
		UnitPrice:     decimal.NewFromInt(100),
		EffectiveFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:        entity.PriceStatusActive,
	}}}

	tx := &fakeTxRunner{ledger: ledger, balances: balances, sales: saleRepo}
	pricingUC := pricing.NewUseCase(priceRepo, fakePackRepo{}, fakeMarketRepo{})
	ledgerUC := stock.NewLedgerUseCase(tx, fakeUserRepo{}, fakePackRepo{}, fakeMarketRepo{}, ledger, balances)
	uc := sales.NewUseCase(tx, pricingUC, ledgerUC, fakeUserRepo{}, fakePackRepo{}, fakeMarketRepo{}, saleRepo, paymentRepo, promoRepo)
	return &fixture{uc: uc, sales: saleRepo, payments: paymentRepo, promos: promoRepo, ledger: ledger, balances: balances}
}

func saleRequest(qty int64) dto.RecordSaleRequest {
	return dto.RecordSaleRequest{
		MarketID:       testMarketID,
		PackID:         testPackID,
		Quantity:       qty,
		DiscountAmount: decimal.Zero,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Sin precio en el request, el precio se congela desde la lista vigente y el
// revenue es qty * precio - descuento.
func TestRecordSale_PrecioDesdeListaVigente(t *testing.T) {
	f := newFixture()

	sale, err := f.uc.RecordSale(context.Background(), testAgentID, saleRequest(3))
	require.NoError(t, err)

	assert.True(t, sale.UnitPrice.Equal(decimal.NewFromInt(100)))
	assert.True(t, sale.Revenue.Equal(decimal.NewFromInt(300)), "revenue = 3 * 100")
	assert.NotEmpty(t, sale.LedgerRef, "la venta referencia su movimiento de ledger")
}

// El descuento manual reduce el revenue.
func TestRecordSale_DescuentoAplicado(t *testing.T) {
	f := newFixture()

	in := saleRequest(2)
	in.DiscountAmount = decimal.NewFromInt(25)
	sale, err := f.uc.RecordSale(context.Background(), testAgentID, in)
	require.NoError(t, err)

	assert.True(t, sale.Revenue.Equal(decimal.NewFromInt(175)), "revenue = 2*100 - 25")
}

// El precio manual del agente tiene prioridad sobre la lista.
func TestRecordSale_PrecioManualPrevalece(t *testing.T) {
	f := newFixture()

	manual := decimal.NewFromInt(80)
	in := saleRequest(1)
	in.UnitPrice = &manual
	sale, err := f.uc.RecordSale(context.Background(), testAgentID, in)
	require.NoError(t, err)

	assert.True(t, sale.UnitPrice.Equal(manual))
	assert.True(t, sale.Revenue.Equal(manual))
}

// La venta descuenta el stock del scope (agente, mercado, pack) vía ledger.
func TestRecordSale_DescuentaStock(t *testing.T) {
	f := newFixture()

	_, err := f.uc.RecordSale(context.Background(), testAgentID, saleRequest(20))
	require.NoError(t, err)

	scope := entity.MovementScope{AgentID: testAgentID, PackID: testPackID, MarketID: testMarketID}
	assert.Equal(t, int64(30), f.balances.balances[scope])
	require.Len(t, f.ledger.entries, 1)
	assert.Equal(t, entity.MovementSale, f.ledger.entries[0].MovementType)
	assert.Equal(t, int64(-20), f.ledger.entries[0].Quantity)
}

// Stock insuficiente revierte todo: ni venta, ni movimiento, ni cambio de saldo.
func TestRecordSale_StockInsuficienteRevierteTodo(t *testing.T) {
	f := newFixture()

	_, err := f.uc.RecordSale(context.Background(), testAgentID, saleRequest(51))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	scope := entity.MovementScope{AgentID: testAgentID, PackID: testPackID, MarketID: testMarketID}
	assert.Equal(t, int64(50), f.balances.balances[scope], "el saldo no cambia")
	assert.Empty(t, f.ledger.entries, "no queda movimiento en el ledger")
	assert.Empty(t, f.sales.sales, "la venta no se persiste")
}

// Sin lista vigente y sin precio manual la venta se rechaza: el caller decide
// si pide al agente digitar el precio.
func TestRecordSale_SinPrecioVigenteRechazada(t *testing.T) {
	ledger := &fakeLedgerRepo{}
	balances := &fakeBalanceRepo{balances: map[entity.MovementScope]int64{
		{AgentID: testAgentID, PackID: testPackID, MarketID: testMarketID}: 50,
	}}
	saleRepo := &fakeSaleRepo{sales: map[string]*entity.Sale{}}
	tx := &fakeTxRunner{ledger: ledger, balances: balances, sales: saleRepo}
	pricingUC := pricing.NewUseCase(&fakePriceRepo{}, fakePackRepo{}, fakeMarketRepo{}) // lista vacía
	ledgerUC := stock.NewLedgerUseCase(tx, fakeUserRepo{}, fakePackRepo{}, fakeMarketRepo{}, ledger, balances)
	uc := sales.NewUseCase(tx, pricingUC, ledgerUC, fakeUserRepo{}, fakePackRepo{}, fakeMarketRepo{}, saleRepo,
		&fakePaymentRepo{payments: map[string]*entity.Payment{}}, &fakePromoRepo{codes: map[string]*entity.PromoCode{}})

	_, err := uc.RecordSale(context.Background(), testAgentID, saleRequest(1))
	assert.ErrorIs(t, err, domain.ErrNoPriceAvailable)
	assert.Empty(t, saleRepo.sales)
}

// Código promocional vigente: se asocia a la venta y cuenta un uso.
func TestRecordSale_PromoCodeVigente(t *testing.T) {
	f := newFixture()
	now := time.Now()
	f.promos.codes["SOKO10"] = &entity.PromoCode{
		ID: "promo-1", Code: "SOKO10", CampaignID: "camp-1",
		ValidFrom: now.Add(-time.Hour), ValidTo: now.Add(time.Hour),
	}

	in := saleRequest(1)
	in.PromoCode = "SOKO10"
	sale, err := f.uc.RecordSale(context.Background(), testAgentID, in)
	require.NoError(t, err)

	assert.Equal(t, "promo-1", sale.PromoCodeID)
	assert.Equal(t, []string{"promo-1"}, f.promos.increments)
}

// Código vencido o con límite de usos agotado.
func TestRecordSale_PromoCodeInvalido(t *testing.T) {
	f := newFixture()
	now := time.Now()
	limit := int64(5)
	f.promos.codes["VIEJO"] = &entity.PromoCode{
		ID: "promo-2", Code: "VIEJO",
		ValidFrom: now.Add(-48 * time.Hour), ValidTo: now.Add(-24 * time.Hour),
	}
	f.promos.codes["AGOTADO"] = &entity.PromoCode{
		ID: "promo-3", Code: "AGOTADO",
		ValidFrom: now.Add(-time.Hour), ValidTo: now.Add(time.Hour),
		UsageLimit: &limit, UsedCount: 5,
	}

	in := saleRequest(1)
	in.PromoCode = "VIEJO"
	_, err := f.uc.RecordSale(context.Background(), testAgentID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "código fuera de vigencia")

	in.PromoCode = "AGOTADO"
	_, err = f.uc.RecordSale(context.Background(), testAgentID, in)
	assert.ErrorIs(t, err, domain.ErrConflict, "límite de usos agotado")
}

// Validaciones básicas de entrada.
func TestRecordSale_EntradaInvalida(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.RecordSale(ctx, testAgentID, saleRequest(0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in := saleRequest(1)
	in.DiscountAmount = decimal.NewFromInt(-1)
	_, err = f.uc.RecordSale(ctx, testAgentID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.RecordSale(ctx, "no-existe", saleRequest(1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pagos
// ──────────────────────────────────────────────────────────────────────────────

func TestAddPayment_NaceEnPending(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	sale, err := f.uc.RecordSale(ctx, testAgentID, saleRequest(1))
	require.NoError(t, err)

	payment, err := f.uc.AddPayment(ctx, sale.ID, dto.CreatePaymentRequest{
		Method: entity.PaymentMpesa,
		Amount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPending, payment.Status)
	assert.Nil(t, payment.ProcessedAt)
}

func TestAddPayment_MetodoOMontoInvalido(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	sale, err := f.uc.RecordSale(ctx, testAgentID, saleRequest(1))
	require.NoError(t, err)

	_, err = f.uc.AddPayment(ctx, sale.ID, dto.CreatePaymentRequest{Method: "trueque", Amount: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.AddPayment(ctx, sale.ID, dto.CreatePaymentRequest{Method: entity.PaymentCash, Amount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// pending -> completed deja ProcessedAt; completed -> refunded es válido;
// cualquier otra transición es ErrConflict.
func TestUpdatePaymentStatus_Transiciones(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	sale, err := f.uc.RecordSale(ctx, testAgentID, saleRequest(1))
	require.NoError(t, err)
	payment, err := f.uc.AddPayment(ctx, sale.ID, dto.CreatePaymentRequest{
		Method: entity.PaymentMpesa, Amount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	err = f.uc.UpdatePaymentStatus(ctx, payment.ID, dto.UpdatePaymentStatusRequest{
		Status: entity.PaymentCompleted, TransactionRef: "MP-123",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentCompleted, f.payments.payments[payment.ID].Status)
	assert.NotNil(t, f.payments.payments[payment.ID].ProcessedAt)

	// refunded solo desde completed
	err = f.uc.UpdatePaymentStatus(ctx, payment.ID, dto.UpdatePaymentStatusRequest{Status: entity.PaymentRefunded})
	require.NoError(t, err)

	// refunded es terminal
	err = f.uc.UpdatePaymentStatus(ctx, payment.ID, dto.UpdatePaymentStatusRequest{Status: entity.PaymentCompleted})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdatePaymentStatus_NoEncontrado(t *testing.T) {
	f := newFixture()

	err := f.uc.UpdatePaymentStatus(context.Background(), "no-existe", dto.UpdatePaymentStatusRequest{Status: entity.PaymentCompleted})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
