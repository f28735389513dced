package stock_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fieldops-api/internal/application/stock"
	"github.com/jhoicas/fieldops-api/internal/domain"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// El fakeTxRunner serializa las "transacciones" con un mutex global: es el
// equivalente en memoria del SELECT FOR UPDATE sobre la fila de saldo, de modo
// que el test de concurrencia ejercita la misma garantía que da Postgres.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testAgentID  = "00000000-0000-0000-0000-0000000000a1"
	testPackID   = "00000000-0000-0000-0000-0000000000b1"
	testMarketID = "00000000-0000-0000-0000-0000000000c1"
	testAdminID  = "00000000-0000-0000-0000-0000000000d1"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}
func (r *fakeUserRepo) FindByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) List(role string, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) Update(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) SoftDelete(id string) error  { delete(r.users, id); return nil }

type fakePackRepo struct {
	packs map[string]*entity.PackSize
}

func (r *fakePackRepo) Create(p *entity.PackSize) error { r.packs[p.ID] = p; return nil }
func (r *fakePackRepo) GetByID(id string) (*entity.PackSize, error) {
	return r.packs[id], nil
}
func (r *fakePackRepo) ListByProduct(productID string) ([]*entity.PackSize, error) {
	return nil, nil
}
func (r *fakePackRepo) Update(p *entity.PackSize) error { r.packs[p.ID] = p; return nil }

type fakeMarketRepo struct {
	markets map[string]*entity.Market
}

func (r *fakeMarketRepo) Create(m *entity.Market) error { r.markets[m.ID] = m; return nil }
func (r *fakeMarketRepo) GetByID(id string) (*entity.Market, error) {
	return r.markets[id], nil
}
func (r *fakeMarketRepo) List(region string, limit, offset int) ([]*entity.Market, error) {
	return nil, nil
}
func (r *fakeMarketRepo) Update(m *entity.Market) error { r.markets[m.ID] = m; return nil }

type fakeLedgerRepo struct {
	entries []*entity.StockLedgerEntry
}

func (r *fakeLedgerRepo) Append(e *entity.StockLedgerEntry) error {
	r.entries = append(r.entries, e)
	return nil
}
func (r *fakeLedgerRepo) GetByID(id string) (*entity.StockLedgerEntry, error) {
	for _, e := range r.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}
func (r *fakeLedgerRepo) ListByScope(scope entity.MovementScope, from, to *time.Time, limit, offset int) ([]*entity.StockLedgerEntry, error) {
	var out []*entity.StockLedgerEntry
	for _, e := range r.entries {
		if e.Scope() == scope {
			out = append(out, e)
		}
	}
	return out, nil
}
func (r *fakeLedgerRepo) ListByAgent(agentID string, limit, offset int) ([]*entity.StockLedgerEntry, error) {
	var out []*entity.StockLedgerEntry
	for _, e := range r.entries {
		if e.AgentID == agentID {
			out = append(out, e)
		}
	}
	return out, nil
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
	// Siembra la fila como hace el INSERT ... ON CONFLICT DO NOTHING real.
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
	var out []*entity.StockBalance
	for scope, qty := range r.balances {
		if scope.AgentID == agentID && qty != 0 {
			out = append(out, &entity.StockBalance{AgentID: scope.AgentID, PackID: scope.PackID, MarketID: scope.MarketID, Quantity: qty})
		}
	}
	return out, nil
}

type fakeTxRunner struct {
	mu       sync.Mutex
	ledger   *fakeLedgerRepo
	balances *fakeBalanceRepo
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

type fixture struct {
	uc       *stock.LedgerUseCase
	ledger   *fakeLedgerRepo
	balances *fakeBalanceRepo
}

func newFixture() *fixture {
	ledger := &fakeLedgerRepo{}
	balances := &fakeBalanceRepo{balances: map[entity.MovementScope]int64{}}
	users := &fakeUserRepo{users: map[string]*entity.User{
		testAgentID: {ID: testAgentID, Username: "amina", Role: entity.RoleAgent},
		testAdminID: {ID: testAdminID, Username: "jefe", Role: entity.RoleAdmin},
	}}
	packs := &fakePackRepo{packs: map[string]*entity.PackSize{
		testPackID: {ID: testPackID, ProductID: "prod-1", Label: "50g", IsActive: true},
	}}
	markets := &fakeMarketRepo{markets: map[string]*entity.Market{
		testMarketID: {ID: testMarketID, Name: "Gikomba", IsActive: true},
	}}
	tx := &fakeTxRunner{ledger: ledger, balances: balances}
	uc := stock.NewLedgerUseCase(tx, users, packs, markets, ledger, balances)
	return &fixture{uc: uc, ledger: ledger, balances: balances}
}

func scope() entity.MovementScope {
	return entity.MovementScope{AgentID: testAgentID, PackID: testPackID, MarketID: testMarketID}
}

func movement(qty int64, typ string) stock.MovementInput {
	return stock.MovementInput{
		Scope:        scope(),
		MovementType: typ,
		Quantity:     qty,
		SourceRef:    "ref-1",
		ActorID:      testAdminID,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Cada movimiento debe encadenar su BalanceAfter con el anterior del mismo
// scope: BalanceAfter(N) = BalanceAfter(N-1) + Quantity, empezando desde cero.
func TestRecordMovement_SumaCorridaSinHuecos(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	e1, err := f.uc.RecordMovement(ctx, movement(100, entity.MovementAllocation))
	require.NoError(t, err)
	assert.Equal(t, int64(100), e1.BalanceAfter)

	e2, err := f.uc.RecordMovement(ctx, movement(-30, entity.MovementSale))
	require.NoError(t, err)
	assert.Equal(t, int64(70), e2.BalanceAfter)

	e3, err := f.uc.RecordMovement(ctx, movement(5, entity.MovementReturn))
	require.NoError(t, err)
	assert.Equal(t, int64(75), e3.BalanceAfter)

	bal, err := f.uc.GetCurrentBalance(ctx, scope())
	require.NoError(t, err)
	assert.Equal(t, int64(75), bal, "el saldo materializado debe coincidir con el último BalanceAfter")

	// ProductID se denormaliza desde el pack en cada entrada.
	for _, e := range f.ledger.entries {
		assert.Equal(t, "prod-1", e.ProductID)
	}
}

// Cantidad cero nunca es un movimiento válido.
func TestRecordMovement_CantidadCeroRechazada(t *testing.T) {
	f := newFixture()

	_, err := f.uc.RecordMovement(context.Background(), movement(0, entity.MovementAdjustment))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.ledger.entries, "no debe escribirse ninguna entrada")
}

// Tipo de movimiento desconocido rechazado antes de tocar la BD.
func TestRecordMovement_TipoDesconocidoRechazado(t *testing.T) {
	f := newFixture()

	_, err := f.uc.RecordMovement(context.Background(), movement(10, "teleport"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Una salida que dejaría el saldo negativo se rechaza con ErrInsufficientStock
// y no escribe nada: ni entrada en el ledger ni cambio de saldo.
func TestRecordMovement_SobregiroRechazadoSinEscribir(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.RecordMovement(ctx, movement(20, entity.MovementAllocation))
	require.NoError(t, err)

	_, err = f.uc.RecordMovement(ctx, movement(-21, entity.MovementSale))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	bal, err := f.uc.GetCurrentBalance(ctx, scope())
	require.NoError(t, err)
	assert.Equal(t, int64(20), bal, "el saldo no debe cambiar tras el rechazo")
	assert.Len(t, f.ledger.entries, 1, "solo la asignación inicial debe quedar en el ledger")
}

// Vaciar el saldo exacto a cero sí es válido.
func TestRecordMovement_SalidaHastaCeroPermitida(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.RecordMovement(ctx, movement(15, entity.MovementAllocation))
	require.NoError(t, err)

	e, err := f.uc.RecordMovement(ctx, movement(-15, entity.MovementSale))
	require.NoError(t, err)
	assert.Equal(t, int64(0), e.BalanceAfter)
}

// Agente inexistente o usuario que no es agente.
func TestRecordMovement_AgenteInvalido(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	in := movement(10, entity.MovementAllocation)
	in.Scope.AgentID = "no-existe"
	_, err := f.uc.RecordMovement(ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	in = movement(10, entity.MovementAllocation)
	in.Scope.AgentID = testAdminID // admin no lleva stock
	_, err = f.uc.RecordMovement(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Scopes distintos llevan saldos independientes: mismo agente y pack pero
// mercados diferentes no comparten stock.
func TestRecordMovement_ScopesIndependientes(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	global := movement(40, entity.MovementAllocation)
	global.Scope.MarketID = "" // stock global del agente

	_, err := f.uc.RecordMovement(ctx, global)
	require.NoError(t, err)
	_, err = f.uc.RecordMovement(ctx, movement(10, entity.MovementAllocation))
	require.NoError(t, err)

	balGlobal, err := f.uc.GetCurrentBalance(ctx, entity.MovementScope{AgentID: testAgentID, PackID: testPackID})
	require.NoError(t, err)
	balMarket, err := f.uc.GetCurrentBalance(ctx, scope())
	require.NoError(t, err)
	assert.Equal(t, int64(40), balGlobal)
	assert.Equal(t, int64(10), balMarket)
}

// Bajo concurrencia los movimientos del mismo scope se serializan: el saldo
// final es la suma exacta y la cadena de BalanceAfter no tiene huecos ni
// duplicados.
func TestRecordMovement_ConcurrenciaSinHuecos(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.RecordMovement(ctx, movement(1000, entity.MovementAllocation))
	require.NoError(t, err)

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := f.uc.RecordMovement(ctx, movement(-10, entity.MovementSale))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	bal, err := f.uc.GetCurrentBalance(ctx, scope())
	require.NoError(t, err)
	assert.Equal(t, int64(1000-workers*10), bal)

	// Reconstruir la suma corrida desde el ledger y verificar el encadenado.
	entries, err := f.uc.ListLedger(ctx, scope(), nil, nil, 100, 0)
	require.NoError(t, err)
	require.Len(t, entries, workers+1)

	seen := map[int64]bool{}
	var running int64
	for _, e := range entries {
		running += e.Quantity
		seen[e.BalanceAfter] = true
	}
	assert.Equal(t, bal, running, "la suma de cantidades debe igualar el saldo final")
	assert.Len(t, seen, workers+1, "cada BalanceAfter debe ser único en la cadena")
}

// El saldo de un scope sin movimientos es cero, no un error.
func TestGetCurrentBalance_ScopeSinMovimientos(t *testing.T) {
	f := newFixture()

	bal, err := f.uc.GetCurrentBalance(context.Background(), scope())
	require.NoError(t, err)
	assert.Equal(t, int64(0), bal)
}
