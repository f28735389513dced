package pricing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fieldops-api/internal/application/dto"
	"github.com/jhoicas/fieldops-api/internal/application/pricing"
	"github.com/jhoicas/fieldops-api/internal/domain"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
)

const (
	testPackID   = "00000000-0000-0000-0000-0000000000b1"
	testMarketID = "00000000-0000-0000-0000-0000000000c1"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// fakePriceRepo reproduce la semántica del repositorio real contra Postgres:
// FindEffective elige entre las activas vigentes la de EffectiveFrom más
// reciente (desempate por CreatedAt) y HasActiveOverlap trata EffectiveTo nil
// como vigencia abierta (infinito).
// ──────────────────────────────────────────────────────────────────────────────

type fakePriceRepo struct {
	entries []*entity.PriceListEntry
}

func (r *fakePriceRepo) Create(e *entity.PriceListEntry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *fakePriceRepo) GetByID(id string) (*entity.PriceListEntry, error) {
	for _, e := range r.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakePriceRepo) FindEffective(packID, marketID string, asOf time.Time) (*entity.PriceListEntry, error) {
	var best *entity.PriceListEntry
	for _, e := range r.entries {
		if e.PackID != packID || e.MarketID != marketID || !e.InEffect(asOf) {
			continue
		}
		if best == nil || e.EffectiveFrom.After(best.EffectiveFrom) ||
			(e.EffectiveFrom.Equal(best.EffectiveFrom) && e.CreatedAt.After(best.CreatedAt)) {
			best = e
		}
	}
	return best, nil
}

func (r *fakePriceRepo) HasActiveOverlap(packID, marketID string, from time.Time, to *time.Time) (bool, error) {
	end := time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
	if to != nil {
		end = *to
	}
	for _, e := range r.entries {
		if e.PackID != packID || e.MarketID != marketID || e.Status != entity.PriceStatusActive {
			continue
		}
		eEnd := time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
		if e.EffectiveTo != nil {
			eEnd = *e.EffectiveTo
		}
		if !e.EffectiveFrom.After(end) && !eEnd.Before(from) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePriceRepo) ListByPack(packID string, limit, offset int) ([]*entity.PriceListEntry, error) {
	var out []*entity.PriceListEntry
	for _, e := range r.entries {
		if e.PackID == packID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakePriceRepo) Deactivate(id string) error {
	for _, e := range r.entries {
		if e.ID == id {
			e.Status = entity.PriceStatusInactive
			return nil
		}
	}
	return domain.ErrNotFound
}

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

func date(s string) time.Time {
	t, err := time.Parse(pricing.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(s string) *time.Time {
	t := date(s)
	return &t
}

// newUseCase arma el caso de uso con dos listas ya cargadas:
//   - 100.00 vigente del 2024-01-01 al 2024-06-30
//   - 120.00 vigente desde el 2024-07-01 sin fecha de cierre
func newUseCase() (*pricing.UseCase, *fakePriceRepo) {
	repo := &fakePriceRepo{entries: []*entity.PriceListEntry{
		{
			ID: "price-100", PackID: testPackID, MarketID: testMarketID,
			UnitPrice:     decimal.NewFromInt(100),
			EffectiveFrom: date("2024-01-01"), EffectiveTo: datePtr("2024-06-30"),
			Status: entity.PriceStatusActive, CreatedAt: date("2023-12-15"),
		},
		{
			ID: "price-120", PackID: testPackID, MarketID: testMarketID,
			UnitPrice:     decimal.NewFromInt(120),
			EffectiveFrom: date("2024-07-01"), EffectiveTo: nil,
			Status: entity.PriceStatusActive, CreatedAt: date("2024-06-15"),
		},
	}}
	return pricing.NewUseCase(repo, fakePackRepo{}, fakeMarketRepo{}), repo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de resolución de precios
// ──────────────────────────────────────────────────────────────────────────────

// Dentro de la primera ventana gana la lista de 100.
func TestResolvePrice_VentanaCerradaVigente(t *testing.T) {
	uc, _ := newUseCase()

	entry, err := uc.ResolvePrice(context.Background(), testPackID, testMarketID, date("2024-05-01"))
	require.NoError(t, err)
	assert.True(t, entry.UnitPrice.Equal(decimal.NewFromInt(100)),
		"el 2024-05-01 rige la lista de 100, no la de 120")
}

// Después del cambio de lista gana la de 120 (EffectiveFrom más reciente).
func TestResolvePrice_VentanaAbiertaVigente(t *testing.T) {
	uc, _ := newUseCase()

	entry, err := uc.ResolvePrice(context.Background(), testPackID, testMarketID, date("2024-08-01"))
	require.NoError(t, err)
	assert.True(t, entry.UnitPrice.Equal(decimal.NewFromInt(120)))
}

// El último día de la ventana cerrada sigue vigente (EffectiveTo inclusivo).
func TestResolvePrice_UltimoDiaInclusivo(t *testing.T) {
	uc, _ := newUseCase()

	entry, err := uc.ResolvePrice(context.Background(), testPackID, testMarketID, date("2024-06-30"))
	require.NoError(t, err)
	assert.True(t, entry.UnitPrice.Equal(decimal.NewFromInt(100)))
}

// Antes de cualquier vigencia no hay precio.
func TestResolvePrice_SinPrecioVigente(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.ResolvePrice(context.Background(), testPackID, testMarketID, date("2023-12-31"))
	assert.ErrorIs(t, err, domain.ErrNoPriceAvailable)
}

// Las entradas inactivas no participan en la resolución.
func TestResolvePrice_IgnoraInactivas(t *testing.T) {
	uc, repo := newUseCase()
	require.NoError(t, repo.Deactivate("price-120"))

	_, err := uc.ResolvePrice(context.Background(), testPackID, testMarketID, date("2024-08-01"))
	assert.ErrorIs(t, err, domain.ErrNoPriceAvailable)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de administración de la lista
// ──────────────────────────────────────────────────────────────────────────────

// Una ventana que pisa una vigencia activa del mismo (pack, mercado) se rechaza.
func TestCreatePrice_SolapeRechazado(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.CreatePrice(context.Background(), dto.CreatePriceRequest{
		PackID:        testPackID,
		MarketID:      testMarketID,
		UnitPrice:     decimal.NewFromInt(110),
		EffectiveFrom: "2024-06-01", // cae dentro de [2024-01-01, 2024-06-30]
		EffectiveTo:   "2024-12-31",
	})
	assert.ErrorIs(t, err, domain.ErrPriceOverlap)
}

// Solape contra la vigencia abierta: cualquier fecha futura choca con ella.
func TestCreatePrice_SolapeConVigenciaAbierta(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.CreatePrice(context.Background(), dto.CreatePriceRequest{
		PackID:        testPackID,
		MarketID:      testMarketID,
		UnitPrice:     decimal.NewFromInt(130),
		EffectiveFrom: "2026-01-01",
	})
	assert.ErrorIs(t, err, domain.ErrPriceOverlap)
}

// Ventana disjunta anterior a todas las vigencias: se acepta como activa.
func TestCreatePrice_VentanaDisjuntaAceptada(t *testing.T) {
	uc, repo := newUseCase()

	entry, err := uc.CreatePrice(context.Background(), dto.CreatePriceRequest{
		PackID:        testPackID,
		MarketID:      testMarketID,
		UnitPrice:     decimal.NewFromInt(90),
		EffectiveFrom: "2023-01-01",
		EffectiveTo:   "2023-12-31",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PriceStatusActive, entry.Status)
	assert.Len(t, repo.entries, 3)
}

// Validaciones de entrada: fechas mal formadas o invertidas, precio negativo.
func TestCreatePrice_EntradaInvalida(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	_, err := uc.CreatePrice(ctx, dto.CreatePriceRequest{
		PackID: testPackID, MarketID: testMarketID,
		UnitPrice: decimal.NewFromInt(100), EffectiveFrom: "01/05/2024",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "formato de fecha inválido")

	_, err = uc.CreatePrice(ctx, dto.CreatePriceRequest{
		PackID: testPackID, MarketID: testMarketID,
		UnitPrice: decimal.NewFromInt(100), EffectiveFrom: "2024-10-01", EffectiveTo: "2024-09-01",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "EffectiveTo anterior a EffectiveFrom")

	_, err = uc.CreatePrice(ctx, dto.CreatePriceRequest{
		PackID: testPackID, MarketID: testMarketID,
		UnitPrice: decimal.NewFromInt(-1), EffectiveFrom: "2023-01-01",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio negativo")
}

// Pack o mercado inexistentes.
func TestCreatePrice_ReferenciasInexistentes(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.CreatePrice(context.Background(), dto.CreatePriceRequest{
		PackID: "no-existe", MarketID: testMarketID,
		UnitPrice: decimal.NewFromInt(100), EffectiveFrom: "2023-01-01",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Deactivate marca inactive sin borrar: el histórico es permanente.
func TestDeactivate_ConservaHistorico(t *testing.T) {
	uc, repo := newUseCase()

	require.NoError(t, uc.Deactivate(context.Background(), "price-100"))
	assert.Len(t, repo.entries, 2, "la entrada no se borra")

	entry, err := repo.GetByID("price-100")
	require.NoError(t, err)
	assert.Equal(t, entity.PriceStatusInactive, entry.Status)
}

func TestDeactivate_NoEncontrada(t *testing.T) {
	uc, _ := newUseCase()

	err := uc.Deactivate(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
