package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fieldops-api/internal/domain"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

var _ repository.PriceListRepository = (*PriceListRepo)(nil)

// PriceListRepo implementación sobre PostgreSQL (usable con pool o tx).
type PriceListRepo struct {
	q Querier
}

// NewPriceListRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceListRepository(q Querier) *PriceListRepo {
	return &PriceListRepo{q: q}
}

const priceColumns = `id, pack_id, market_id, unit_price, tax_rate, discount_policy, effective_from, effective_to, status, created_at, updated_at`

// Create persiste una entrada de precio.
func (r *PriceListRepo) Create(entry *entity.PriceListEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO price_list_entries (` + priceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`
	var policy any
	if len(entry.DiscountPolicy) > 0 {
		policy = entry.DiscountPolicy
	}
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.PackID, entry.MarketID, entry.UnitPrice, entry.TaxRate,
		policy, entry.EffectiveFrom, entry.EffectiveTo, entry.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create price entry: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID.
func (r *PriceListRepo) GetByID(id string) (*entity.PriceListEntry, error) {
	query := `SELECT ` + priceColumns + ` FROM price_list_entries WHERE id = $1`
	entry, err := scanPriceRow(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get price entry: %w", err)
	}
	return entry, nil
}

// FindEffective devuelve la entrada activa vigente en asOf para (pack, mercado).
// Preferencia: effective_from más reciente, desempate por created_at más reciente.
// effective_to NULL cuenta como ventana abierta; los límites son inclusivos.
func (r *PriceListRepo) FindEffective(packID, marketID string, asOf time.Time) (*entity.PriceListEntry, error) {
	query := `
		SELECT ` + priceColumns + ` FROM price_list_entries
		WHERE pack_id = $1 AND market_id = $2 AND status = 'active'
		  AND effective_from <= $3
		  AND (effective_to IS NULL OR effective_to >= $3)
		ORDER BY effective_from DESC, created_at DESC
		LIMIT 1`
	entry, err := scanPriceRow(r.q.QueryRow(context.Background(), query, packID, marketID, asOf))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find effective price: %w", err)
	}
	return entry, nil
}

// HasActiveOverlap indica si alguna entrada activa de (pack, mercado) se
// solapa con la ventana [from, to]. to nil = abierta hacia el futuro.
func (r *PriceListRepo) HasActiveOverlap(packID, marketID string, from time.Time, to *time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM price_list_entries
			WHERE pack_id = $1 AND market_id = $2 AND status = 'active'
			  AND effective_from <= COALESCE($4, 'infinity'::timestamptz)
			  AND COALESCE(effective_to, 'infinity'::timestamptz) >= $3
		)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, packID, marketID, from, to).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check price overlap: %w", err)
	}
	return exists, nil
}

// ListByPack lista entradas de un pack (todos los mercados), más recientes primero.
func (r *PriceListRepo) ListByPack(packID string, limit, offset int) ([]*entity.PriceListEntry, error) {
	query := `
		SELECT ` + priceColumns + ` FROM price_list_entries
		WHERE pack_id = $1 ORDER BY effective_from DESC, created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, packID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list price entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.PriceListEntry
	for rows.Next() {
		entry, err := scanPriceRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan price entry: %w", err)
		}
		list = append(list, entry)
	}
	return list, rows.Err()
}

// Deactivate cambia el estado a inactive. Las entradas nunca se borran.
func (r *PriceListRepo) Deactivate(id string) error {
	query := `UPDATE price_list_entries SET status = 'inactive', updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("deactivate price entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPriceRow(row pgx.Row) (*entity.PriceListEntry, error) {
	var p entity.PriceListEntry
	err := row.Scan(
		&p.ID, &p.PackID, &p.MarketID, &p.UnitPrice, &p.TaxRate, &p.DiscountPolicy,
		&p.EffectiveFrom, &p.EffectiveTo, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
