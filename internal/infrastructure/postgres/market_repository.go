package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fieldops-api/internal/domain"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

var _ repository.MarketRepository = (*MarketRepo)(nil)

// MarketRepo implementación sobre PostgreSQL (usable con pool o tx).
type MarketRepo struct {
	q Querier
}

// NewMarketRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMarketRepository(q Querier) *MarketRepo {
	return &MarketRepo{q: q}
}

const marketColumns = `id, name, region, gps_lat, gps_long, is_active, created_at, updated_at`

// Create persiste un mercado.
func (r *MarketRepo) Create(market *entity.Market) error {
	if market.ID == "" {
		market.ID = uuid.New().String()
	}
	query := `
		INSERT INTO markets (` + marketColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		market.ID, market.Name, market.Region, market.GPSLat, market.GPSLong, market.IsActive,
	)
	if err != nil {
		return fmt.Errorf("create market: %w", err)
	}
	return nil
}

// GetByID obtiene un mercado por ID.
func (r *MarketRepo) GetByID(id string) (*entity.Market, error) {
	query := `SELECT ` + marketColumns + ` FROM markets WHERE id = $1`
	var m entity.Market
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Name, &m.Region, &m.GPSLat, &m.GPSLong, &m.IsActive,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get market: %w", err)
	}
	return &m, nil
}

// List lista mercados, opcionalmente filtrados por región.
func (r *MarketRepo) List(region string, limit, offset int) ([]*entity.Market, error) {
	query := `SELECT ` + marketColumns + ` FROM markets`
	args := []any{}
	pos := 1
	if region != "" {
		query += fmt.Sprintf(" WHERE region = $%d", pos)
		args = append(args, region)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list markets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Market
	for rows.Next() {
		var m entity.Market
		if err := rows.Scan(&m.ID, &m.Name, &m.Region, &m.GPSLat, &m.GPSLong,
			&m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan market: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update actualiza un mercado.
func (r *MarketRepo) Update(market *entity.Market) error {
	query := `
		UPDATE markets SET name = $2, region = $3, gps_lat = $4, gps_long = $5,
			is_active = $6, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		market.ID, market.Name, market.Region, market.GPSLat, market.GPSLong, market.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update market: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ repository.OutletRepository = (*OutletRepo)(nil)

// OutletRepo implementación sobre PostgreSQL (usable con pool o tx).
type OutletRepo struct {
	q Querier
}

// NewOutletRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOutletRepository(q Querier) *OutletRepo {
	return &OutletRepo{q: q}
}

const outletColumns = `id, market_id, name, descriptor, created_at, updated_at`

// Create persiste un punto de venta.
func (r *OutletRepo) Create(outlet *entity.Outlet) error {
	if outlet.ID == "" {
		outlet.ID = uuid.New().String()
	}
	query := `
		INSERT INTO outlets (` + outletColumns + `)
		VALUES ($1, $2, $3, $4, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		outlet.ID, outlet.MarketID, outlet.Name, outlet.Descriptor,
	)
	if err != nil {
		return fmt.Errorf("create outlet: %w", err)
	}
	return nil
}

// GetByID obtiene un punto de venta por ID.
func (r *OutletRepo) GetByID(id string) (*entity.Outlet, error) {
	query := `SELECT ` + outletColumns + ` FROM outlets WHERE id = $1`
	var o entity.Outlet
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.MarketID, &o.Name, &o.Descriptor, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get outlet: %w", err)
	}
	return &o, nil
}

// ListByMarket lista los puntos de venta de un mercado.
func (r *OutletRepo) ListByMarket(marketID string) ([]*entity.Outlet, error) {
	query := `SELECT ` + outletColumns + ` FROM outlets WHERE market_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, marketID)
	if err != nil {
		return nil, fmt.Errorf("list outlets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Outlet
	for rows.Next() {
		var o entity.Outlet
		if err := rows.Scan(&o.ID, &o.MarketID, &o.Name, &o.Descriptor,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan outlet: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// Update actualiza un punto de venta.
func (r *OutletRepo) Update(outlet *entity.Outlet) error {
	query := `UPDATE outlets SET name = $2, descriptor = $3, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, outlet.ID, outlet.Name, outlet.Descriptor)
	if err != nil {
		return fmt.Errorf("update outlet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un punto de venta.
func (r *OutletRepo) Delete(id string) error {
	query := `DELETE FROM outlets WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("delete outlet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
