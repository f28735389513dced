package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

var _ repository.VisitRepository = (*VisitRepo)(nil)

// VisitRepo implementación sobre PostgreSQL (usable con pool o tx).
type VisitRepo struct {
	q Querier
}

// NewVisitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVisitRepository(q Querier) *VisitRepo {
	return &VisitRepo{q: q}
}

const visitColumns = `id, agent_id, market_id, outlet_id, visited_at, geo_lat, geo_long, purpose, notes, created_at, updated_at`

// Create persiste una visita.
func (r *VisitRepo) Create(visit *entity.Visit) error {
	if visit.ID == "" {
		visit.ID = uuid.New().String()
	}
	query := `
		INSERT INTO visits (` + visitColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		visit.ID, visit.AgentID, visit.MarketID, nullable(visit.OutletID),
		visit.VisitedAt, visit.GeoLat, visit.GeoLong, visit.Purpose, visit.Notes,
	)
	if err != nil {
		return fmt.Errorf("create visit: %w", err)
	}
	return nil
}

// GetByID obtiene una visita por ID.
func (r *VisitRepo) GetByID(id string) (*entity.Visit, error) {
	query := `SELECT ` + visitColumns + ` FROM visits WHERE id = $1`
	v, err := scanVisitRow(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get visit: %w", err)
	}
	return v, nil
}

// ListByAgent lista visitas de un agente en un rango de fechas.
func (r *VisitRepo) ListByAgent(agentID string, from, to *time.Time, limit, offset int) ([]*entity.Visit, error) {
	query := `SELECT ` + visitColumns + ` FROM visits WHERE agent_id = $1`
	args := []any{agentID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND visited_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND visited_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY visited_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.list(query, args...)
}

// ListByMarket lista visitas registradas en un mercado.
func (r *VisitRepo) ListByMarket(marketID string, limit, offset int) ([]*entity.Visit, error) {
	query := `
		SELECT ` + visitColumns + ` FROM visits
		WHERE market_id = $1 ORDER BY visited_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, marketID, limit, offset)
}

func (r *VisitRepo) list(query string, args ...any) ([]*entity.Visit, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()
	var list []*entity.Visit
	for rows.Next() {
		v, err := scanVisitRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func scanVisitRow(row pgx.Row) (*entity.Visit, error) {
	var v entity.Visit
	var outletID *string
	err := row.Scan(
		&v.ID, &v.AgentID, &v.MarketID, &outletID, &v.VisitedAt,
		&v.GeoLat, &v.GeoLong, &v.Purpose, &v.Notes, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if outletID != nil {
		v.OutletID = *outletID
	}
	return &v, nil
}
