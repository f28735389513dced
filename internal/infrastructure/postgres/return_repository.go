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

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementación sobre PostgreSQL (usable con pool o tx).
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

const returnColumns = `id, agent_id, pack_id, quantity, reason_code, status, processed, created_at, updated_at`

// Create persiste una devolución.
func (r *ReturnRepo) Create(ret *entity.Return) error {
	if ret.ID == "" {
		ret.ID = uuid.New().String()
	}
	query := `
		INSERT INTO returns (` + returnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		ret.ID, ret.AgentID, ret.PackID, ret.Quantity, ret.ReasonCode, ret.Status, ret.Processed,
	)
	if err != nil {
		return fmt.Errorf("create return: %w", err)
	}
	return nil
}

// GetByID obtiene una devolución por ID.
func (r *ReturnRepo) GetByID(id string) (*entity.Return, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE id = $1`
	var ret entity.Return
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&ret.ID, &ret.AgentID, &ret.PackID, &ret.Quantity, &ret.ReasonCode,
		&ret.Status, &ret.Processed, &ret.CreatedAt, &ret.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get return: %w", err)
	}
	return &ret, nil
}

// ListByStatus lista devoluciones por estado, más antiguas primero. Estado
// vacío = todas.
func (r *ReturnRepo) ListByStatus(status string, limit, offset int) ([]*entity.Return, error) {
	if status == "" {
		query := `
			SELECT ` + returnColumns + ` FROM returns
			ORDER BY created_at ASC LIMIT $1 OFFSET $2`
		return r.list(query, limit, offset)
	}
	query := `
		SELECT ` + returnColumns + ` FROM returns
		WHERE status = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`
	return r.list(query, status, limit, offset)
}

// ListByAgent lista devoluciones de un agente.
func (r *ReturnRepo) ListByAgent(agentID string, limit, offset int) ([]*entity.Return, error) {
	query := `
		SELECT ` + returnColumns + ` FROM returns
		WHERE agent_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, agentID, limit, offset)
}

// UpdateStatus actualiza estado y marca de procesado.
func (r *ReturnRepo) UpdateStatus(id, status string, processed bool) error {
	query := `UPDATE returns SET status = $2, processed = $3, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status, processed)
	if err != nil {
		return fmt.Errorf("update return status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ReturnRepo) list(query string, args ...any) ([]*entity.Return, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()
	var list []*entity.Return
	for rows.Next() {
		var ret entity.Return
		if err := rows.Scan(&ret.ID, &ret.AgentID, &ret.PackID, &ret.Quantity, &ret.ReasonCode,
			&ret.Status, &ret.Processed, &ret.CreatedAt, &ret.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		list = append(list, &ret)
	}
	return list, rows.Err()
}
