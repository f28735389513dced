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

var _ repository.AllocationRepository = (*AllocationRepo)(nil)

// AllocationRepo implementación sobre PostgreSQL (usable con pool o tx).
type AllocationRepo struct {
	q Querier
}

// NewAllocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAllocationRepository(q Querier) *AllocationRepo {
	return &AllocationRepo{q: q}
}

const allocationColumns = `id, slip_number, agent_id, pack_id, quantity, notes, created_by, processed, created_at, updated_at`

// Create persiste una asignación. El número de planilla es único.
func (r *AllocationRepo) Create(allocation *entity.Allocation) error {
	if allocation.ID == "" {
		allocation.ID = uuid.New().String()
	}
	query := `
		INSERT INTO allocations (` + allocationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		allocation.ID, allocation.SlipNumber, allocation.AgentID, allocation.PackID,
		allocation.Quantity, allocation.Notes, allocation.CreatedBy, allocation.Processed,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create allocation: %w", err)
	}
	return nil
}

// GetByID obtiene una asignación por ID.
func (r *AllocationRepo) GetByID(id string) (*entity.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations WHERE id = $1`
	return r.getOne(query, id)
}

// GetBySlipNumber obtiene una asignación por número de planilla.
func (r *AllocationRepo) GetBySlipNumber(slipNumber string) (*entity.Allocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM allocations WHERE slip_number = $1`
	return r.getOne(query, slipNumber)
}

// ListByAgent lista asignaciones de un agente, más recientes primero.
func (r *AllocationRepo) ListByAgent(agentID string, limit, offset int) ([]*entity.Allocation, error) {
	query := `
		SELECT ` + allocationColumns + ` FROM allocations
		WHERE agent_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, agentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Allocation
	for rows.Next() {
		var a entity.Allocation
		if err := rows.Scan(&a.ID, &a.SlipNumber, &a.AgentID, &a.PackID, &a.Quantity,
			&a.Notes, &a.CreatedBy, &a.Processed, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// MarkProcessed marca la asignación como procesada.
func (r *AllocationRepo) MarkProcessed(id string) error {
	query := `UPDATE allocations SET processed = true, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("mark allocation processed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AllocationRepo) getOne(query string, arg any) (*entity.Allocation, error) {
	var a entity.Allocation
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&a.ID, &a.SlipNumber, &a.AgentID, &a.PackID, &a.Quantity,
		&a.Notes, &a.CreatedBy, &a.Processed, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get allocation: %w", err)
	}
	return &a, nil
}
