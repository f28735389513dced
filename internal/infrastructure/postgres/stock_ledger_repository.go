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

var _ repository.StockLedgerRepository = (*StockLedgerRepo)(nil)

// StockLedgerRepo implementación del ledger sobre PostgreSQL (usable con pool o tx).
// La tabla es append-only: este adaptador no expone UPDATE ni DELETE.
type StockLedgerRepo struct {
	q Querier
}

// NewStockLedgerRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewStockLedgerRepository(q Querier) *StockLedgerRepo {
	return &StockLedgerRepo{q: q}
}

const ledgerColumns = `id, movement_type, agent_id, market_id, product_id, pack_id, quantity, balance_after, source_ref, actor_id, created_at`

// Append persiste una entrada nueva del ledger. No existe camino de edición.
func (r *StockLedgerRepo) Append(entry *entity.StockLedgerEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_ledger (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	marketID := (*string)(nil)
	if entry.MarketID != "" {
		marketID = &entry.MarketID
	}
	sourceRef := (*string)(nil)
	if entry.SourceRef != "" {
		sourceRef = &entry.SourceRef
	}
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.MovementType, entry.AgentID, marketID, entry.ProductID,
		entry.PackID, entry.Quantity, entry.BalanceAfter, sourceRef, entry.ActorID,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID.
func (r *StockLedgerRepo) GetByID(id string) (*entity.StockLedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM stock_ledger WHERE id = $1`
	entry, err := scanLedgerRow(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry: %w", err)
	}
	return entry, nil
}

// ListByScope lista las entradas de un scope en orden cronológico descendente.
func (r *StockLedgerRepo) ListByScope(scope entity.MovementScope, from, to *time.Time, limit, offset int) ([]*entity.StockLedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM stock_ledger WHERE agent_id = $1 AND pack_id = $2`
	args := []any{scope.AgentID, scope.PackID}
	pos := 3
	if scope.MarketID != "" {
		query += fmt.Sprintf(" AND market_id = $%d", pos)
		args = append(args, scope.MarketID)
		pos++
	} else {
		query += " AND market_id IS NULL"
	}
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	return r.list(query, args...)
}

// ListByAgent lista todas las entradas de un agente (todos los packs y mercados).
func (r *StockLedgerRepo) ListByAgent(agentID string, limit, offset int) ([]*entity.StockLedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + ` FROM stock_ledger
		WHERE agent_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	return r.list(query, agentID, limit, offset)
}

func (r *StockLedgerRepo) list(query string, args ...any) ([]*entity.StockLedgerEntry, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLedgerEntry
	for rows.Next() {
		entry, err := scanLedgerRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, entry)
	}
	return list, rows.Err()
}

func scanLedgerRow(row pgx.Row) (*entity.StockLedgerEntry, error) {
	var e entity.StockLedgerEntry
	var marketID, sourceRef *string
	err := row.Scan(
		&e.ID, &e.MovementType, &e.AgentID, &marketID, &e.ProductID,
		&e.PackID, &e.Quantity, &e.BalanceAfter, &sourceRef, &e.ActorID,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if marketID != nil {
		e.MarketID = *marketID
	}
	if sourceRef != nil {
		e.SourceRef = *sourceRef
	}
	return &e, nil
}
