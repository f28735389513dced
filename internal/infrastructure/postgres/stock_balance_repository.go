package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

var _ repository.StockBalanceRepository = (*StockBalanceRepo)(nil)

// StockBalanceRepo implementación del saldo materializado sobre PostgreSQL.
// market_id usa '' como centinela en la PK: NULL no participa en claves únicas.
type StockBalanceRepo struct {
	q Querier
}

// NewStockBalanceRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewStockBalanceRepository(q Querier) *StockBalanceRepo {
	return &StockBalanceRepo{q: q}
}

// Get obtiene el saldo actual de un scope. Devuelve saldo cero si no hay fila.
func (r *StockBalanceRepo) Get(scope entity.MovementScope) (*entity.StockBalance, error) {
	query := `
		SELECT agent_id, pack_id, market_id, quantity, updated_at
		FROM stock_balances WHERE agent_id = $1 AND pack_id = $2 AND market_id = $3`
	var b entity.StockBalance
	err := r.q.QueryRow(context.Background(), query, scope.AgentID, scope.PackID, scope.MarketID).Scan(
		&b.AgentID, &b.PackID, &b.MarketID, &b.Quantity, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockBalance{AgentID: scope.AgentID, PackID: scope.PackID, MarketID: scope.MarketID}, nil
		}
		return nil, fmt.Errorf("get stock balance: %w", err)
	}
	return &b, nil
}

// GetForUpdate siembra la fila del scope si no existe y la bloquea
// (SELECT FOR UPDATE). El seed previo garantiza que incluso el primer
// movimiento del scope queda serializado por el bloqueo de fila.
func (r *StockBalanceRepo) GetForUpdate(scope entity.MovementScope) (*entity.StockBalance, error) {
	seed := `
		INSERT INTO stock_balances (agent_id, pack_id, market_id, quantity, updated_at)
		VALUES ($1, $2, $3, 0, now())
		ON CONFLICT (agent_id, pack_id, market_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), seed, scope.AgentID, scope.PackID, scope.MarketID); err != nil {
		return nil, fmt.Errorf("seed stock balance: %w", err)
	}

	query := `
		SELECT agent_id, pack_id, market_id, quantity, updated_at
		FROM stock_balances WHERE agent_id = $1 AND pack_id = $2 AND market_id = $3
		FOR UPDATE`
	var b entity.StockBalance
	err := r.q.QueryRow(context.Background(), query, scope.AgentID, scope.PackID, scope.MarketID).Scan(
		&b.AgentID, &b.PackID, &b.MarketID, &b.Quantity, &b.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock balance for update: %w", err)
	}
	return &b, nil
}

// Upsert inserta o actualiza el saldo del scope.
func (r *StockBalanceRepo) Upsert(balance *entity.StockBalance) error {
	query := `
		INSERT INTO stock_balances (agent_id, pack_id, market_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (agent_id, pack_id, market_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		balance.AgentID, balance.PackID, balance.MarketID, balance.Quantity,
	)
	if err != nil {
		return fmt.Errorf("upsert stock balance: %w", err)
	}
	return nil
}

// ListByAgent lista todos los saldos no nulos de un agente.
func (r *StockBalanceRepo) ListByAgent(agentID string) ([]*entity.StockBalance, error) {
	query := `
		SELECT agent_id, pack_id, market_id, quantity, updated_at
		FROM stock_balances WHERE agent_id = $1 AND quantity <> 0
		ORDER BY pack_id, market_id`
	rows, err := r.q.Query(context.Background(), query, agentID)
	if err != nil {
		return nil, fmt.Errorf("list stock balances: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockBalance
	for rows.Next() {
		var b entity.StockBalance
		if err := rows.Scan(&b.AgentID, &b.PackID, &b.MarketID, &b.Quantity, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock balance: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
