package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas de solo lectura para dashboards.
// Siempre va contra el pool: nunca participa en transacciones de escritura.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// AgentDaily calcula las métricas del día [day, day+24h) para un agente.
// day debe venir ya truncado a medianoche en la zona horaria de la app.
func (r *AnalyticsRepo) AgentDaily(agentID string, day time.Time) (*repository.AgentDailyKPIs, error) {
	dayEnd := day.Add(24 * time.Hour)
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM visits
	       WHERE agent_id = $1 AND visited_at >= $2 AND visited_at < $3)          AS visits_today,
	    (SELECT COALESCE(SUM(quantity), 0) FROM sales
	       WHERE agent_id = $1 AND sold_at >= $2 AND sold_at < $3)                AS units_today,
	    (SELECT COALESCE(SUM(revenue), 0) FROM sales
	       WHERE agent_id = $1 AND sold_at >= $2 AND sold_at < $3)                AS revenue_today,
	    (SELECT COALESCE(SUM(p.amount), 0) FROM payments p
	       JOIN sales s ON s.id = p.sale_id
	       WHERE s.agent_id = $1 AND p.status = 'pending')                        AS pending_amount`

	var k repository.AgentDailyKPIs
	err := r.pool.QueryRow(context.Background(), query, agentID, day, dayEnd).Scan(
		&k.VisitsToday, &k.UnitsToday, &k.RevenueToday, &k.PendingAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("agent daily kpis: %w", err)
	}
	return &k, nil
}

// AdminOverview calcula los totales globales del sistema.
func (r *AnalyticsRepo) AdminOverview() (*repository.AdminKPIs, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM users WHERE soft_deleted = false)                   AS total_users,
	    (SELECT COUNT(*) FROM users WHERE soft_deleted = false AND role = $1)     AS total_agents,
	    (SELECT COUNT(*) FROM users WHERE soft_deleted = false AND role = $2)     AS total_managers,
	    (SELECT COUNT(*) FROM visits)                                             AS total_visits,
	    (SELECT COUNT(*) FROM sales)                                              AS total_sales,
	    (SELECT COUNT(*) FROM returns)                                            AS total_returns,
	    (SELECT COALESCE(SUM(revenue), 0) FROM sales)                             AS revenue_to_date`

	k := repository.AdminKPIs{RevenueToDate: decimal.Zero}
	err := r.pool.QueryRow(context.Background(), query, entity.RoleAgent, entity.RoleManager).Scan(
		&k.TotalUsers, &k.TotalAgents, &k.TotalManagers, &k.TotalVisits,
		&k.TotalSales, &k.TotalReturns, &k.RevenueToDate,
	)
	if err != nil {
		return nil, fmt.Errorf("admin overview kpis: %w", err)
	}
	return &k, nil
}
