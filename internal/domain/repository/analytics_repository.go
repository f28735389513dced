package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// AgentDailyKPIs métricas del día para el dashboard del agente.
type AgentDailyKPIs struct {
	VisitsToday   int64
	UnitsToday    int64
	RevenueToday  decimal.Decimal
	PendingAmount decimal.Decimal // pagos en estado pending
}

// AdminKPIs métricas globales para el dashboard de administración.
type AdminKPIs struct {
	TotalUsers     int64
	TotalAgents    int64
	TotalManagers  int64
	TotalVisits    int64
	TotalSales     int64
	TotalReturns   int64
	RevenueToDate  decimal.Decimal
}

// AnalyticsRepository consultas agregadas de solo lectura para dashboards.
type AnalyticsRepository interface {
	AgentDaily(agentID string, day time.Time) (*AgentDailyKPIs, error)
	AdminOverview() (*AdminKPIs, error)
}
