package dto

import "github.com/shopspring/decimal"

// AgentDashboardResponse KPIs del día + snapshot de stock del agente.
type AgentDashboardResponse struct {
	VisitsToday   int64             `json:"visits_today"`
	UnitsToday    int64             `json:"units_today"`
	RevenueToday  decimal.Decimal   `json:"revenue_today"`
	PendingAmount decimal.Decimal   `json:"pending_amount"`
	Stock         []BalanceResponse `json:"stock"`
}

// AdminDashboardResponse KPIs globales.
type AdminDashboardResponse struct {
	TotalUsers    int64           `json:"total_users"`
	TotalAgents   int64           `json:"total_agents"`
	TotalManagers int64           `json:"total_managers"`
	TotalVisits   int64           `json:"total_visits"`
	TotalSales    int64           `json:"total_sales"`
	TotalReturns  int64           `json:"total_returns"`
	RevenueToDate decimal.Decimal `json:"revenue_to_date"`
}
