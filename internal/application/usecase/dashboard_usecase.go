package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/fieldops-api/internal/application/dto"
	"github.com/jhoicas/fieldops-api/internal/application/stock"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

// DashboardUseCase arma los KPIs por rol: el agente ve su día y su stock,
// el admin ve los agregados globales. "Hoy" se corta a medianoche en la zona
// horaria de la operación (loc).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	ledgerUC      *stock.LedgerUseCase
	loc           *time.Location
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, ledgerUC *stock.LedgerUseCase, loc *time.Location) *DashboardUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardUseCase{analyticsRepo: analyticsRepo, ledgerUC: ledgerUC, loc: loc}
}

// AgentDashboard KPIs del día + snapshot de stock del agente.
func (uc *DashboardUseCase) AgentDashboard(ctx context.Context, agentID string) (*dto.AgentDashboardResponse, error) {
	now := time.Now().In(uc.loc)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)
	kpis, err := uc.analyticsRepo.AgentDaily(agentID, day)
	if err != nil {
		return nil, err
	}
	balances, err := uc.ledgerUC.AgentStock(ctx, agentID)
	if err != nil {
		return nil, err
	}
	snapshot := make([]dto.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		snapshot = append(snapshot, dto.BalanceResponse{
			AgentID:  b.AgentID,
			PackID:   b.PackID,
			MarketID: b.MarketID,
			Quantity: b.Quantity,
		})
	}
	return &dto.AgentDashboardResponse{
		VisitsToday:   kpis.VisitsToday,
		UnitsToday:    kpis.UnitsToday,
		RevenueToday:  kpis.RevenueToday,
		PendingAmount: kpis.PendingAmount,
		Stock:         snapshot,
	}, nil
}

// AdminDashboard agregados globales del sistema.
func (uc *DashboardUseCase) AdminDashboard(ctx context.Context) (*dto.AdminDashboardResponse, error) {
	kpis, err := uc.analyticsRepo.AdminOverview()
	if err != nil {
		return nil, err
	}
	return &dto.AdminDashboardResponse{
		TotalUsers:    kpis.TotalUsers,
		TotalAgents:   kpis.TotalAgents,
		TotalManagers: kpis.TotalManagers,
		TotalVisits:   kpis.TotalVisits,
		TotalSales:    kpis.TotalSales,
		TotalReturns:  kpis.TotalReturns,
		RevenueToDate: kpis.RevenueToDate,
	}, nil
}
