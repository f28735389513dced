package repository

import "github.com/jhoicas/fieldops-api/internal/domain/entity"

// MarketRepository define el puerto de persistencia para mercados.
type MarketRepository interface {
	Create(market *entity.Market) error
	GetByID(id string) (*entity.Market, error)
	List(region string, limit, offset int) ([]*entity.Market, error)
	Update(market *entity.Market) error
}

// OutletRepository define el puerto de persistencia para puntos de venta.
type OutletRepository interface {
	Create(outlet *entity.Outlet) error
	GetByID(id string) (*entity.Outlet, error)
	ListByMarket(marketID string) ([]*entity.Outlet, error)
	Update(outlet *entity.Outlet) error
	Delete(id string) error
}
