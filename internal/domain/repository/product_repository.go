package repository

import "github.com/jhoicas/fieldops-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	List(onlyActive bool, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
}

// PackSizeRepository define el puerto de persistencia para presentaciones (packs).
type PackSizeRepository interface {
	Create(pack *entity.PackSize) error
	GetByID(id string) (*entity.PackSize, error)
	ListByProduct(productID string) ([]*entity.PackSize, error)
	Update(pack *entity.PackSize) error
}
