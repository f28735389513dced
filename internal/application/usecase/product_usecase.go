package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/fieldops-api/internal/application/dto"
	"github.com/jhoicas/fieldops-api/internal/domain"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos y sus presentaciones.
type ProductUseCase struct {
	repo     repository.ProductRepository
	packRepo repository.PackSizeRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, packRepo repository.PackSizeRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, packRepo: packRepo}
}

// Create crea un nuevo producto con SKU único.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.SKU == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		SKU:         in.SKU,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista productos (onlyActive filtra los inactivos).
func (uc *ProductUseCase) List(onlyActive bool, limit, offset int) ([]*dto.ProductResponse, error) {
	products, err := uc.repo.List(onlyActive, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Update actualiza nombre/categoría/descripción/estado de un producto.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != "" {
		product.Name = in.Name
	}
	if in.Category != "" {
		product.Category = in.Category
	}
	if in.Description != "" {
		product.Description = in.Description
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// AddPack agrega una presentación (pack) a un producto.
func (uc *ProductUseCase) AddPack(productID string, in dto.CreatePackSizeRequest) (*dto.PackSizeResponse, error) {
	if in.Label == "" || in.SKU == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	unit := in.Unit
	if unit == "" {
		unit = "g"
	}
	now := time.Now()
	pack := &entity.PackSize{
		ID:        uuid.New().String(),
		ProductID: productID,
		Label:     in.Label,
		SKU:       in.SKU,
		Unit:      unit,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.packRepo.Create(pack); err != nil {
		return nil, err
	}
	return toPackResponse(pack), nil
}

// ListPacks lista las presentaciones de un producto.
func (uc *ProductUseCase) ListPacks(productID string) ([]*dto.PackSizeResponse, error) {
	packs, err := uc.packRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PackSizeResponse, 0, len(packs))
	for _, p := range packs {
		out = append(out, toPackResponse(p))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		SKU:         p.SKU,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toPackResponse(p *entity.PackSize) *dto.PackSizeResponse {
	return &dto.PackSizeResponse{
		ID:        p.ID,
		ProductID: p.ProductID,
		Label:     p.Label,
		SKU:       p.SKU,
		Unit:      p.Unit,
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
	}
}
