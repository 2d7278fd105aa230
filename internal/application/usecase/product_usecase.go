package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmarte/equimed-api/internal/application/dto"
	"github.com/jmarte/equimed-api/internal/domain"
	"github.com/jmarte/equimed-api/internal/domain/entity"
	"github.com/jmarte/equimed-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Stock y StockAvailable
// nunca se editan por aquí: se mueven vía movimientos de inventario.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto. El stock inicial siembra ambos contadores con el
// mismo valor (nada alquilado todavía).
func (uc *ProductUseCase) Create(organizationID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	productType := entity.ProductType(in.Type)
	if !productType.Valid() {
		return nil, domain.ErrInvalidProductType
	}
	if in.InitialStock < 0 || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetBySKU(organizationID, in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:                 uuid.New().String(),
		OrganizationID:     organizationID,
		SKU:                in.SKU,
		Name:               in.Name,
		Description:        in.Description,
		Type:               productType,
		Price:              in.Price,
		RentalPriceDaily:   in.RentalPriceDaily,
		RentalPriceWeekly:  in.RentalPriceWeekly,
		RentalPriceMonthly: in.RentalPriceMonthly,
		Cost:               in.Cost,
		Stock:              in.InitialStock,
		StockAvailable:     in.InitialStock,
		MinStock:           in.MinStock,
		Location:           in.Location,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto validando la organización.
func (uc *ProductUseCase) GetByID(organizationID, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(organizationID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza los campos editables de un producto. No toca los
// contadores de stock.
func (uc *ProductUseCase) Update(organizationID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(organizationID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Type != nil {
		productType := entity.ProductType(*in.Type)
		if !productType.Valid() {
			return nil, domain.ErrInvalidProductType
		}
		product.Type = productType
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.RentalPriceDaily != nil {
		product.RentalPriceDaily = *in.RentalPriceDaily
	}
	if in.RentalPriceWeekly != nil {
		product.RentalPriceWeekly = *in.RentalPriceWeekly
	}
	if in.RentalPriceMonthly != nil {
		product.RentalPriceMonthly = *in.RentalPriceMonthly
	}
	if in.Cost != nil {
		product.Cost = *in.Cost
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	if in.Location != nil {
		product.Location = *in.Location
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

// Delete elimina un producto sin historial; si ya aparece en ventas,
// alquileres, cotizaciones o movimientos, solo lo desactiva para preservar las
// referencias. Devuelve true si hubo borrado físico.
func (uc *ProductUseCase) Delete(organizationID, id string) (bool, error) {
	product, err := uc.get(organizationID, id)
	if err != nil {
		return false, err
	}
	referenced, err := uc.repo.HasReferences(product.ID)
	if err != nil {
		return false, err
	}
	if referenced {
		return false, uc.repo.Deactivate(product.ID)
	}
	return true, uc.repo.Delete(product.ID)
}

// List lista productos de la organización con paginación.
func (uc *ProductUseCase) List(organizationID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByOrganization(organizationID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, product := range list {
		items = append(items, *toProductResponse(product))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListLowStock productos activos con stock en o bajo su mínimo.
func (uc *ProductUseCase) ListLowStock(organizationID string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListLowStock(organizationID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, product := range list {
		items = append(items, *toProductResponse(product))
	}
	return items, nil
}

func (uc *ProductUseCase) get(organizationID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.OrganizationID != organizationID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                 p.ID,
		OrganizationID:     p.OrganizationID,
		SKU:                p.SKU,
		Name:               p.Name,
		Description:        p.Description,
		Type:               string(p.Type),
		Price:              p.Price,
		RentalPriceDaily:   p.RentalPriceDaily,
		RentalPriceWeekly:  p.RentalPriceWeekly,
		RentalPriceMonthly: p.RentalPriceMonthly,
		Cost:               p.Cost,
		Stock:              p.Stock,
		StockAvailable:     p.StockAvailable,
		MinStock:           p.MinStock,
		Location:           p.Location,
		IsActive:           p.IsActive,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
