package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmarte/equimed-api/internal/application/dto"
	"github.com/jmarte/equimed-api/internal/domain"
	"github.com/jmarte/equimed-api/internal/domain/entity"
	"github.com/jmarte/equimed-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías de catálogo.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría. El nombre es único por organización.
func (uc *CategoryUseCase) Create(organizationID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByName(organizationID, in.Name)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	category := &entity.Category{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Name:           in.Name,
		Description:    in.Description,
		ParentID:       in.ParentID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetByID obtiene una categoría validando la organización.
func (uc *CategoryUseCase) GetByID(organizationID, id string) (*dto.CategoryResponse, error) {
	category, err := uc.get(organizationID, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Update actualiza los campos editables de una categoría.
func (uc *CategoryUseCase) Update(organizationID, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.get(organizationID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.ParentID != nil {
		category.ParentID = in.ParentID
	}
	category.UpdatedAt = time.Now()
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Delete elimina una categoría; los productos no guardan la referencia, así
// que el borrado es físico.
func (uc *CategoryUseCase) Delete(organizationID, id string) error {
	category, err := uc.get(organizationID, id)
	if err != nil {
		return err
	}
	return uc.repo.Delete(category.ID)
}

// List lista categorías de la organización con paginación.
func (uc *CategoryUseCase) List(organizationID string, page dto.PageRequest) (*dto.CategoryListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByOrganization(organizationID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, category := range list {
		items = append(items, *toCategoryResponse(category))
	}
	return &dto.CategoryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *CategoryUseCase) get(organizationID, id string) (*entity.Category, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if category.OrganizationID != organizationID {
		return nil, domain.ErrForbidden
	}
	return category, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:             c.ID,
		OrganizationID: c.OrganizationID,
		Name:           c.Name,
		Description:    c.Description,
		ParentID:       c.ParentID,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
