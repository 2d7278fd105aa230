package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmarte/equimed-api/internal/application/dto"
	"github.com/jmarte/equimed-api/internal/domain"
	"github.com/jmarte/equimed-api/internal/domain/entity"
	"github.com/jmarte/equimed-api/internal/domain/repository"
)

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor. El nombre es único por organización.
func (uc *SupplierUseCase) Create(organizationID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByName(organizationID, in.Name)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Name:           in.Name,
		ContactName:    in.ContactName,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
		RNC:            in.RNC,
		PaymentTerms:   in.PaymentTerms,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByID obtiene un proveedor validando la organización.
func (uc *SupplierUseCase) GetByID(organizationID, id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.get(organizationID, id)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// Update actualiza los campos editables de un proveedor.
func (uc *SupplierUseCase) Update(organizationID, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.get(organizationID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		supplier.Name = *in.Name
	}
	if in.ContactName != nil {
		supplier.ContactName = *in.ContactName
	}
	if in.Email != nil {
		supplier.Email = *in.Email
	}
	if in.Phone != nil {
		supplier.Phone = *in.Phone
	}
	if in.Address != nil {
		supplier.Address = *in.Address
	}
	if in.RNC != nil {
		supplier.RNC = *in.RNC
	}
	if in.PaymentTerms != nil {
		supplier.PaymentTerms = *in.PaymentTerms
	}
	supplier.UpdatedAt = time.Now()
	if err := uc.repo.Update(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// Delete elimina un proveedor.
func (uc *SupplierUseCase) Delete(organizationID, id string) error {
	supplier, err := uc.get(organizationID, id)
	if err != nil {
		return err
	}
	return uc.repo.Delete(supplier.ID)
}

// List lista proveedores de la organización con paginación.
func (uc *SupplierUseCase) List(organizationID string, page dto.PageRequest) (*dto.SupplierListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByOrganization(organizationID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, supplier := range list {
		items = append(items, *toSupplierResponse(supplier))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *SupplierUseCase) get(organizationID, id string) (*entity.Supplier, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if supplier.OrganizationID != organizationID {
		return nil, domain.ErrForbidden
	}
	return supplier, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:             s.ID,
		OrganizationID: s.OrganizationID,
		Name:           s.Name,
		ContactName:    s.ContactName,
		Email:          s.Email,
		Phone:          s.Phone,
		Address:        s.Address,
		RNC:            s.RNC,
		PaymentTerms:   s.PaymentTerms,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
