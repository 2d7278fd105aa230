package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmarte/equimed-api/internal/application/dto"
	"github.com/jmarte/equimed-api/internal/domain"
	"github.com/jmarte/equimed-api/internal/domain/entity"
	"github.com/jmarte/equimed-api/internal/domain/repository"
)

// ClientUseCase casos de uso CRUD para clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un cliente.
func (uc *ClientUseCase) Create(organizationID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	clientType := entity.ClientType(in.Type)
	switch clientType {
	case entity.ClientHospital, entity.ClientMedico, entity.ClientEmpresa, entity.ClientParticular:
	default:
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	client := &entity.Client{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Name:           in.Name,
		Type:           clientType,
		RNC:            in.RNC,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
		City:           in.City,
		ContactPerson:  in.ContactPerson,
		Notes:          in.Notes,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente validando la organización.
func (uc *ClientUseCase) GetByID(organizationID, id string) (*dto.ClientResponse, error) {
	client, err := uc.get(organizationID, id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Update actualiza los campos editables de un cliente.
func (uc *ClientUseCase) Update(organizationID, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.get(organizationID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		client.Name = *in.Name
	}
	if in.Type != nil {
		clientType := entity.ClientType(*in.Type)
		switch clientType {
		case entity.ClientHospital, entity.ClientMedico, entity.ClientEmpresa, entity.ClientParticular:
		default:
			return nil, domain.ErrInvalidInput
		}
		client.Type = clientType
	}
	if in.RNC != nil {
		client.RNC = *in.RNC
	}
	if in.Email != nil {
		client.Email = *in.Email
	}
	if in.Phone != nil {
		client.Phone = *in.Phone
	}
	if in.Address != nil {
		client.Address = *in.Address
	}
	if in.City != nil {
		client.City = *in.City
	}
	if in.ContactPerson != nil {
		client.ContactPerson = *in.ContactPerson
	}
	if in.Notes != nil {
		client.Notes = *in.Notes
	}
	if in.IsActive != nil {
		client.IsActive = *in.IsActive
	}
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Deactivate desactiva un cliente; los documentos históricos lo siguen
// referenciando.
func (uc *ClientUseCase) Deactivate(organizationID, id string) error {
	client, err := uc.get(organizationID, id)
	if err != nil {
		return err
	}
	return uc.repo.Deactivate(client.ID)
}

// List lista clientes de la organización con paginación.
func (uc *ClientUseCase) List(organizationID string, page dto.PageRequest) (*dto.ClientListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByOrganization(organizationID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, client := range list {
		items = append(items, *toClientResponse(client))
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *ClientUseCase) get(organizationID, id string) (*entity.Client, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if client.OrganizationID != organizationID {
		return nil, domain.ErrForbidden
	}
	return client, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:             c.ID,
		OrganizationID: c.OrganizationID,
		Name:           c.Name,
		Type:           string(c.Type),
		RNC:            c.RNC,
		Email:          c.Email,
		Phone:          c.Phone,
		Address:        c.Address,
		City:           c.City,
		ContactPerson:  c.ContactPerson,
		Notes:          c.Notes,
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
