package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmarte/equimed-api/internal/application/dto"
	"github.com/jmarte/equimed-api/internal/domain"
	"github.com/jmarte/equimed-api/internal/domain/entity"
	"github.com/jmarte/equimed-api/internal/domain/repository"
)

// FailureUseCase registro de fallas del sistema por organización: se reportan,
// se listan con filtros y se marcan como resueltas.
type FailureUseCase struct {
	repo repository.FailureRepository
}

// NewFailureUseCase construye el caso de uso.
func NewFailureUseCase(repo repository.FailureRepository) *FailureUseCase {
	return &FailureUseCase{repo: repo}
}

// Report registra una falla. La severidad vacía cae a "medium"; una severidad
// no reconocida es entrada inválida.
func (uc *FailureUseCase) Report(organizationID, userID string, in dto.ReportFailureRequest) (*dto.FailureResponse, error) {
	if in.ErrorType == "" || in.Module == "" || in.ErrorMessage == "" {
		return nil, domain.ErrInvalidInput
	}
	severity := entity.FailureSeverity(in.Severity)
	if severity == "" {
		severity = entity.SeverityMedium
	}
	if !severity.Valid() {
		return nil, domain.ErrInvalidInput
	}
	failure := &entity.SystemFailure{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		UserID:         userID,
		ErrorType:      in.ErrorType,
		Severity:       severity,
		Module:         in.Module,
		Endpoint:       in.Endpoint,
		Method:         in.Method,
		ErrorCode:      in.ErrorCode,
		ErrorMessage:   in.ErrorMessage,
		ErrorDetail:    in.ErrorDetail,
		CreatedAt:      time.Now(),
	}
	if err := uc.repo.Create(failure); err != nil {
		return nil, err
	}
	return toFailureResponse(failure), nil
}

// GetByID obtiene una falla validando la organización.
func (uc *FailureUseCase) GetByID(organizationID, id string) (*dto.FailureResponse, error) {
	failure, err := uc.get(organizationID, id)
	if err != nil {
		return nil, err
	}
	return toFailureResponse(failure), nil
}

// Resolve marca una falla como resuelta registrando quién y cuándo. Resolver
// dos veces no es una transición válida.
func (uc *FailureUseCase) Resolve(organizationID, userID, id string) (*dto.FailureResponse, error) {
	failure, err := uc.get(organizationID, id)
	if err != nil {
		return nil, err
	}
	if failure.IsResolved {
		return nil, domain.ErrInvalidStatus
	}
	now := time.Now()
	failure.IsResolved = true
	failure.ResolvedAt = &now
	failure.ResolvedBy = userID
	if err := uc.repo.Update(failure); err != nil {
		return nil, err
	}
	return toFailureResponse(failure), nil
}

// Delete elimina una falla del registro.
func (uc *FailureUseCase) Delete(organizationID, id string) error {
	failure, err := uc.get(organizationID, id)
	if err != nil {
		return err
	}
	return uc.repo.Delete(failure.ID)
}

// List lista fallas de la organización, opcionalmente por severidad y solo
// las no resueltas. Las más recientes primero.
func (uc *FailureUseCase) List(organizationID string, severity string, onlyUnresolved bool, page dto.PageRequest) (*dto.FailureListResponse, error) {
	s := entity.FailureSeverity(severity)
	if s != "" && !s.Valid() {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.repo.List(organizationID, s, onlyUnresolved, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FailureResponse, 0, len(list))
	for _, failure := range list {
		items = append(items, *toFailureResponse(failure))
	}
	return &dto.FailureListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *FailureUseCase) get(organizationID, id string) (*entity.SystemFailure, error) {
	failure, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if failure == nil {
		return nil, domain.ErrNotFound
	}
	if failure.OrganizationID != organizationID {
		return nil, domain.ErrForbidden
	}
	return failure, nil
}

func toFailureResponse(f *entity.SystemFailure) *dto.FailureResponse {
	return &dto.FailureResponse{
		ID:             f.ID,
		OrganizationID: f.OrganizationID,
		UserID:         f.UserID,
		ErrorType:      f.ErrorType,
		Severity:       string(f.Severity),
		Module:         f.Module,
		Endpoint:       f.Endpoint,
		Method:         f.Method,
		ErrorCode:      f.ErrorCode,
		ErrorMessage:   f.ErrorMessage,
		ErrorDetail:    f.ErrorDetail,
		IsResolved:     f.IsResolved,
		ResolvedAt:     f.ResolvedAt,
		ResolvedBy:     f.ResolvedBy,
		CreatedAt:      f.CreatedAt,
	}
}
