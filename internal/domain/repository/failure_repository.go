package repository

import "github.com/jmarte/equimed-api/internal/domain/entity"

// FailureRepository puerto de persistencia del registro de fallas.
// List filtra por severidad (vacía = todas) y opcionalmente solo las no
// resueltas; devuelve las más recientes primero.
type FailureRepository interface {
	Create(failure *entity.SystemFailure) error
	GetByID(id string) (*entity.SystemFailure, error)
	List(organizationID string, severity entity.FailureSeverity, onlyUnresolved bool, limit, offset int) ([]*entity.SystemFailure, error)
	Update(failure *entity.SystemFailure) error
	Delete(id string) error
}
