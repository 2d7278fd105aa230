package entity

import "time"

// FailureSeverity severidad de una falla registrada.
type FailureSeverity string

const (
	SeverityLow      FailureSeverity = "low"
	SeverityMedium   FailureSeverity = "medium"
	SeverityHigh     FailureSeverity = "high"
	SeverityCritical FailureSeverity = "critical"
)

// Valid reporta si la severidad es una de las reconocidas.
func (s FailureSeverity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// SystemFailure entrada del registro de fallas de una organización: errores
// HTTP, de validación o de base de datos, con su contexto. Se crea y se
// resuelve; el mensaje nunca se edita.
type SystemFailure struct {
	ID             string
	OrganizationID string
	UserID         string
	ErrorType      string
	Severity       FailureSeverity
	Module         string
	Endpoint       string
	Method         string
	ErrorCode      string
	ErrorMessage   string
	ErrorDetail    string
	IsResolved     bool
	ResolvedAt     *time.Time
	ResolvedBy     string
	CreatedAt      time.Time
}
