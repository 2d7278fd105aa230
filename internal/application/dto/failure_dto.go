package dto

import "time"

// ReportFailureRequest entrada para registrar una falla del sistema.
type ReportFailureRequest struct {
	ErrorType    string `json:"error_type" validate:"required"`
	Severity     string `json:"severity"`
	Module       string `json:"module" validate:"required"`
	Endpoint     string `json:"endpoint"`
	Method       string `json:"method"`
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message" validate:"required"`
	ErrorDetail  string `json:"error_detail"`
}

// FailureResponse salida de una falla registrada.
type FailureResponse struct {
	ID             string     `json:"id"`
	OrganizationID string     `json:"organization_id"`
	UserID         string     `json:"user_id,omitempty"`
	ErrorType      string     `json:"error_type"`
	Severity       string     `json:"severity"`
	Module         string     `json:"module"`
	Endpoint       string     `json:"endpoint,omitempty"`
	Method         string     `json:"method,omitempty"`
	ErrorCode      string     `json:"error_code,omitempty"`
	ErrorMessage   string     `json:"error_message"`
	ErrorDetail    string     `json:"error_detail,omitempty"`
	IsResolved     bool       `json:"is_resolved"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy     string     `json:"resolved_by,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// FailureListResponse lista paginada de fallas.
type FailureListResponse struct {
	Items []FailureResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
