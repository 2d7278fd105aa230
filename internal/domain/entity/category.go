package entity

import "time"

// Category categoría de catálogo de una organización. ParentID permite
// subcategorías.
type Category struct {
	ID             string
	OrganizationID string
	Name           string
	Description    string
	ParentID       *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
