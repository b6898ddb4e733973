package dto

import "time"

// CreateTenantRequest entrada para crear un tenant (cascarón sin registrar).
type CreateTenantRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Address    string `json:"address" validate:"required,max=300"`
	City       string `json:"city" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=10"`
}

// UpdateTenantRequest entrada para actualizar un tenant (campos opcionales).
type UpdateTenantRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address       *string `json:"address" validate:"omitempty,max=300"`
	City          *string `json:"city" validate:"omitempty,max=100"`
	PostalCode    *string `json:"postal_code" validate:"omitempty,max=10"`
	ContactPerson *string `json:"contact_person" validate:"omitempty,max=200"`
	Email         *string `json:"email" validate:"omitempty,email"`
	IsActive      *bool   `json:"is_active"`
}

// TenantResponse salida de un tenant.
type TenantResponse struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Address             string     `json:"address"`
	City                string     `json:"city"`
	PostalCode          string     `json:"postal_code"`
	IsActive            bool       `json:"is_active"`
	IsRegistered        bool       `json:"is_registered"`
	InviteCode          string     `json:"invite_code,omitempty"`
	InviteCodeExpiresAt *time.Time `json:"invite_code_expires_at,omitempty"`
	ContactPerson       string     `json:"contact_person,omitempty"`
	Email               string     `json:"email,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// TenantListResponse lista paginada de tenants.
type TenantListResponse struct {
	Items []TenantResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
