package dto

import "time"

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT y el perfil autenticado.
type LoginResponse struct {
	Token   string          `json:"token"`
	Profile ProfileResponse `json:"profile"`
}

// ProfileResponse salida de un perfil (sin datos de credenciales).
type ProfileResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Role            string    `json:"role"`
	TenantID        string    `json:"tenant_id,omitempty"`
	BuildingID      string    `json:"building_id,omitempty"`
	ApartmentNumber string    `json:"apartment_number,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	CompanyName     string    `json:"company_name,omitempty"`
	PhotoURL        string    `json:"photo_url,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UpdateProfileRequest campos no privilegiados que el dueño puede modificar.
type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,max=100"`
	LastName    *string `json:"last_name" validate:"omitempty,max=100"`
	Phone       *string `json:"phone" validate:"omitempty,max=30"`
	CompanyName *string `json:"company_name" validate:"omitempty,max=200"`
	PhotoURL    *string `json:"photo_url" validate:"omitempty,max=500"`
}
