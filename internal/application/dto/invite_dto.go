package dto

import "time"

// GenerateInviteRequest entrada para emitir una invitación dentro del tenant del llamador.
// BuildingID/ApartmentNumber aplican a la clase resident; TargetRole a management.
type GenerateInviteRequest struct {
	BuildingID      string `json:"building_id" validate:"omitempty,max=100"`
	ApartmentNumber string `json:"apartment_number" validate:"omitempty,max=20"`
	TargetRole      string `json:"target_role" validate:"omitempty,oneof=property_manager maintenance"`
}

// InviteResponse salida de una invitación emitida o listada.
type InviteResponse struct {
	ID              string     `json:"id"`
	Kind            string     `json:"kind"`
	Code            string     `json:"code"`
	TenantID        string     `json:"tenant_id"`
	IsUsed          bool       `json:"is_used"`
	ExpiresAt       time.Time  `json:"expires_at"`
	UsedByUserID    string     `json:"used_by_user_id,omitempty"`
	UsedAt          *time.Time `json:"used_at,omitempty"`
	BuildingID      string     `json:"building_id,omitempty"`
	ApartmentNumber string     `json:"apartment_number,omitempty"`
	TargetRole      string     `json:"target_role,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ValidateInviteRequest entrada del preview pre-registro (público).
type ValidateInviteRequest struct {
	Code string `json:"code" validate:"required,min=6"`
}

// InviteSummary datos denormalizados para mostrar antes del registro.
// No muta estado: la validación es idempotente.
type InviteSummary struct {
	Kind            string    `json:"kind"`
	TenantID        string    `json:"tenant_id"`
	TenantName      string    `json:"tenant_name"`
	TenantAddress   string    `json:"tenant_address"`
	TenantCity      string    `json:"tenant_city"`
	TenantPostal    string    `json:"tenant_postal_code"`
	BuildingID      string    `json:"building_id,omitempty"`
	ApartmentNumber string    `json:"apartment_number,omitempty"`
	Role            string    `json:"role"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// RedeemInviteRequest entrada del canje: código + datos de la cuenta nueva.
type RedeemInviteRequest struct {
	Code        string `json:"code" validate:"required,min=6"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FirstName   string `json:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" validate:"required,max=100"`
	Phone       string `json:"phone" validate:"omitempty,max=30"`
	CompanyName string `json:"company_name" validate:"omitempty,max=200"`
}

// RedeemInviteResponse salida del canje.
type RedeemInviteResponse struct {
	AccountID string `json:"account_id"`
	TenantID  string `json:"tenant_id"`
	Role      string `json:"role"`
}
