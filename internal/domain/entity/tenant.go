package entity

import "time"

// Tenant representa una comunidad de vivienda (housing company): la unidad de aislamiento de datos.
// Se crea como cascarón sin registrar; queda registrado exactamente una vez al canjearse
// su invitación fundacional.
type Tenant struct {
	ID               string
	Name             string
	Address          string
	City             string
	PostalCode       string
	CreatedByAdminID string
	IsActive         bool
	IsRegistered     bool

	// Invitación fundacional vigente (espejo del registro en invites, para vista rápida).
	InviteCode          string
	InviteCodeExpiresAt *time.Time

	// Datos del propietario, presentes solo tras el registro.
	ContactPerson string
	Email         string
	UserID        string

	CreatedAt time.Time
	UpdatedAt time.Time
}
