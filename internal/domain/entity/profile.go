package entity

import "time"

// Roles válidos para Profile.
const (
	RoleAdmin           = "admin"
	RoleHousingCompany  = "housing_company"
	RolePropertyManager = "property_manager"
	RoleResident        = "resident"
	RoleMaintenance     = "maintenance"
	RoleServiceCompany  = "service_company"
)

// WorkflowRoles roles autorizados a mover partes de avería por cualquier transición permitida.
var WorkflowRoles = []string{
	RoleHousingCompany, RoleServiceCompany, RoleMaintenance, RoleAdmin, RolePropertyManager,
}

// Profile es el perfil de aplicación de una cuenta de identidad.
// Su ID es siempre el ID de la cuenta; se crea durante el canje o registro y
// se destruye junto con la cuenta.
type Profile struct {
	ID        string // = id de la cuenta en el almacén de identidad
	Email     string
	FirstName string
	LastName  string
	Role      string
	TenantID  string // vacío solo para admin

	// Solo residentes (y property_manager cuando está asignado a un edificio).
	BuildingID      string
	ApartmentNumber string

	// Opcionales.
	Phone       string
	CompanyName string
	PhotoURL    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RequiresTenant indica si el rol exige tenant asignado.
func RequiresTenant(role string) bool {
	return role != RoleAdmin
}

// RequiresBuilding indica si el rol exige edificio asignado.
func RequiresBuilding(role string) bool {
	switch role {
	case RoleAdmin, RoleHousingCompany, RoleMaintenance, RoleServiceCompany:
		return false
	}
	return true
}

// IsComplete verifica los campos obligatorios: un perfil nunca es válido a medias.
func (p *Profile) IsComplete() bool {
	if p.Role == "" {
		return false
	}
	if RequiresTenant(p.Role) && p.TenantID == "" {
		return false
	}
	return true
}

// DisplayName nombre para mostrar (nombre + apellido, o email como último recurso).
func (p *Profile) DisplayName() string {
	switch {
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "":
		return p.FirstName
	default:
		return p.Email
	}
}
