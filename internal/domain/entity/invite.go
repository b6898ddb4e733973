package entity

import "time"

// Clases de invitación. Misma forma, semántica distinta por clase.
const (
	InviteKindTenant     = "tenant"     // fundacional: registra al tenant y crea la cuenta housing_company
	InviteKindResident   = "resident"   // alta de residente (requiere edificio + apartamento)
	InviteKindManagement = "management" // alta de administración (property_manager o maintenance)
	InviteKindService    = "service"    // alta de empresa de servicios externa
)

// InviteTTL vigencia de un código desde su creación.
const InviteTTL = 7 * 24 * time.Hour

// Invite es un código de un solo uso, limitado en el tiempo, que autoriza
// el auto-aprovisionamiento de una cuenta dentro de un tenant.
type Invite struct {
	ID        string
	Kind      string
	Code      string // 8 caracteres A-Z0-9
	TenantID  string
	CreatedBy string
	IsUsed    bool
	ExpiresAt time.Time

	// Presentes solo tras el canje.
	UsedByUserID string
	UsedAt       *time.Time

	// Payload específico por clase.
	BuildingID      string // resident (y opcional en management para property_manager)
	ApartmentNumber string // resident
	TargetRole      string // management: property_manager | maintenance

	CreatedAt time.Time
}

// IsActive indica si el código sigue canjeable: no usado y no expirado.
// El filtro por "ahora" se aplica siempre en código, nunca en la query.
func (i *Invite) IsActive(now time.Time) bool {
	return !i.IsUsed && i.ExpiresAt.After(now)
}
