package entity

import "time"

// Estados de una parte de avería.
// resolved y closed son alias terminales heredados de completed; se conservan
// para compatibilidad con registros antiguos.
const (
	StatusCreated     = "created"
	StatusOpen        = "open"
	StatusWaiting     = "waiting"
	StatusInProgress  = "in_progress"
	StatusCompleted   = "completed"
	StatusIncomplete  = "incomplete"
	StatusNotPossible = "not_possible"
	StatusCancelled   = "cancelled"
	StatusResolved    = "resolved" // legacy
	StatusClosed      = "closed"   // legacy
)

// Niveles de urgencia aceptados al crear una parte.
const (
	UrgencyLow    = "low"
	UrgencyNormal = "normal"
	UrgencyHigh   = "high"
)

// FaultReport es una parte de avería creada por un residente y gestionada
// por los roles de mantenimiento mediante el flujo de estados.
type FaultReport struct {
	ID          string
	TenantID    string
	BuildingID  string
	CreatedBy   string
	Title       string
	Description string
	Location    string
	Urgency     string
	Status      string
	ImagePaths  []string // rutas en el blob store bajo el prefijo de la parte

	CreatedAt time.Time
	UpdatedAt time.Time
	UpdatedBy string

	ResolvedBy string
	ResolvedAt *time.Time
}

// AttachmentPrefix prefijo en el blob store bajo el que viven las imágenes de la parte.
func (f *FaultReport) AttachmentPrefix() string {
	return "tenants/" + f.TenantID + "/fault_reports/" + f.ID + "/"
}
