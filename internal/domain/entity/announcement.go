package entity

import "time"

// Tipos de anuncio.
const (
	AnnouncementTypeGeneral     = "general"
	AnnouncementTypeMaintenance = "maintenance"
	AnnouncementTypeUrgent      = "urgent"
)

// Announcement es un comunicado del tenant publicado por roles privilegiados.
type Announcement struct {
	ID        string
	TenantID  string
	CreatedBy string
	Title     string
	Content   string
	Type      string

	// Ventana de publicación opcional.
	ShowFrom  *time.Time
	ShowUntil *time.Time

	IsPinned bool

	Attachments []Attachment

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Attachment es un archivo adjunto de un anuncio, almacenado como blob independiente.
type Attachment struct {
	ID             string
	AnnouncementID string
	FileName       string
	MimeType       string
	SizeBytes      int64
	Path           string // ruta del objeto en el blob store
	PublicURL      string
	CreatedAt      time.Time
}

// AttachmentPrefix prefijo en el blob store bajo el que viven los adjuntos del anuncio.
func (a *Announcement) AttachmentPrefix() string {
	return "tenants/" + a.TenantID + "/announcements/" + a.ID + "/"
}
