package dto

import "time"

// CreateAnnouncementRequest entrada para publicar un anuncio.
type CreateAnnouncementRequest struct {
	Title     string     `json:"title" validate:"required,min=1,max=200"`
	Content   string     `json:"content" validate:"required,max=10000"`
	Type      string     `json:"type" validate:"required,oneof=general maintenance urgent"`
	ShowFrom  *time.Time `json:"show_from"`
	ShowUntil *time.Time `json:"show_until"`
	IsPinned  bool       `json:"is_pinned"`
}

// UpdateAnnouncementRequest entrada para editar un anuncio (campos opcionales).
type UpdateAnnouncementRequest struct {
	Title     *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Content   *string    `json:"content" validate:"omitempty,max=10000"`
	Type      *string    `json:"type" validate:"omitempty,oneof=general maintenance urgent"`
	ShowFrom  *time.Time `json:"show_from"`
	ShowUntil *time.Time `json:"show_until"`
	IsPinned  *bool      `json:"is_pinned"`
}

// AttachmentResponse salida de un adjunto.
type AttachmentResponse struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name"`
	MimeType  string    `json:"mime_type"`
	SizeBytes int64     `json:"size_bytes"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// AnnouncementResponse salida de un anuncio con sus adjuntos.
type AnnouncementResponse struct {
	ID          string               `json:"id"`
	TenantID    string               `json:"tenant_id"`
	CreatedBy   string               `json:"created_by"`
	Title       string               `json:"title"`
	Content     string               `json:"content"`
	Type        string               `json:"type"`
	ShowFrom    *time.Time           `json:"show_from,omitempty"`
	ShowUntil   *time.Time           `json:"show_until,omitempty"`
	IsPinned    bool                 `json:"is_pinned"`
	Attachments []AttachmentResponse `json:"attachments"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// AnnouncementListResponse lista paginada de anuncios.
type AnnouncementListResponse struct {
	Items []AnnouncementResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
