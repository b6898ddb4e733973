package repository

import "github.com/jhoicas/Condominio-api/internal/domain/entity"

// AnnouncementRepository define el puerto de persistencia para Announcement (DIP).
// GetByID y ListByTenant devuelven los anuncios con sus adjuntos cargados.
type AnnouncementRepository interface {
	Create(a *entity.Announcement) error
	GetByID(id string) (*entity.Announcement, error)
	Update(a *entity.Announcement) error
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Announcement, error)
	Delete(id string) error

	AddAttachment(att *entity.Attachment) error
	GetAttachment(id string) (*entity.Attachment, error)
	DeleteAttachment(id string) error
}
