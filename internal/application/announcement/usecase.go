// Package announcement implementa los casos de uso de anuncios del tenant:
// publicación por roles gestores, lectura por cualquier miembro y adjuntos
// servidos desde el blob store.
package announcement

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/jhoicas/Condominio-api/internal/application/dto"
	"github.com/jhoicas/Condominio-api/internal/application/guard"
	"github.com/jhoicas/Condominio-api/internal/application/ports"
	"github.com/jhoicas/Condominio-api/internal/domain"
	"github.com/jhoicas/Condominio-api/internal/domain/entity"
	"github.com/jhoicas/Condominio-api/internal/domain/repository"
	"github.com/google/uuid"
)

// Roles que pueden publicar, editar y borrar anuncios dentro de su tenant.
var publisherRoles = []string{entity.RoleHousingCompany, entity.RolePropertyManager}

// UseCase casos de uso de anuncios.
type UseCase struct {
	announcements repository.AnnouncementRepository
	guard         *guard.Guard
	blobs         ports.BlobStore
}

// New construye el caso de uso.
func New(announcements repository.AnnouncementRepository, g *guard.Guard, blobs ports.BlobStore) *UseCase {
	return &UseCase{announcements: announcements, guard: g, blobs: blobs}
}

// Create publica un anuncio en el tenant del llamador.
func (uc *UseCase) Create(callerID string, in dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	caller, err := uc.guard.Authorize(callerID, publisherRoles...)
	if err != nil {
		return nil, err
	}
	if in.ShowFrom != nil && in.ShowUntil != nil && in.ShowUntil.Before(*in.ShowFrom) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	a := &entity.Announcement{
		ID:        uuid.New().String(),
		TenantID:  caller.TenantID,
		CreatedBy: caller.ID,
		Title:     in.Title,
		Content:   in.Content,
		Type:      in.Type,
		ShowFrom:  in.ShowFrom,
		ShowUntil: in.ShowUntil,
		IsPinned:  in.IsPinned,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.announcements.Create(a); err != nil {
		return nil, err
	}
	return toResponse(a), nil
}

// List lista los anuncios del tenant del llamador. Los roles gestores ven
// todos; el resto solo los visibles ahora según su ventana de publicación.
func (uc *UseCase) List(callerID string, page dto.PageRequest) (*dto.AnnouncementListResponse, error) {
	caller, err := uc.guard.LoadProfile(callerID)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.announcements.ListByTenant(caller.TenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	manager := isPublisher(caller.Role)
	now := time.Now()
	items := make([]dto.AnnouncementResponse, 0, len(list))
	for _, a := range list {
		if !manager && !visibleAt(a, now) {
			continue
		}
		items = append(items, *toResponse(a))
	}
	return &dto.AnnouncementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Get devuelve un anuncio del tenant del llamador.
func (uc *UseCase) Get(callerID, announcementID string) (*dto.AnnouncementResponse, error) {
	caller, a, err := uc.load(callerID, announcementID)
	if err != nil {
		return nil, err
	}
	if !isPublisher(caller.Role) && !visibleAt(a, time.Now()) {
		return nil, domain.ErrNotFound
	}
	return toResponse(a), nil
}

// Update edita un anuncio. Solo roles gestores del mismo tenant.
func (uc *UseCase) Update(callerID, announcementID string, in dto.UpdateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	caller, a, err := uc.load(callerID, announcementID)
	if err != nil {
		return nil, err
	}
	if err := uc.guard.RequireRole(caller, publisherRoles...); err != nil {
		return nil, err
	}
	if in.Title != nil {
		a.Title = *in.Title
	}
	if in.Content != nil {
		a.Content = *in.Content
	}
	if in.Type != nil {
		a.Type = *in.Type
	}
	if in.ShowFrom != nil {
		a.ShowFrom = in.ShowFrom
	}
	if in.ShowUntil != nil {
		a.ShowUntil = in.ShowUntil
	}
	if in.IsPinned != nil {
		a.IsPinned = *in.IsPinned
	}
	if a.ShowFrom != nil && a.ShowUntil != nil && a.ShowUntil.Before(*a.ShowFrom) {
		return nil, domain.ErrInvalidInput
	}
	a.UpdatedAt = time.Now()
	if err := uc.announcements.Update(a); err != nil {
		return nil, err
	}
	return toResponse(a), nil
}

// Delete borra un anuncio junto con sus adjuntos en el blob store. El borrado
// de blobs es al mejor esfuerzo: un objeto huérfano no bloquea la operación.
func (uc *UseCase) Delete(ctx context.Context, callerID, announcementID string) error {
	caller, a, err := uc.load(callerID, announcementID)
	if err != nil {
		return err
	}
	if err := uc.guard.RequireRole(caller, publisherRoles...); err != nil {
		return err
	}
	for _, att := range a.Attachments {
		_ = uc.blobs.DeleteObject(ctx, att.Path)
	}
	return uc.announcements.Delete(a.ID)
}

// AddAttachment sube un adjunto al blob store, lo hace público y lo registra.
func (uc *UseCase) AddAttachment(ctx context.Context, callerID, announcementID, fileName string, data []byte, contentType string) (*dto.AnnouncementResponse, error) {
	caller, a, err := uc.load(callerID, announcementID)
	if err != nil {
		return nil, err
	}
	if err := uc.guard.RequireRole(caller, publisherRoles...); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, domain.ErrInvalidInput
	}
	attID := uuid.New().String()
	objPath := a.AttachmentPrefix() + attID + path.Ext(fileName)
	if err := uc.blobs.PutObject(ctx, objPath, data, contentType, map[string]string{
		"file_name":   fileName,
		"uploaded_by": caller.ID,
	}); err != nil {
		return nil, fmt.Errorf("subir adjunto: %w", err)
	}
	url, err := uc.blobs.MakePublic(ctx, objPath)
	if err != nil {
		return nil, fmt.Errorf("publicar adjunto: %w", err)
	}
	att := &entity.Attachment{
		ID:             attID,
		AnnouncementID: a.ID,
		FileName:       fileName,
		MimeType:       contentType,
		SizeBytes:      int64(len(data)),
		Path:           objPath,
		PublicURL:      url,
		CreatedAt:      time.Now(),
	}
	if err := uc.announcements.AddAttachment(att); err != nil {
		return nil, err
	}
	a.Attachments = append(a.Attachments, *att)
	return toResponse(a), nil
}

// DeleteAttachment elimina un adjunto: primero el blob, después el registro.
func (uc *UseCase) DeleteAttachment(ctx context.Context, callerID, announcementID, attachmentID string) error {
	caller, a, err := uc.load(callerID, announcementID)
	if err != nil {
		return err
	}
	if err := uc.guard.RequireRole(caller, publisherRoles...); err != nil {
		return err
	}
	att, err := uc.announcements.GetAttachment(attachmentID)
	if err != nil {
		return err
	}
	if att == nil || att.AnnouncementID != a.ID {
		return domain.ErrNotFound
	}
	_ = uc.blobs.DeleteObject(ctx, att.Path)
	return uc.announcements.DeleteAttachment(att.ID)
}

// load trae el anuncio y aplica el aislamiento de tenant.
func (uc *UseCase) load(callerID, announcementID string) (*entity.Profile, *entity.Announcement, error) {
	caller, err := uc.guard.LoadProfile(callerID)
	if err != nil {
		return nil, nil, err
	}
	a, err := uc.announcements.GetByID(announcementID)
	if err != nil {
		return nil, nil, err
	}
	if a == nil {
		return nil, nil, domain.ErrNotFound
	}
	if err := uc.guard.RequireSameTenant(a.TenantID, caller); err != nil {
		return nil, nil, err
	}
	return caller, a, nil
}

func isPublisher(role string) bool {
	for _, r := range publisherRoles {
		if r == role {
			return true
		}
	}
	return false
}

// visibleAt aplica la ventana de publicación del anuncio.
func visibleAt(a *entity.Announcement, now time.Time) bool {
	if a.ShowFrom != nil && now.Before(*a.ShowFrom) {
		return false
	}
	if a.ShowUntil != nil && now.After(*a.ShowUntil) {
		return false
	}
	return true
}

func toResponse(a *entity.Announcement) *dto.AnnouncementResponse {
	atts := make([]dto.AttachmentResponse, 0, len(a.Attachments))
	for _, att := range a.Attachments {
		atts = append(atts, dto.AttachmentResponse{
			ID:        att.ID,
			FileName:  att.FileName,
			MimeType:  att.MimeType,
			SizeBytes: att.SizeBytes,
			URL:       att.PublicURL,
			CreatedAt: att.CreatedAt,
		})
	}
	return &dto.AnnouncementResponse{
		ID:          a.ID,
		TenantID:    a.TenantID,
		CreatedBy:   a.CreatedBy,
		Title:       a.Title,
		Content:     a.Content,
		Type:        a.Type,
		ShowFrom:    a.ShowFrom,
		ShowUntil:   a.ShowUntil,
		IsPinned:    a.IsPinned,
		Attachments: atts,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
