package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Condominio-api/internal/domain"
	"github.com/jhoicas/Condominio-api/internal/domain/entity"
	"github.com/jhoicas/Condominio-api/internal/domain/repository"
)

var _ repository.AnnouncementRepository = (*AnnouncementRepo)(nil)

// AnnouncementRepo implementación del puerto AnnouncementRepository sobre PostgreSQL.
type AnnouncementRepo struct {
	pool *pgxpool.Pool
}

// NewAnnouncementRepository construye el adaptador de persistencia para anuncios.
func NewAnnouncementRepository(pool *pgxpool.Pool) *AnnouncementRepo {
	return &AnnouncementRepo{pool: pool}
}

const announcementColumns = `id, tenant_id, created_by, title, content, type,
	show_from, show_until, is_pinned, created_at, updated_at`

const attachmentColumns = `id, announcement_id, file_name, mime_type, size_bytes,
	path, public_url, created_at`

// Create persiste un nuevo anuncio.
func (r *AnnouncementRepo) Create(a *entity.Announcement) error {
	query := `
		INSERT INTO announcements (` + announcementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(context.Background(), query,
		a.ID, a.TenantID, a.CreatedBy, a.Title, a.Content, a.Type,
		a.ShowFrom, a.ShowUntil, a.IsPinned, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert announcement: %w", err)
	}
	return nil
}

// GetByID obtiene un anuncio con sus adjuntos cargados.
func (r *AnnouncementRepo) GetByID(id string) (*entity.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE id = $1`
	row := r.pool.QueryRow(context.Background(), query, id)
	a, err := scanAnnouncement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get announcement: %w", err)
	}
	if err := r.loadAttachments(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update persiste los cambios de un anuncio existente.
func (r *AnnouncementRepo) Update(a *entity.Announcement) error {
	query := `
		UPDATE announcements SET
			title = $2, content = $3, type = $4,
			show_from = $5, show_until = $6, is_pinned = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), query,
		a.ID, a.Title, a.Content, a.Type,
		a.ShowFrom, a.ShowUntil, a.IsPinned, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update announcement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByTenant lista los anuncios de un tenant con sus adjuntos, fijados primero.
func (r *AnnouncementRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Announcement, error) {
	query := `
		SELECT ` + announcementColumns + ` FROM announcements
		WHERE tenant_id = $1
		ORDER BY is_pinned DESC, created_at DESC`
	args := []any{tenantID}
	if limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()

	var out []*entity.Announcement
	for rows.Next() {
		a, err := scanAnnouncement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan announcement: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, a := range out {
		if err := r.loadAttachments(a); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Delete elimina un anuncio; sus adjuntos caen por ON DELETE CASCADE.
func (r *AnnouncementRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	return nil
}

// AddAttachment registra un adjunto de un anuncio existente.
func (r *AnnouncementRepo) AddAttachment(att *entity.Attachment) error {
	query := `
		INSERT INTO announcement_attachments (` + attachmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(context.Background(), query,
		att.ID, att.AnnouncementID, att.FileName, att.MimeType, att.SizeBytes,
		att.Path, att.PublicURL, att.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert attachment: %w", err)
	}
	return nil
}

// GetAttachment obtiene un adjunto por ID.
func (r *AnnouncementRepo) GetAttachment(id string) (*entity.Attachment, error) {
	query := `SELECT ` + attachmentColumns + ` FROM announcement_attachments WHERE id = $1`
	var att entity.Attachment
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&att.ID, &att.AnnouncementID, &att.FileName, &att.MimeType, &att.SizeBytes,
		&att.Path, &att.PublicURL, &att.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get attachment: %w", err)
	}
	return &att, nil
}

// DeleteAttachment elimina el registro de un adjunto.
func (r *AnnouncementRepo) DeleteAttachment(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM announcement_attachments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	return nil
}

func (r *AnnouncementRepo) loadAttachments(a *entity.Announcement) error {
	rows, err := r.pool.Query(context.Background(), `
		SELECT `+attachmentColumns+` FROM announcement_attachments
		WHERE announcement_id = $1
		ORDER BY created_at`, a.ID)
	if err != nil {
		return fmt.Errorf("list attachments: %w", err)
	}
	defer rows.Close()

	a.Attachments = nil
	for rows.Next() {
		var att entity.Attachment
		err := rows.Scan(
			&att.ID, &att.AnnouncementID, &att.FileName, &att.MimeType, &att.SizeBytes,
			&att.Path, &att.PublicURL, &att.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("scan attachment: %w", err)
		}
		a.Attachments = append(a.Attachments, att)
	}
	return rows.Err()
}

func scanAnnouncement(row pgx.Row) (*entity.Announcement, error) {
	var a entity.Announcement
	err := row.Scan(
		&a.ID, &a.TenantID, &a.CreatedBy, &a.Title, &a.Content, &a.Type,
		&a.ShowFrom, &a.ShowUntil, &a.IsPinned, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
