package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Condominio-api/internal/domain"
	"github.com/jhoicas/Condominio-api/internal/domain/entity"
	"github.com/jhoicas/Condominio-api/internal/domain/repository"
)

var _ repository.InviteRepository = (*InviteRepo)(nil)

// InviteRepo implementación del puerto InviteRepository sobre PostgreSQL.
type InviteRepo struct {
	pool *pgxpool.Pool
}

// NewInviteRepository construye el adaptador de persistencia para invitaciones.
func NewInviteRepository(pool *pgxpool.Pool) *InviteRepo {
	return &InviteRepo{pool: pool}
}

const inviteColumns = `id, kind, code, tenant_id, created_by, is_used, expires_at,
	used_by_user_id, used_at, building_id, apartment_number, target_role, created_at`

// Create persiste una invitación. El índice único parcial sobre códigos sin
// usar convierte una colisión de código en ErrAlreadyExists.
func (r *InviteRepo) Create(inv *entity.Invite) error {
	query := `
		INSERT INTO invites (` + inviteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.pool.Exec(context.Background(), query,
		inv.ID, inv.Kind, inv.Code, inv.TenantID, inv.CreatedBy, inv.IsUsed, inv.ExpiresAt,
		nullable(inv.UsedByUserID), inv.UsedAt, inv.BuildingID, inv.ApartmentNumber, inv.TargetRole, inv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("insert invite: %w", err)
	}
	return nil
}

// GetByID obtiene una invitación por ID.
func (r *InviteRepo) GetByID(id string) (*entity.Invite, error) {
	return r.one(`SELECT `+inviteColumns+` FROM invites WHERE id = $1`, id)
}

// GetUnusedByCode busca por código exacto entre los no usados.
func (r *InviteRepo) GetUnusedByCode(code string) (*entity.Invite, error) {
	return r.one(`SELECT `+inviteColumns+` FROM invites WHERE code = $1 AND is_used = false`, code)
}

// ListUnusedByTenantAndKind lista los no usados de un tenant y clase.
func (r *InviteRepo) ListUnusedByTenantAndKind(tenantID, kind string) ([]*entity.Invite, error) {
	return r.list(`
		SELECT `+inviteColumns+` FROM invites
		WHERE tenant_id = $1 AND kind = $2 AND is_used = false
		ORDER BY created_at DESC`, tenantID, kind)
}

// ListByTenantAndKind lista todas las invitaciones de un tenant y clase.
func (r *InviteRepo) ListByTenantAndKind(tenantID, kind string) ([]*entity.Invite, error) {
	return r.list(`
		SELECT `+inviteColumns+` FROM invites
		WHERE tenant_id = $1 AND kind = $2
		ORDER BY created_at DESC`, tenantID, kind)
}

// ListByTenant lista todas las invitaciones de un tenant.
func (r *InviteRepo) ListByTenant(tenantID string) ([]*entity.Invite, error) {
	return r.list(`
		SELECT `+inviteColumns+` FROM invites
		WHERE tenant_id = $1
		ORDER BY created_at DESC`, tenantID)
}

// MarkUsed marca el código como usado solo si seguía sin usar. El WHERE con
// is_used = false es lo que cierra la carrera entre dos canjes simultáneos:
// exactamente un UPDATE afecta una fila.
func (r *InviteRepo) MarkUsed(id, usedByUserID string, usedAt time.Time) (bool, error) {
	tag, err := r.pool.Exec(context.Background(), `
		UPDATE invites SET is_used = true, used_by_user_id = $2, used_at = $3
		WHERE id = $1 AND is_used = false`,
		id, usedByUserID, usedAt,
	)
	if err != nil {
		return false, fmt.Errorf("mark invite used: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Delete elimina una invitación.
func (r *InviteRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM invites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invite: %w", err)
	}
	return nil
}

func (r *InviteRepo) one(query string, args ...any) (*entity.Invite, error) {
	row := r.pool.QueryRow(context.Background(), query, args...)
	inv, err := scanInvite(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invite: %w", err)
	}
	return inv, nil
}

func (r *InviteRepo) list(query string, args ...any) ([]*entity.Invite, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}
	defer rows.Close()

	var out []*entity.Invite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invite: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

func scanInvite(row pgx.Row) (*entity.Invite, error) {
	var inv entity.Invite
	var usedBy *string
	err := row.Scan(
		&inv.ID, &inv.Kind, &inv.Code, &inv.TenantID, &inv.CreatedBy, &inv.IsUsed, &inv.ExpiresAt,
		&usedBy, &inv.UsedAt, &inv.BuildingID, &inv.ApartmentNumber, &inv.TargetRole, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if usedBy != nil {
		inv.UsedByUserID = *usedBy
	}
	return &inv, nil
}

// nullable convierte cadena vacía en NULL para columnas con FK opcional.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
