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

var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo implementación del puerto TenantRepository sobre PostgreSQL.
type TenantRepo struct {
	pool *pgxpool.Pool
}

// NewTenantRepository construye el adaptador de persistencia para tenants.
func NewTenantRepository(pool *pgxpool.Pool) *TenantRepo {
	return &TenantRepo{pool: pool}
}

const tenantColumns = `id, name, address, city, postal_code, created_by_admin_id,
	is_active, is_registered, invite_code, invite_code_expires_at,
	contact_person, email, user_id, created_at, updated_at`

// Create persiste un nuevo tenant.
func (r *TenantRepo) Create(t *entity.Tenant) error {
	query := `
		INSERT INTO tenants (` + tenantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.pool.Exec(context.Background(), query,
		t.ID, t.Name, t.Address, t.City, t.PostalCode, t.CreatedByAdminID,
		t.IsActive, t.IsRegistered, t.InviteCode, t.InviteCodeExpiresAt,
		t.ContactPerson, t.Email, t.UserID, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// GetByID obtiene un tenant por ID.
func (r *TenantRepo) GetByID(id string) (*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	row := r.pool.QueryRow(context.Background(), query, id)
	t, err := scanTenant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return t, nil
}

// ListByAdmin lista los tenants creados por un admin, más recientes primero.
func (r *TenantRepo) ListByAdmin(adminID string, limit, offset int) ([]*entity.Tenant, error) {
	query := `
		SELECT ` + tenantColumns + ` FROM tenants
		WHERE created_by_admin_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, adminID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var out []*entity.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update persiste los cambios de un tenant existente.
func (r *TenantRepo) Update(t *entity.Tenant) error {
	query := `
		UPDATE tenants SET
			name = $2, address = $3, city = $4, postal_code = $5,
			is_active = $6, is_registered = $7,
			invite_code = $8, invite_code_expires_at = $9,
			contact_person = $10, email = $11, user_id = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), query,
		t.ID, t.Name, t.Address, t.City, t.PostalCode,
		t.IsActive, t.IsRegistered,
		t.InviteCode, t.InviteCodeExpiresAt,
		t.ContactPerson, t.Email, t.UserID, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el documento del tenant.
func (r *TenantRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM tenants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}
	return nil
}

func scanTenant(row pgx.Row) (*entity.Tenant, error) {
	var t entity.Tenant
	err := row.Scan(
		&t.ID, &t.Name, &t.Address, &t.City, &t.PostalCode, &t.CreatedByAdminID,
		&t.IsActive, &t.IsRegistered, &t.InviteCode, &t.InviteCodeExpiresAt,
		&t.ContactPerson, &t.Email, &t.UserID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
