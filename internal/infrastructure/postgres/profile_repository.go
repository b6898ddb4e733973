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

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo implementación del puerto ProfileRepository sobre PostgreSQL.
// El id de un perfil es siempre el id de su cuenta de identidad.
type ProfileRepo struct {
	pool *pgxpool.Pool
}

// NewProfileRepository construye el adaptador de persistencia para perfiles.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

const profileColumns = `id, email, first_name, last_name, role, tenant_id,
	building_id, apartment_number, phone, company_name, photo_url, created_at, updated_at`

// Create persiste un nuevo perfil.
func (r *ProfileRepo) Create(p *entity.Profile) error {
	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.pool.Exec(context.Background(), query,
		p.ID, p.Email, p.FirstName, p.LastName, p.Role, nullable(p.TenantID),
		p.BuildingID, p.ApartmentNumber, p.Phone, p.CompanyName, p.PhotoURL, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// GetByID obtiene un perfil por ID de cuenta.
func (r *ProfileRepo) GetByID(id string) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	row := r.pool.QueryRow(context.Background(), query, id)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// Update persiste los cambios de un perfil existente.
func (r *ProfileRepo) Update(p *entity.Profile) error {
	query := `
		UPDATE profiles SET
			email = $2, first_name = $3, last_name = $4, role = $5, tenant_id = $6,
			building_id = $7, apartment_number = $8, phone = $9, company_name = $10,
			photo_url = $11, updated_at = $12
		WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), query,
		p.ID, p.Email, p.FirstName, p.LastName, p.Role, nullable(p.TenantID),
		p.BuildingID, p.ApartmentNumber, p.Phone, p.CompanyName, p.PhotoURL, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByTenant lista los perfiles de un tenant.
func (r *ProfileRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Profile, error) {
	query := `
		SELECT ` + profileColumns + ` FROM profiles
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var out []*entity.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete elimina un perfil.
func (r *ProfileRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	var p entity.Profile
	var tenantID *string
	err := row.Scan(
		&p.ID, &p.Email, &p.FirstName, &p.LastName, &p.Role, &tenantID,
		&p.BuildingID, &p.ApartmentNumber, &p.Phone, &p.CompanyName, &p.PhotoURL,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if tenantID != nil {
		p.TenantID = *tenantID
	}
	return &p, nil
}
