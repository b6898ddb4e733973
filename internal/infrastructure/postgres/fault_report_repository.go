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

var _ repository.FaultReportRepository = (*FaultReportRepo)(nil)

// FaultReportRepo implementación del puerto FaultReportRepository sobre PostgreSQL.
type FaultReportRepo struct {
	pool *pgxpool.Pool
}

// NewFaultReportRepository construye el adaptador de persistencia para partes de avería.
func NewFaultReportRepository(pool *pgxpool.Pool) *FaultReportRepo {
	return &FaultReportRepo{pool: pool}
}

const faultReportColumns = `id, tenant_id, building_id, created_by, title, description,
	location, urgency, status, image_paths, created_at, updated_at, updated_by,
	resolved_by, resolved_at`

// Create persiste una nueva parte.
func (r *FaultReportRepo) Create(rep *entity.FaultReport) error {
	query := `
		INSERT INTO fault_reports (` + faultReportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.pool.Exec(context.Background(), query,
		rep.ID, rep.TenantID, rep.BuildingID, rep.CreatedBy, rep.Title, rep.Description,
		rep.Location, rep.Urgency, rep.Status, rep.ImagePaths, rep.CreatedAt, rep.UpdatedAt, rep.UpdatedBy,
		rep.ResolvedBy, rep.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("insert fault report: %w", err)
	}
	return nil
}

// GetByID obtiene una parte por ID.
func (r *FaultReportRepo) GetByID(id string) (*entity.FaultReport, error) {
	query := `SELECT ` + faultReportColumns + ` FROM fault_reports WHERE id = $1`
	row := r.pool.QueryRow(context.Background(), query, id)
	rep, err := scanFaultReport(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fault report: %w", err)
	}
	return rep, nil
}

// Update persiste los cambios de una parte existente.
func (r *FaultReportRepo) Update(rep *entity.FaultReport) error {
	query := `
		UPDATE fault_reports SET
			title = $2, description = $3, location = $4, urgency = $5, status = $6,
			image_paths = $7, updated_at = $8, updated_by = $9,
			resolved_by = $10, resolved_at = $11
		WHERE id = $1`
	tag, err := r.pool.Exec(context.Background(), query,
		rep.ID, rep.Title, rep.Description, rep.Location, rep.Urgency, rep.Status,
		rep.ImagePaths, rep.UpdatedAt, rep.UpdatedBy,
		rep.ResolvedBy, rep.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("update fault report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByTenant lista las partes de un tenant, más recientes primero.
// limit <= 0 devuelve todas (lo usa el borrado en cascada del tenant).
func (r *FaultReportRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.FaultReport, error) {
	query := `
		SELECT ` + faultReportColumns + ` FROM fault_reports
		WHERE tenant_id = $1
		ORDER BY created_at DESC`
	args := []any{tenantID}
	if limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}
	return r.list(query, args...)
}

// ListByCreator lista las partes de un creador dentro de un tenant.
func (r *FaultReportRepo) ListByCreator(tenantID, creatorID string, limit, offset int) ([]*entity.FaultReport, error) {
	query := `
		SELECT ` + faultReportColumns + ` FROM fault_reports
		WHERE tenant_id = $1 AND created_by = $2
		ORDER BY created_at DESC`
	args := []any{tenantID, creatorID}
	if limit > 0 {
		query += ` LIMIT $3 OFFSET $4`
		args = append(args, limit, offset)
	}
	return r.list(query, args...)
}

// Delete elimina el documento de la parte.
func (r *FaultReportRepo) Delete(id string) error {
	_, err := r.pool.Exec(context.Background(), `DELETE FROM fault_reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete fault report: %w", err)
	}
	return nil
}

func (r *FaultReportRepo) list(query string, args ...any) ([]*entity.FaultReport, error) {
	rows, err := r.pool.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list fault reports: %w", err)
	}
	defer rows.Close()

	var out []*entity.FaultReport
	for rows.Next() {
		rep, err := scanFaultReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fault report: %w", err)
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func scanFaultReport(row pgx.Row) (*entity.FaultReport, error) {
	var rep entity.FaultReport
	err := row.Scan(
		&rep.ID, &rep.TenantID, &rep.BuildingID, &rep.CreatedBy, &rep.Title, &rep.Description,
		&rep.Location, &rep.Urgency, &rep.Status, &rep.ImagePaths,
		&rep.CreatedAt, &rep.UpdatedAt, &rep.UpdatedBy,
		&rep.ResolvedBy, &rep.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}
