package repository

import "github.com/jhoicas/Condominio-api/internal/domain/entity"

// FaultReportRepository define el puerto de persistencia para FaultReport (DIP).
type FaultReportRepository interface {
	Create(report *entity.FaultReport) error
	GetByID(id string) (*entity.FaultReport, error)
	Update(report *entity.FaultReport) error
	ListByTenant(tenantID string, limit, offset int) ([]*entity.FaultReport, error)
	ListByCreator(tenantID, creatorID string, limit, offset int) ([]*entity.FaultReport, error)
	Delete(id string) error
}
