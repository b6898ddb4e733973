package repository

import "github.com/jhoicas/Condominio-api/internal/domain/entity"

// TenantRepository define el puerto de persistencia para Tenant (DIP).
// La implementación vive en infrastructure.
type TenantRepository interface {
	Create(tenant *entity.Tenant) error
	GetByID(id string) (*entity.Tenant, error)
	ListByAdmin(adminID string, limit, offset int) ([]*entity.Tenant, error)
	Update(tenant *entity.Tenant) error
	Delete(id string) error
}
