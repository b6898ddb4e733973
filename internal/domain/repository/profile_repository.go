package repository

import "github.com/jhoicas/Condominio-api/internal/domain/entity"

// ProfileRepository define el puerto de persistencia para Profile (DIP).
type ProfileRepository interface {
	Create(profile *entity.Profile) error
	GetByID(id string) (*entity.Profile, error)
	Update(profile *entity.Profile) error
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Profile, error)
	Delete(id string) error
}
