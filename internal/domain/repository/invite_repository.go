package repository

import (
	"time"

	"github.com/jhoicas/Condominio-api/internal/domain/entity"
)

// InviteRepository define el puerto de persistencia para Invite (DIP).
type InviteRepository interface {
	Create(invite *entity.Invite) error
	GetByID(id string) (*entity.Invite, error)
	// GetUnusedByCode busca por código exacto entre los no usados.
	// Un código ya canjeado simplemente no aparece (nil, nil).
	GetUnusedByCode(code string) (*entity.Invite, error)
	// ListUnusedByTenantAndKind lista los no usados de un tenant y clase;
	// el filtro de expiración contra "ahora" lo aplica el llamador.
	ListUnusedByTenantAndKind(tenantID, kind string) ([]*entity.Invite, error)
	ListByTenantAndKind(tenantID, kind string) ([]*entity.Invite, error)
	ListByTenant(tenantID string) ([]*entity.Invite, error)
	// MarkUsed marca el código como usado solo si seguía sin usar (update condicional).
	// Devuelve false cuando otro canje concurrente ganó la carrera.
	MarkUsed(id, usedByUserID string, usedAt time.Time) (bool, error)
	Delete(id string) error
}
