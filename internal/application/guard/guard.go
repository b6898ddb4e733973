// Package guard centraliza la autorización: resolución del perfil del llamador,
// listas de roles permitidos y aislamiento por tenant. Toda operación privilegiada
// pasa por aquí antes de leer, mutar o exponer un documento con tenant.
package guard

import (
	"github.com/jhoicas/Condominio-api/internal/domain"
	"github.com/jhoicas/Condominio-api/internal/domain/entity"
	"github.com/jhoicas/Condominio-api/internal/domain/repository"
)

// Guard resuelve y valida la identidad del llamador contra su perfil persistido.
type Guard struct {
	profiles repository.ProfileRepository
}

// New construye el guard.
func New(profiles repository.ProfileRepository) *Guard {
	return &Guard{profiles: profiles}
}

// RequireCaller falla con ErrUnauthenticated si no hay id de llamador verificado.
func (g *Guard) RequireCaller(callerID string) error {
	if callerID == "" {
		return domain.ErrUnauthenticated
	}
	return nil
}

// LoadProfile carga el perfil del llamador. Un perfil ausente o incompleto
// (sin rol, o sin tenant para roles no admin) nunca es válido a medias:
// falla con ErrForbidden.
func (g *Guard) LoadProfile(callerID string) (*entity.Profile, error) {
	if err := g.RequireCaller(callerID); err != nil {
		return nil, err
	}
	p, err := g.profiles.GetByID(callerID)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsComplete() {
		return nil, domain.ErrForbidden
	}
	return p, nil
}

// RequireRole falla con ErrForbidden si el rol del perfil no está en la lista.
func (g *Guard) RequireRole(p *entity.Profile, allowed ...string) error {
	for _, r := range allowed {
		if p.Role == r {
			return nil
		}
	}
	return domain.ErrForbidden
}

// RequireSameTenant falla con ErrForbidden si el recurso pertenece a otro tenant.
// No hay excepciones por rol: la fuga entre tenants es el único invariante
// que este componente existe para garantizar.
func (g *Guard) RequireSameTenant(resourceTenantID string, p *entity.Profile) error {
	if resourceTenantID == "" || p.TenantID != resourceTenantID {
		return domain.ErrForbidden
	}
	return nil
}

// Authorize combina LoadProfile + RequireRole para el caso común de los use cases.
func (g *Guard) Authorize(callerID string, allowed ...string) (*entity.Profile, error) {
	p, err := g.LoadProfile(callerID)
	if err != nil {
		return nil, err
	}
	if len(allowed) > 0 {
		if err := g.RequireRole(p, allowed...); err != nil {
			return nil, err
		}
	}
	return p, nil
}
