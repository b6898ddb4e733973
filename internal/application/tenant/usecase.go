// Package tenant gestiona el ciclo de vida de los tenants (comunidades):
// alta como cascarón, administración por su admin creador y desmontaje en
// cascada de todo lo que les pertenece.
package tenant

import (
	"time"

	"github.com/jhoicas/Condominio-api/internal/application/dto"
	"github.com/jhoicas/Condominio-api/internal/application/guard"
	"github.com/jhoicas/Condominio-api/internal/domain"
	"github.com/jhoicas/Condominio-api/internal/domain/entity"
	"github.com/jhoicas/Condominio-api/internal/domain/repository"
	"github.com/google/uuid"
)

// UseCase casos de uso CRUD de tenants.
type UseCase struct {
	tenants repository.TenantRepository
	guard   *guard.Guard
}

// NewUseCase construye el caso de uso de tenants.
func NewUseCase(tenants repository.TenantRepository, g *guard.Guard) *UseCase {
	return &UseCase{tenants: tenants, guard: g}
}

// Create crea un tenant sin registrar. Solo administradores de plataforma.
func (uc *UseCase) Create(callerID string, in dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	caller, err := uc.guard.Authorize(callerID, entity.RoleAdmin)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	tn := &entity.Tenant{
		ID:               uuid.New().String(),
		Name:             in.Name,
		Address:          in.Address,
		City:             in.City,
		PostalCode:       in.PostalCode,
		CreatedByAdminID: caller.ID,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.tenants.Create(tn); err != nil {
		return nil, err
	}
	return toTenantResponse(tn), nil
}

// List lista los tenants creados por el admin llamador.
func (uc *UseCase) List(callerID string, page dto.PageRequest) (*dto.TenantListResponse, error) {
	caller, err := uc.guard.Authorize(callerID, entity.RoleAdmin)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	tenants, err := uc.tenants.ListByAdmin(caller.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TenantResponse, 0, len(tenants))
	for _, tn := range tenants {
		items = append(items, *toTenantResponse(tn))
	}
	return &dto.TenantListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Get devuelve un tenant. Lo ven su admin creador y los miembros del propio tenant.
func (uc *UseCase) Get(callerID, tenantID string) (*dto.TenantResponse, error) {
	caller, err := uc.guard.LoadProfile(callerID)
	if err != nil {
		return nil, err
	}
	tn, err := uc.tenants.GetByID(tenantID)
	if err != nil {
		return nil, err
	}
	if tn == nil {
		return nil, domain.ErrNotFound
	}
	if caller.Role == entity.RoleAdmin {
		if tn.CreatedByAdminID != caller.ID {
			return nil, domain.ErrForbidden
		}
	} else if err := uc.guard.RequireSameTenant(tn.ID, caller); err != nil {
		return nil, err
	}
	resp := toTenantResponse(tn)
	// El código de invitación solo lo ve el admin emisor.
	if caller.Role != entity.RoleAdmin {
		resp.InviteCode = ""
		resp.InviteCodeExpiresAt = nil
	}
	return resp, nil
}

// Update actualiza campos del tenant. Solo su admin creador.
// IsActive=false desactiva el tenant sin destruir nada.
func (uc *UseCase) Update(callerID, tenantID string, in dto.UpdateTenantRequest) (*dto.TenantResponse, error) {
	caller, err := uc.guard.Authorize(callerID, entity.RoleAdmin)
	if err != nil {
		return nil, err
	}
	tn, err := uc.tenants.GetByID(tenantID)
	if err != nil {
		return nil, err
	}
	if tn == nil {
		return nil, domain.ErrNotFound
	}
	if tn.CreatedByAdminID != caller.ID {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		tn.Name = *in.Name
	}
	if in.Address != nil {
		tn.Address = *in.Address
	}
	if in.City != nil {
		tn.City = *in.City
	}
	if in.PostalCode != nil {
		tn.PostalCode = *in.PostalCode
	}
	if in.ContactPerson != nil {
		tn.ContactPerson = *in.ContactPerson
	}
	if in.Email != nil {
		tn.Email = *in.Email
	}
	if in.IsActive != nil {
		tn.IsActive = *in.IsActive
	}
	tn.UpdatedAt = time.Now()
	if err := uc.tenants.Update(tn); err != nil {
		return nil, err
	}
	return toTenantResponse(tn), nil
}

func toTenantResponse(tn *entity.Tenant) *dto.TenantResponse {
	return &dto.TenantResponse{
		ID:                  tn.ID,
		Name:                tn.Name,
		Address:             tn.Address,
		City:                tn.City,
		PostalCode:          tn.PostalCode,
		IsActive:            tn.IsActive,
		IsRegistered:        tn.IsRegistered,
		InviteCode:          tn.InviteCode,
		InviteCodeExpiresAt: tn.InviteCodeExpiresAt,
		ContactPerson:       tn.ContactPerson,
		Email:               tn.Email,
		CreatedAt:           tn.CreatedAt,
		UpdatedAt:           tn.UpdatedAt,
	}
}
