// Package invite implementa la emisión, validación y canje de códigos de
// invitación: la única puerta de entrada de cuentas subordinadas a un tenant.
package invite

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Condominio-api/internal/application/dto"
	"github.com/jhoicas/Condominio-api/internal/application/guard"
	"github.com/jhoicas/Condominio-api/internal/application/provision"
	"github.com/jhoicas/Condominio-api/internal/domain"
	"github.com/jhoicas/Condominio-api/internal/domain/entity"
	"github.com/jhoicas/Condominio-api/internal/domain/repository"
	"github.com/jhoicas/Condominio-api/pkg/invitecode"
	"github.com/jhoicas/Condominio-api/pkg/logger"
	"github.com/google/uuid"
)

// UseCase casos de uso de invitaciones.
type UseCase struct {
	invites     repository.InviteRepository
	tenants     repository.TenantRepository
	guard       *guard.Guard
	provisioner *provision.Provisioner
	log         *logger.Logger
	now         func() time.Time // inyectable en tests
}

// New construye el caso de uso de invitaciones.
func New(invites repository.InviteRepository, tenants repository.TenantRepository,
	g *guard.Guard, prov *provision.Provisioner, log *logger.Logger) *UseCase {
	return &UseCase{
		invites:     invites,
		tenants:     tenants,
		guard:       g,
		provisioner: prov,
		log:         log,
		now:         time.Now,
	}
}

// WithClock reemplaza el reloj (solo tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// ─────────────────────────────────────────────────────────────────────────────
// Emisión
// ─────────────────────────────────────────────────────────────────────────────

// GenerateTenantInvite emite la invitación fundacional de un tenant.
// Solo el administrador que creó el tenant puede emitirla; un tenant ya
// registrado no admite más invitaciones fundacionales.
func (uc *UseCase) GenerateTenantInvite(callerID, tenantID string) (*dto.InviteResponse, error) {
	caller, err := uc.guard.Authorize(callerID, entity.RoleAdmin)
	if err != nil {
		return nil, err
	}
	tenant, err := uc.tenants.GetByID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	if tenant.CreatedByAdminID != caller.ID {
		return nil, domain.ErrForbidden
	}
	if tenant.IsRegistered {
		return nil, domain.ErrAlreadyExists
	}

	// Regenerar sustituye el código vigente: los fundacionales sin usar
	// anteriores se eliminan para que nunca haya dos códigos válidos.
	previous, err := uc.invites.ListUnusedByTenantAndKind(tenantID, entity.InviteKindTenant)
	if err != nil {
		return nil, err
	}
	for _, old := range previous {
		if err := uc.invites.Delete(old.ID); err != nil {
			return nil, err
		}
	}

	inv, err := uc.newInvite(entity.InviteKindTenant, tenantID, caller.ID)
	if err != nil {
		return nil, err
	}
	if err := uc.invites.Create(inv); err != nil {
		return nil, err
	}

	// Espejo en el documento del tenant para vista rápida del administrador.
	tenant.InviteCode = inv.Code
	exp := inv.ExpiresAt
	tenant.InviteCodeExpiresAt = &exp
	tenant.UpdatedAt = uc.now()
	if err := uc.tenants.Update(tenant); err != nil {
		return nil, err
	}
	return toInviteResponse(inv), nil
}

// GenerateResidentInvite emite una invitación de residente para un edificio y
// apartamento concretos. No aplica regla de "una activa": cada residente
// recibe su propio código.
func (uc *UseCase) GenerateResidentInvite(callerID string, in dto.GenerateInviteRequest) (*dto.InviteResponse, error) {
	caller, err := uc.guard.Authorize(callerID, entity.RoleHousingCompany, entity.RolePropertyManager)
	if err != nil {
		return nil, err
	}
	if in.BuildingID == "" || in.ApartmentNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	inv, err := uc.newInvite(entity.InviteKindResident, caller.TenantID, caller.ID)
	if err != nil {
		return nil, err
	}
	inv.BuildingID = in.BuildingID
	inv.ApartmentNumber = in.ApartmentNumber
	if err := uc.invites.Create(inv); err != nil {
		return nil, err
	}
	return toInviteResponse(inv), nil
}

// GenerateManagementInvite emite una invitación de administración
// (property_manager por defecto, o maintenance). Regla de una activa por
// tenant: si ya existe una vigente se devuelve tal cual, sin crear duplicado.
func (uc *UseCase) GenerateManagementInvite(callerID string, in dto.GenerateInviteRequest) (*dto.InviteResponse, error) {
	caller, err := uc.guard.Authorize(callerID, entity.RoleHousingCompany)
	if err != nil {
		return nil, err
	}
	if existing, err := uc.firstActive(caller.TenantID, entity.InviteKindManagement); err != nil {
		return nil, err
	} else if existing != nil {
		return toInviteResponse(existing), nil
	}

	targetRole := in.TargetRole
	if targetRole == "" {
		targetRole = entity.RolePropertyManager
	}
	if targetRole != entity.RolePropertyManager && targetRole != entity.RoleMaintenance {
		return nil, domain.ErrInvalidInput
	}
	// Un property_manager opera sobre un edificio concreto; sin edificio el
	// perfil canjeado quedaría huérfano.
	if entity.RequiresBuilding(targetRole) && in.BuildingID == "" {
		return nil, domain.ErrInvalidInput
	}
	inv, err := uc.newInvite(entity.InviteKindManagement, caller.TenantID, caller.ID)
	if err != nil {
		return nil, err
	}
	inv.TargetRole = targetRole
	inv.BuildingID = in.BuildingID
	if err := uc.invites.Create(inv); err != nil {
		return nil, err
	}
	return toInviteResponse(inv), nil
}

// GenerateServiceInvite emite una invitación de empresa de servicios.
// Misma regla de una activa por tenant que management.
func (uc *UseCase) GenerateServiceInvite(callerID string) (*dto.InviteResponse, error) {
	caller, err := uc.guard.Authorize(callerID, entity.RoleHousingCompany, entity.RolePropertyManager)
	if err != nil {
		return nil, err
	}
	if existing, err := uc.firstActive(caller.TenantID, entity.InviteKindService); err != nil {
		return nil, err
	} else if existing != nil {
		return toInviteResponse(existing), nil
	}
	inv, err := uc.newInvite(entity.InviteKindService, caller.TenantID, caller.ID)
	if err != nil {
		return nil, err
	}
	if err := uc.invites.Create(inv); err != nil {
		return nil, err
	}
	return toInviteResponse(inv), nil
}

// firstActive devuelve la primera invitación vigente del tenant y clase, o nil.
// El almacén no filtra contra "ahora": la expiración se evalúa aquí.
func (uc *UseCase) firstActive(tenantID, kind string) (*entity.Invite, error) {
	unused, err := uc.invites.ListUnusedByTenantAndKind(tenantID, kind)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	for _, inv := range unused {
		if inv.IsActive(now) {
			return inv, nil
		}
	}
	return nil, nil
}

func (uc *UseCase) newInvite(kind, tenantID, createdBy string) (*entity.Invite, error) {
	code, err := invitecode.Generate()
	if err != nil {
		return nil, err
	}
	now := uc.now()
	return &entity.Invite{
		ID:        uuid.New().String(),
		Kind:      kind,
		Code:      code,
		TenantID:  tenantID,
		CreatedBy: createdBy,
		ExpiresAt: now.Add(entity.InviteTTL),
		CreatedAt: now,
	}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Listado y borrado
// ─────────────────────────────────────────────────────────────────────────────

// List lista las invitaciones del tenant del llamador, opcionalmente por clase.
func (uc *UseCase) List(callerID, kind string) ([]dto.InviteResponse, error) {
	caller, err := uc.guard.Authorize(callerID, entity.RoleHousingCompany, entity.RolePropertyManager)
	if err != nil {
		return nil, err
	}
	var invites []*entity.Invite
	if kind != "" {
		invites, err = uc.invites.ListByTenantAndKind(caller.TenantID, kind)
	} else {
		invites, err = uc.invites.ListByTenant(caller.TenantID)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.InviteResponse, 0, len(invites))
	for _, inv := range invites {
		out = append(out, *toInviteResponse(inv))
	}
	return out, nil
}

// Delete elimina una invitación individual del tenant del llamador.
func (uc *UseCase) Delete(callerID, inviteID string) error {
	caller, err := uc.guard.Authorize(callerID, entity.RoleHousingCompany, entity.RolePropertyManager)
	if err != nil {
		return err
	}
	inv, err := uc.invites.GetByID(inviteID)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	if err := uc.guard.RequireSameTenant(inv.TenantID, caller); err != nil {
		return err
	}
	return uc.invites.Delete(inv.ID)
}

// ─────────────────────────────────────────────────────────────────────────────
// Validación y canje
// ─────────────────────────────────────────────────────────────────────────────

// Validate comprueba un código sin mutar estado: es el preview pre-registro,
// idempotente y libre de efectos. Devuelve datos denormalizados del tenant.
func (uc *UseCase) Validate(code string) (*dto.InviteSummary, error) {
	inv, tenant, err := uc.lookup(code)
	if err != nil {
		return nil, err
	}
	return &dto.InviteSummary{
		Kind:            inv.Kind,
		TenantID:        tenant.ID,
		TenantName:      tenant.Name,
		TenantAddress:   tenant.Address,
		TenantCity:      tenant.City,
		TenantPostal:    tenant.PostalCode,
		BuildingID:      inv.BuildingID,
		ApartmentNumber: inv.ApartmentNumber,
		Role:            roleForInvite(inv),
		ExpiresAt:       inv.ExpiresAt,
	}, nil
}

// lookup aplica las comprobaciones comunes de validate/redeem.
func (uc *UseCase) lookup(code string) (*entity.Invite, *entity.Tenant, error) {
	normalized := invitecode.Normalize(code)
	if !invitecode.IsPlausible(normalized) {
		return nil, nil, domain.ErrInvalidInput
	}
	inv, err := uc.invites.GetUnusedByCode(normalized)
	if err != nil {
		return nil, nil, err
	}
	if inv == nil {
		return nil, nil, domain.ErrNotFound
	}
	if !inv.ExpiresAt.After(uc.now()) {
		return nil, nil, domain.ErrInviteExpired
	}
	tenant, err := uc.tenants.GetByID(inv.TenantID)
	if err != nil {
		return nil, nil, err
	}
	if tenant == nil {
		return nil, nil, domain.ErrNotFound
	}
	if inv.Kind == entity.InviteKindTenant && tenant.IsRegistered {
		return nil, nil, domain.ErrAlreadyExists
	}
	return inv, tenant, nil
}

// Redeem canjea un código: repite las comprobaciones de Validate, aprovisiona
// la cuenta + perfil y marca el código como usado con un update condicional.
// Si otro canje concurrente gana la carrera, el perdedor recibe ErrConflict y
// su cuenta recién creada se compensa.
func (uc *UseCase) Redeem(ctx context.Context, in dto.RedeemInviteRequest) (*dto.RedeemInviteResponse, error) {
	inv, tenant, err := uc.lookup(in.Code)
	if err != nil {
		return nil, err
	}

	role := roleForInvite(inv)
	profile := &entity.Profile{
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Role:            role,
		TenantID:        inv.TenantID,
		BuildingID:      inv.BuildingID,
		ApartmentNumber: inv.ApartmentNumber,
		Phone:           in.Phone,
		CompanyName:     in.CompanyName,
	}
	accountID, err := uc.provisioner.Create(ctx, in.Email, in.Password, profile)
	if err != nil {
		return nil, err
	}

	ok, err := uc.invites.MarkUsed(inv.ID, accountID, uc.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		// Canje concurrente: el código ya fue consumido entre la validación
		// y la escritura. Compensar la cuenta del perdedor.
		if delErr := uc.provisioner.Delete(ctx, accountID); delErr != nil {
			uc.log.Error().Err(delErr).Str("account_id", accountID).
				Msg("canje perdedor sin compensar; cuenta posiblemente huérfana")
		}
		return nil, domain.ErrConflict
	}

	if inv.Kind == entity.InviteKindTenant {
		if err := uc.registerTenant(tenant, accountID, in); err != nil {
			return nil, err
		}
	}

	uc.log.Info().
		Str("invite_id", inv.ID).
		Str("kind", inv.Kind).
		Str("tenant_id", inv.TenantID).
		Str("account_id", accountID).
		Msg("invitación canjeada")

	return &dto.RedeemInviteResponse{AccountID: accountID, TenantID: inv.TenantID, Role: role}, nil
}

// registerTenant marca el tenant como registrado exactamente una vez.
func (uc *UseCase) registerTenant(tenant *entity.Tenant, ownerID string, in dto.RedeemInviteRequest) error {
	tenant.IsRegistered = true
	tenant.ContactPerson = in.FirstName + " " + in.LastName
	tenant.Email = in.Email
	tenant.UserID = ownerID
	tenant.InviteCode = ""
	tenant.InviteCodeExpiresAt = nil
	tenant.UpdatedAt = uc.now()
	if err := uc.tenants.Update(tenant); err != nil {
		return fmt.Errorf("registrar tenant: %w", err)
	}
	return nil
}

// roleForInvite rol que produce el canje según la clase del código.
func roleForInvite(inv *entity.Invite) string {
	switch inv.Kind {
	case entity.InviteKindTenant:
		return entity.RoleHousingCompany
	case entity.InviteKindResident:
		return entity.RoleResident
	case entity.InviteKindManagement:
		if inv.TargetRole != "" {
			return inv.TargetRole
		}
		return entity.RolePropertyManager
	case entity.InviteKindService:
		return entity.RoleServiceCompany
	}
	return ""
}

func toInviteResponse(inv *entity.Invite) *dto.InviteResponse {
	return &dto.InviteResponse{
		ID:              inv.ID,
		Kind:            inv.Kind,
		Code:            inv.Code,
		TenantID:        inv.TenantID,
		IsUsed:          inv.IsUsed,
		ExpiresAt:       inv.ExpiresAt,
		UsedByUserID:    inv.UsedByUserID,
		UsedAt:          inv.UsedAt,
		BuildingID:      inv.BuildingID,
		ApartmentNumber: inv.ApartmentNumber,
		TargetRole:      inv.TargetRole,
		CreatedAt:       inv.CreatedAt,
	}
}
