package tenant

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/jhoicas/Condominio-api/internal/application/guard"
	"github.com/jhoicas/Condominio-api/internal/application/ports"
	"github.com/jhoicas/Condominio-api/internal/domain"
	"github.com/jhoicas/Condominio-api/internal/domain/entity"
	"github.com/jhoicas/Condominio-api/internal/domain/repository"
	"github.com/jhoicas/Condominio-api/pkg/logger"
)

// Lifecycle coordina el desmontaje en cascada de un tenant: cuentas,
// documentos y blobs, a través de almacenes sin transacción compartida.
// La política es best-effort por ítem: cada paso abanica su trabajo, espera
// a que termine, registra las fallas parciales y sigue. El resultado es
// "éxito" en cuanto el documento del tenant desaparece; una reinvocación
// es segura porque cada paso re-consulta el estado actual.
type Lifecycle struct {
	tenants       repository.TenantRepository
	invites       repository.InviteRepository
	profiles      repository.ProfileRepository
	reports       repository.FaultReportRepository
	announcements repository.AnnouncementRepository
	identity      ports.IdentityAdapter
	blobs         ports.BlobStore
	guard         *guard.Guard
	log           *logger.Logger
}

// NewLifecycle construye el coordinador de desmontaje.
func NewLifecycle(
	tenants repository.TenantRepository,
	invites repository.InviteRepository,
	profiles repository.ProfileRepository,
	reports repository.FaultReportRepository,
	announcements repository.AnnouncementRepository,
	identity ports.IdentityAdapter,
	blobs ports.BlobStore,
	g *guard.Guard,
	log *logger.Logger,
) *Lifecycle {
	return &Lifecycle{
		tenants:       tenants,
		invites:       invites,
		profiles:      profiles,
		reports:       reports,
		announcements: announcements,
		identity:      identity,
		blobs:         blobs,
		guard:         g,
		log:           log,
	}
}

// Delete elimina el tenant y todo su rastro. Solo el admin que lo creó.
// Las sub-fallas se registran y no se reportan al llamador; el error solo se
// devuelve si la autorización falla o el borrado final del tenant falla.
func (lc *Lifecycle) Delete(ctx context.Context, callerID, tenantID string) error {
	caller, err := lc.guard.Authorize(callerID, entity.RoleAdmin)
	if err != nil {
		return err
	}
	tn, err := lc.tenants.GetByID(tenantID)
	if err != nil {
		return err
	}
	if tn == nil {
		return domain.ErrNotFound
	}
	if tn.CreatedByAdminID != caller.ID {
		return domain.ErrForbidden
	}

	// Una cascada cancelada a medias deja un tenant parcialmente borrado,
	// que es seguro reinvocar; no se propaga la cancelación al abanico.
	ctx = context.WithoutCancel(ctx)

	failures := 0
	failures += lc.deleteInvitesOfKind(ctx, tenantID, entity.InviteKindResident)
	failures += lc.deleteFaultReports(ctx, tenantID)
	failures += lc.deleteInvitesOfKind(ctx, tenantID, entity.InviteKindManagement)
	failures += lc.deleteInvitesOfKind(ctx, tenantID, entity.InviteKindService)
	failures += lc.deleteAnnouncements(ctx, tenantID)
	failures += lc.deleteOwnerAccount(ctx, tn)
	failures += lc.deleteFoundingInvites(tenantID)

	if err := lc.tenants.Delete(tenantID); err != nil {
		return fmt.Errorf("eliminar tenant: %w", err)
	}

	lc.log.Info().
		Str("tenant_id", tenantID).
		Int("partial_failures", failures).
		Msg("tenant eliminado en cascada")
	return nil
}

// deleteInvitesOfKind paso de invitaciones de una clase: las usadas arrastran
// cuenta de identidad y perfil; las no usadas solo el registro del código.
func (lc *Lifecycle) deleteInvitesOfKind(ctx context.Context, tenantID, kind string) int {
	invites, err := lc.invites.ListByTenantAndKind(tenantID, kind)
	if err != nil {
		lc.log.Warn().Err(err).Str("kind", kind).Msg("no se pudieron listar invitaciones; paso omitido")
		return 1
	}
	tasks := make([]task, 0, len(invites))
	for _, inv := range invites {
		inv := inv
		tasks = append(tasks, task{
			desc: "invite " + inv.ID,
			fn: func() error {
				if inv.IsUsed && inv.UsedByUserID != "" {
					// Secuencia con dependencia de datos: cuenta, perfil, código.
					if err := lc.identity.DeleteAccount(ctx, inv.UsedByUserID); err != nil {
						return fmt.Errorf("cuenta %s: %w", inv.UsedByUserID, err)
					}
					if err := lc.profiles.Delete(inv.UsedByUserID); err != nil {
						return fmt.Errorf("perfil %s: %w", inv.UsedByUserID, err)
					}
				}
				return lc.invites.Delete(inv.ID)
			},
		})
	}
	return runStep(lc.log, "invites/"+kind, tasks)
}

// deleteFaultReports paso de partes de avería: primero los blobs bajo el
// prefijo de cada parte (fallas individuales toleradas), después el documento.
func (lc *Lifecycle) deleteFaultReports(ctx context.Context, tenantID string) int {
	reports, err := lc.reports.ListByTenant(tenantID, 0, 0)
	if err != nil {
		lc.log.Warn().Err(err).Msg("no se pudieron listar partes; paso omitido")
		return 1
	}
	var blobFailures atomic.Int64
	tasks := make([]task, 0, len(reports))
	for _, rep := range reports {
		rep := rep
		tasks = append(tasks, task{
			desc: "fault_report " + rep.ID,
			fn: func() error {
				blobFailures.Add(int64(lc.deleteBlobPrefix(ctx, rep.AttachmentPrefix())))
				return lc.reports.Delete(rep.ID)
			},
		})
	}
	return runStep(lc.log, "fault_reports", tasks) + int(blobFailures.Load())
}

// deleteAnnouncements paso de anuncios con sus adjuntos.
func (lc *Lifecycle) deleteAnnouncements(ctx context.Context, tenantID string) int {
	list, err := lc.announcements.ListByTenant(tenantID, 0, 0)
	if err != nil {
		lc.log.Warn().Err(err).Msg("no se pudieron listar anuncios; paso omitido")
		return 1
	}
	var blobFailures atomic.Int64
	tasks := make([]task, 0, len(list))
	for _, a := range list {
		a := a
		tasks = append(tasks, task{
			desc: "announcement " + a.ID,
			fn: func() error {
				blobFailures.Add(int64(lc.deleteBlobPrefix(ctx, a.AttachmentPrefix())))
				return lc.announcements.Delete(a.ID)
			},
		})
	}
	return runStep(lc.log, "announcements", tasks) + int(blobFailures.Load())
}

// deleteBlobPrefix borra todos los objetos bajo un prefijo, tolerando fallas
// individuales. Devuelve cuántas hubo.
func (lc *Lifecycle) deleteBlobPrefix(ctx context.Context, prefix string) int {
	objects, err := lc.blobs.ListByPrefix(ctx, prefix)
	if err != nil {
		lc.log.Warn().Err(err).Str("prefix", prefix).Msg("no se pudo listar el prefijo de blobs")
		return 1
	}
	failures := 0
	for _, obj := range objects {
		if err := lc.blobs.DeleteObject(ctx, obj.Path); err != nil {
			failures++
			lc.log.Warn().Err(err).Str("path", obj.Path).Msg("blob sin borrar; se continúa")
		}
	}
	return failures
}

// deleteOwnerAccount paso de la cuenta propietaria del tenant registrado.
func (lc *Lifecycle) deleteOwnerAccount(ctx context.Context, tn *entity.Tenant) int {
	if !tn.IsRegistered || tn.UserID == "" {
		return 0
	}
	failures := 0
	if err := lc.identity.DeleteAccount(ctx, tn.UserID); err != nil {
		failures++
		lc.log.Warn().Err(err).Str("account_id", tn.UserID).Msg("cuenta propietaria sin borrar")
	}
	if err := lc.profiles.Delete(tn.UserID); err != nil {
		failures++
		lc.log.Warn().Err(err).Str("account_id", tn.UserID).Msg("perfil propietario sin borrar")
	}
	return failures
}

// deleteFoundingInvites limpia los códigos fundacionales que queden (usados o no).
func (lc *Lifecycle) deleteFoundingInvites(tenantID string) int {
	invites, err := lc.invites.ListByTenantAndKind(tenantID, entity.InviteKindTenant)
	if err != nil {
		lc.log.Warn().Err(err).Msg("no se pudieron listar invitaciones fundacionales")
		return 1
	}
	failures := 0
	for _, inv := range invites {
		if err := lc.invites.Delete(inv.ID); err != nil {
			failures++
			lc.log.Warn().Err(err).Str("invite_id", inv.ID).Msg("invitación fundacional sin borrar")
		}
	}
	return failures
}
