// Package report implementa los casos de uso de partes de avería: alta por
// residentes, edición acotada por el creador y transiciones de estado
// gobernadas por el flujo del dominio.
package report

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/jhoicas/Condominio-api/internal/application/dto"
	"github.com/jhoicas/Condominio-api/internal/application/guard"
	"github.com/jhoicas/Condominio-api/internal/application/ports"
	"github.com/jhoicas/Condominio-api/internal/domain"
	"github.com/jhoicas/Condominio-api/internal/domain/entity"
	"github.com/jhoicas/Condominio-api/internal/domain/faultreport"
	"github.com/jhoicas/Condominio-api/internal/domain/repository"
	"github.com/google/uuid"
)

// UseCase casos de uso de partes de avería.
type UseCase struct {
	reports repository.FaultReportRepository
	guard   *guard.Guard
	blobs   ports.BlobStore
}

// New construye el caso de uso.
func New(reports repository.FaultReportRepository, g *guard.Guard, blobs ports.BlobStore) *UseCase {
	return &UseCase{reports: reports, guard: g, blobs: blobs}
}

// Create crea una parte. Solo residentes; el edificio sale de su perfil.
func (uc *UseCase) Create(callerID string, in dto.CreateFaultReportRequest) (*dto.FaultReportResponse, error) {
	caller, err := uc.guard.Authorize(callerID, entity.RoleResident)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	rep := &entity.FaultReport{
		ID:          uuid.New().String(),
		TenantID:    caller.TenantID,
		BuildingID:  caller.BuildingID,
		CreatedBy:   caller.ID,
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Urgency:     in.Urgency,
		Status:      entity.StatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
		UpdatedBy:   caller.ID,
	}
	if err := uc.reports.Create(rep); err != nil {
		return nil, err
	}
	return toResponse(rep), nil
}

// List lista partes del tenant del llamador. Los roles de flujo ven todas;
// un residente solo las suyas.
func (uc *UseCase) List(callerID string, page dto.PageRequest) (*dto.FaultReportListResponse, error) {
	caller, err := uc.guard.LoadProfile(callerID)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	var list []*entity.FaultReport
	if faultreport.IsWorkflowRole(caller.Role) {
		list, err = uc.reports.ListByTenant(caller.TenantID, page.Limit, page.Offset)
	} else if caller.Role == entity.RoleResident {
		list, err = uc.reports.ListByCreator(caller.TenantID, caller.ID, page.Limit, page.Offset)
	} else {
		return nil, domain.ErrForbidden
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.FaultReportResponse, 0, len(list))
	for _, rep := range list {
		items = append(items, *toResponse(rep))
	}
	return &dto.FaultReportListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Get devuelve una parte del mismo tenant. Un residente solo ve las propias.
func (uc *UseCase) Get(callerID, reportID string) (*dto.FaultReportResponse, error) {
	caller, rep, err := uc.load(callerID, reportID)
	if err != nil {
		return nil, err
	}
	if caller.Role == entity.RoleResident && rep.CreatedBy != caller.ID {
		return nil, domain.ErrForbidden
	}
	return toResponse(rep), nil
}

// Update edita la descripción. Solo el creador y solo mientras la parte está abierta.
func (uc *UseCase) Update(callerID, reportID string, in dto.UpdateFaultReportRequest) (*dto.FaultReportResponse, error) {
	caller, rep, err := uc.load(callerID, reportID)
	if err != nil {
		return nil, err
	}
	if rep.CreatedBy != caller.ID {
		return nil, domain.ErrForbidden
	}
	if rep.Status != entity.StatusOpen {
		return nil, domain.ErrConflict
	}
	if in.Description != nil {
		rep.Description = *in.Description
	}
	rep.UpdatedAt = time.Now()
	rep.UpdatedBy = caller.ID
	if err := uc.reports.Update(rep); err != nil {
		return nil, err
	}
	return toResponse(rep), nil
}

// AddImage adjunta una imagen bajo el prefijo de la parte. Mismas reglas que Update.
func (uc *UseCase) AddImage(ctx context.Context, callerID, reportID, fileName string, data []byte, contentType string) (*dto.FaultReportResponse, error) {
	caller, rep, err := uc.load(callerID, reportID)
	if err != nil {
		return nil, err
	}
	if rep.CreatedBy != caller.ID {
		return nil, domain.ErrForbidden
	}
	if rep.Status != entity.StatusOpen {
		return nil, domain.ErrConflict
	}
	if fileName == "" || len(data) == 0 {
		return nil, domain.ErrInvalidInput
	}
	blobPath := rep.AttachmentPrefix() + uuid.New().String() + path.Ext(fileName)
	if err := uc.blobs.PutObject(ctx, blobPath, data, contentType, map[string]string{
		"uploaded_by": caller.ID,
		"file_name":   fileName,
	}); err != nil {
		return nil, fmt.Errorf("subir imagen: %w", err)
	}
	rep.ImagePaths = append(rep.ImagePaths, blobPath)
	rep.UpdatedAt = time.Now()
	rep.UpdatedBy = caller.ID
	if err := uc.reports.Update(rep); err != nil {
		return nil, err
	}
	return toResponse(rep), nil
}

// AllowedStatuses estados alcanzables desde el estado actual para el llamador.
func (uc *UseCase) AllowedStatuses(callerID, reportID string) (*dto.AllowedStatusesResponse, error) {
	caller, rep, err := uc.load(callerID, reportID)
	if err != nil {
		return nil, err
	}
	allowed := faultreport.AllowedNext(rep.Status, caller.Role, rep.CreatedBy == caller.ID)
	if allowed == nil {
		allowed = []string{}
	}
	return &dto.AllowedStatusesResponse{Current: rep.Status, Allowed: allowed}, nil
}

// Transition aplica una transición de estado. La tabla del flujo se aplica
// también en el servidor: destino fuera de tabla → ErrConflict; llamador sin
// derecho a la transición → ErrForbidden.
func (uc *UseCase) Transition(callerID, reportID, target string) (*dto.FaultReportResponse, error) {
	caller, rep, err := uc.load(callerID, reportID)
	if err != nil {
		return nil, err
	}
	isCreator := rep.CreatedBy == caller.ID
	if !faultreport.IsWorkflowRole(caller.Role) && !(caller.Role == entity.RoleResident && isCreator) {
		return nil, domain.ErrForbidden
	}
	if !faultreport.CanTransition(rep.Status, target, caller.Role, isCreator) {
		// Un rol de flujo puede aplicar toda transición listada: si falló,
		// el destino no está en la tabla para el estado actual.
		if faultreport.IsWorkflowRole(caller.Role) {
			return nil, domain.ErrConflict
		}
		// El residente creador solo cancela donde está listado.
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	rep.Status = target
	rep.UpdatedAt = now
	rep.UpdatedBy = caller.ID
	// resolvedAt se estampa solo la primera vez que se entra en resolución.
	if faultreport.Resolves(target) && rep.ResolvedAt == nil {
		rep.ResolvedAt = &now
		rep.ResolvedBy = caller.ID
	}
	if err := uc.reports.Update(rep); err != nil {
		return nil, err
	}
	return toResponse(rep), nil
}

// load carga la parte aplicando aislamiento de tenant.
func (uc *UseCase) load(callerID, reportID string) (*entity.Profile, *entity.FaultReport, error) {
	caller, err := uc.guard.LoadProfile(callerID)
	if err != nil {
		return nil, nil, err
	}
	rep, err := uc.reports.GetByID(reportID)
	if err != nil {
		return nil, nil, err
	}
	if rep == nil {
		return nil, nil, domain.ErrNotFound
	}
	if err := uc.guard.RequireSameTenant(rep.TenantID, caller); err != nil {
		return nil, nil, err
	}
	return caller, rep, nil
}

func toResponse(rep *entity.FaultReport) *dto.FaultReportResponse {
	return &dto.FaultReportResponse{
		ID:          rep.ID,
		TenantID:    rep.TenantID,
		BuildingID:  rep.BuildingID,
		CreatedBy:   rep.CreatedBy,
		Title:       rep.Title,
		Description: rep.Description,
		Location:    rep.Location,
		Urgency:     rep.Urgency,
		Status:      rep.Status,
		ImagePaths:  rep.ImagePaths,
		CreatedAt:   rep.CreatedAt,
		UpdatedAt:   rep.UpdatedAt,
		UpdatedBy:   rep.UpdatedBy,
		ResolvedBy:  rep.ResolvedBy,
		ResolvedAt:  rep.ResolvedAt,
	}
}
