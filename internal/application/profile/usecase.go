// Package profile implementa las operaciones del dueño sobre su propio
// perfil: consulta, edición de campos no privilegiados y baja de la cuenta.
package profile

import (
	"context"
	"time"

	"github.com/jhoicas/Condominio-api/internal/application/dto"
	"github.com/jhoicas/Condominio-api/internal/application/guard"
	"github.com/jhoicas/Condominio-api/internal/application/provision"
	"github.com/jhoicas/Condominio-api/internal/domain/entity"
	"github.com/jhoicas/Condominio-api/internal/domain/repository"
)

// UseCase operaciones sobre el perfil propio.
type UseCase struct {
	profiles    repository.ProfileRepository
	guard       *guard.Guard
	provisioner *provision.Provisioner
}

// New construye el caso de uso.
func New(profiles repository.ProfileRepository, g *guard.Guard, prov *provision.Provisioner) *UseCase {
	return &UseCase{profiles: profiles, guard: g, provisioner: prov}
}

// Get devuelve el perfil del llamador.
func (uc *UseCase) Get(callerID string) (*dto.ProfileResponse, error) {
	caller, err := uc.guard.LoadProfile(callerID)
	if err != nil {
		return nil, err
	}
	return ToResponse(caller), nil
}

// Update edita los campos no privilegiados del perfil propio. Rol, tenant y
// edificio no se tocan por aquí: los fija el canje de invitación.
func (uc *UseCase) Update(callerID string, in dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	caller, err := uc.guard.LoadProfile(callerID)
	if err != nil {
		return nil, err
	}
	if in.FirstName != nil {
		caller.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		caller.LastName = *in.LastName
	}
	if in.Phone != nil {
		caller.Phone = *in.Phone
	}
	if in.CompanyName != nil {
		caller.CompanyName = *in.CompanyName
	}
	if in.PhotoURL != nil {
		caller.PhotoURL = *in.PhotoURL
	}
	caller.UpdatedAt = time.Now()
	if err := uc.profiles.Update(caller); err != nil {
		return nil, err
	}
	return ToResponse(caller), nil
}

// DeleteSelf da de baja la cuenta del llamador: primero la identidad, después
// el perfil, para que nunca quede una cuenta viva sin perfil detrás.
func (uc *UseCase) DeleteSelf(ctx context.Context, callerID string) error {
	caller, err := uc.guard.LoadProfile(callerID)
	if err != nil {
		return err
	}
	return uc.provisioner.Delete(ctx, caller.ID)
}

// ToResponse convierte un perfil de dominio a su DTO de salida.
func ToResponse(p *entity.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:              p.ID,
		Email:           p.Email,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Role:            p.Role,
		TenantID:        p.TenantID,
		BuildingID:      p.BuildingID,
		ApartmentNumber: p.ApartmentNumber,
		Phone:           p.Phone,
		CompanyName:     p.CompanyName,
		PhotoURL:        p.PhotoURL,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
