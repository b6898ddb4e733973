// Package provision crea cuentas de identidad con su perfil asociado.
// El alta es en dos fases sin transacción compartida entre almacenes:
// primero la cuenta, después el perfil, con limpieza compensatoria si
// la segunda fase falla.
package provision

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Condominio-api/internal/application/ports"
	"github.com/jhoicas/Condominio-api/internal/domain/entity"
	"github.com/jhoicas/Condominio-api/internal/domain/repository"
	"github.com/jhoicas/Condominio-api/pkg/logger"
)

// Provisioner aprovisiona cuentas de identidad + perfiles.
type Provisioner struct {
	identity ports.IdentityAdapter
	profiles repository.ProfileRepository
	log      *logger.Logger
}

// New construye el provisioner.
func New(identity ports.IdentityAdapter, profiles repository.ProfileRepository, log *logger.Logger) *Provisioner {
	return &Provisioner{identity: identity, profiles: profiles, log: log}
}

// Create crea la cuenta de identidad y luego persiste el perfil con el id de
// la cuenta. Si el email ya tiene cuenta devuelve ErrEmailAlreadyExists.
// Si el perfil no se puede escribir, se intenta borrar la cuenta recién creada
// (best-effort); si la compensación también falla queda una cuenta huérfana,
// registrada como inconsistencia recuperable.
func (p *Provisioner) Create(ctx context.Context, email, password string, profile *entity.Profile) (string, error) {
	accountID, err := p.identity.CreateAccount(ctx, email, password, profile.DisplayName())
	if err != nil {
		return "", err
	}

	now := time.Now()
	profile.ID = accountID
	profile.Email = email
	profile.CreatedAt = now
	profile.UpdatedAt = now

	if err := p.profiles.Create(profile); err != nil {
		if delErr := p.identity.DeleteAccount(ctx, accountID); delErr != nil {
			p.log.Error().Err(delErr).
				Str("account_id", accountID).
				Str("email", email).
				Msg("cuenta huérfana: el perfil no se escribió y la compensación falló")
		} else {
			p.log.Warn().
				Str("account_id", accountID).
				Msg("perfil no escrito; cuenta de identidad compensada")
		}
		return "", fmt.Errorf("crear perfil: %w", err)
	}
	return accountID, nil
}

// Delete elimina la cuenta de identidad y después su perfil. Cuenta primero:
// si la operación se corta a la mitad, un segundo intento sigue encontrando
// el perfil y puede completar la limpieza.
func (p *Provisioner) Delete(ctx context.Context, accountID string) error {
	if err := p.identity.DeleteAccount(ctx, accountID); err != nil {
		return fmt.Errorf("eliminar cuenta: %w", err)
	}
	if err := p.profiles.Delete(accountID); err != nil {
		return fmt.Errorf("eliminar perfil: %w", err)
	}
	return nil
}
