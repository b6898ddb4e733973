// Package auth implementa el caso de uso de login: verifica credenciales en
// el almacén de identidad, carga el perfil y emite el JWT de sesión.
package auth

import (
	"context"

	"github.com/jhoicas/Condominio-api/internal/application/dto"
	"github.com/jhoicas/Condominio-api/internal/application/guard"
	"github.com/jhoicas/Condominio-api/internal/application/ports"
	"github.com/jhoicas/Condominio-api/internal/application/profile"
	"github.com/jhoicas/Condominio-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase caso de uso de autenticación.
type UseCase struct {
	identity ports.IdentityAdapter
	guard    *guard.Guard
	jwtCfg   JWTConfig
}

// New construye el caso de uso de auth.
func New(identity ports.IdentityAdapter, g *guard.Guard, jwtCfg JWTConfig) *UseCase {
	return &UseCase{identity: identity, guard: g, jwtCfg: jwtCfg}
}

// Login verifica email/password, exige un perfil completo detrás de la cuenta
// y retorna token + perfil. Una cuenta sin perfil no puede iniciar sesión.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	accountID, err := uc.identity.VerifyPassword(ctx, in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	p, err := uc.guard.LoadProfile(accountID)
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, p.ID, p.TenantID, p.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		Profile: *profile.ToResponse(p),
	}, nil
}
