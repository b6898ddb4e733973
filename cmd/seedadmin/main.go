// seedadmin crea la primera cuenta de plataforma con rol admin. Sin ella no
// hay quien cree tenants ni emita invitaciones fundacionales.
//
// Uso: go run ./cmd/seedadmin -email admin@ejemplo.com -password <secreto>
package main

import (
	"context"
	"flag"
	"time"

	"github.com/jhoicas/Condominio-api/internal/domain/entity"
	"github.com/jhoicas/Condominio-api/internal/infrastructure/identity"
	"github.com/jhoicas/Condominio-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Condominio-api/pkg/config"
	"github.com/jhoicas/Condominio-api/pkg/logger"
)

func main() {
	email := flag.String("email", "", "email de la cuenta admin")
	password := flag.String("password", "", "contraseña de la cuenta admin")
	firstName := flag.String("first-name", "Admin", "nombre")
	lastName := flag.String("last-name", "", "apellido")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	if *email == "" || *password == "" {
		log.Fatal().Msg("se requieren -email y -password")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	identityAdapter := identity.NewPostgresIdentity(pool)
	profileRepo := postgres.NewProfileRepository(pool)

	accountID, err := identityAdapter.CreateAccount(ctx, *email, *password, *firstName+" "+*lastName)
	if err != nil {
		log.Fatal().Err(err).Msg("crear cuenta")
	}

	now := time.Now()
	profile := &entity.Profile{
		ID:        accountID,
		Email:     *email,
		FirstName: *firstName,
		LastName:  *lastName,
		Role:      entity.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := profileRepo.Create(profile); err != nil {
		// Sin perfil la cuenta no sirve: deshacer para poder reintentar.
		_ = identityAdapter.DeleteAccount(ctx, accountID)
		log.Fatal().Err(err).Msg("crear perfil admin")
	}

	log.Info().Str("account_id", accountID).Str("email", *email).Msg("admin creado")
}
