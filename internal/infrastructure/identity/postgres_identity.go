// Package identity implementa el puerto IdentityAdapter sobre una tabla de
// cuentas en PostgreSQL con contraseñas bcrypt.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/google/uuid"
	"github.com/jhoicas/Condominio-api/internal/application/ports"
	"github.com/jhoicas/Condominio-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var _ ports.IdentityAdapter = (*PostgresIdentity)(nil)

// PostgresIdentity almacén de cuentas respaldado por PostgreSQL.
type PostgresIdentity struct {
	pool *pgxpool.Pool
}

// NewPostgresIdentity construye el adaptador de identidad.
func NewPostgresIdentity(pool *pgxpool.Pool) *PostgresIdentity {
	return &PostgresIdentity{pool: pool}
}

// CreateAccount crea una cuenta nueva y devuelve su id.
// Un email ya registrado produce ErrEmailAlreadyExists.
func (s *PostgresIdentity) CreateAccount(ctx context.Context, email, password, displayName string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	id := uuid.New().String()
	_, err = s.pool.Exec(ctx, `
		INSERT INTO accounts (id, email, password_hash, display_name, created_at)
		VALUES ($1, lower($2), $3, $4, $5)`,
		id, email, string(hash), displayName, time.Now(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", domain.ErrEmailAlreadyExists
		}
		return "", fmt.Errorf("insert account: %w", err)
	}
	return id, nil
}

// DeleteAccount borra una cuenta. Borrar una cuenta inexistente no es error:
// la baja tiene que ser idempotente para que la compensación pueda reintentarse.
func (s *PostgresIdentity) DeleteAccount(ctx context.Context, accountID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, accountID)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

// VerifyPassword comprueba credenciales y devuelve el id de la cuenta.
// Email desconocido y contraseña incorrecta son indistinguibles para el llamador.
func (s *PostgresIdentity) VerifyPassword(ctx context.Context, email, password string) (string, error) {
	var id, hash string
	err := s.pool.QueryRow(ctx,
		`SELECT id, password_hash FROM accounts WHERE email = lower($1)`, email,
	).Scan(&id, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrUnauthenticated
		}
		return "", fmt.Errorf("get account: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", domain.ErrUnauthenticated
	}
	return id, nil
}
