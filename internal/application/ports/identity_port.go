package ports

import "context"

// IdentityAdapter define el puerto de salida hacia el almacén de identidad
// (cuentas autenticables por email + password). Siguiendo DIP, la aplicación
// solo conoce este contrato; el adaptador concreto vive en infrastructure.
type IdentityAdapter interface {
	// CreateAccount crea una cuenta y devuelve su id estable.
	// Devuelve domain.ErrEmailAlreadyExists si el email ya tiene cuenta.
	CreateAccount(ctx context.Context, email, password, displayName string) (string, error)
	// DeleteAccount elimina una cuenta. "Cuenta inexistente" se trata como
	// ya-satisfecho y no es error.
	DeleteAccount(ctx context.Context, id string) error
	// VerifyPassword comprueba credenciales y devuelve el id de la cuenta.
	// Devuelve domain.ErrUnauthenticated si no coinciden.
	VerifyPassword(ctx context.Context, email, password string) (string, error)
}
