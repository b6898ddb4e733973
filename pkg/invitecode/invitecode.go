package invitecode

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// Alphabet caracteres permitidos en un código de invitación (mayúsculas + dígitos, base 36).
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length longitud fija de los códigos generados.
const Length = 8

// MinLength longitud mínima aceptada al validar entrada de usuario.
const MinLength = 6

// Generate produce un código aleatorio de 8 caracteres A-Z0-9 usando crypto/rand.
func Generate() (string, error) {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generar código: %w", err)
	}
	out := make([]byte, Length)
	for i, b := range buf {
		out[i] = Alphabet[int(b)%len(Alphabet)]
	}
	return string(out), nil
}

// Normalize limpia la entrada del usuario: recorta espacios y pasa a mayúsculas.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsPlausible indica si el texto normalizado tiene pinta de código (largo mínimo y alfabeto).
// No consulta almacenamiento; solo descarta basura antes de tocar la DB.
func IsPlausible(code string) bool {
	if len(code) < MinLength {
		return false
	}
	for _, r := range code {
		if !strings.ContainsRune(Alphabet, r) {
			return false
		}
	}
	return true
}
