package invitecode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Condominio-api/pkg/invitecode"
)

func TestGenerate_LargoYAlfabeto(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := invitecode.Generate()
		require.NoError(t, err)
		assert.Len(t, code, invitecode.Length, "el código debe tener 8 caracteres")
		for _, r := range code {
			assert.Contains(t, invitecode.Alphabet, string(r),
				"todos los caracteres deben ser A-Z o 0-9")
		}
	}
}

func TestGenerate_NoRepiteEnPocasMuestras(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		code, err := invitecode.Generate()
		require.NoError(t, err)
		assert.False(t, seen[code], "no se esperan colisiones en 200 muestras")
		seen[code] = true
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "AB12CD34", invitecode.Normalize("  ab12cd34 "))
	assert.Equal(t, "XYZ", invitecode.Normalize("xyz"))
}

func TestIsPlausible(t *testing.T) {
	assert.True(t, invitecode.IsPlausible("AB12CD34"))
	assert.True(t, invitecode.IsPlausible("ABCDEF")) // mínimo 6
	assert.False(t, invitecode.IsPlausible("AB12"))  // muy corto
	assert.False(t, invitecode.IsPlausible("AB12CD3!"))
	assert.False(t, invitecode.IsPlausible("ab12cd34"), "IsPlausible espera entrada ya normalizada")
}
