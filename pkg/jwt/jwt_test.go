package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agromarket-api/pkg/jwt"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	id := jwt.Identity{UserID: 3, SupplierID: 9, Role: jwt.RoleSeller}
	tok, err := jwt.Generate("secret", id, "agromarket", 5)
	require.NoError(t, err)

	got, err := jwt.Parse("secret", tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := jwt.Generate("secret", jwt.Identity{UserID: 1, Role: jwt.RoleBuyer}, "agromarket", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := jwt.Generate("secret", jwt.Identity{UserID: 1, Role: jwt.RoleBuyer}, "agromarket", -1)
	require.NoError(t, err)

	_, err = jwt.Parse("secret", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", jwt.Identity{UserID: 1}, "agromarket", 5)
	assert.Error(t, err)
}
