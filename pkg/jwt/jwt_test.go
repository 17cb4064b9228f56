package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-dashboard-api/pkg/jwt"
)

func TestGenerateParse_ConservaRoles(t *testing.T) {
	token, err := jwt.Generate("secreto", "u-1", "Emi", []string{"closer", "setter"}, "test", 5)
	require.NoError(t, err)

	claims, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "Emi", claims.Name)
	assert.Equal(t, []string{"closer", "setter"}, claims.Roles)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secreto", "u-1", "Emi", []string{"closer"}, "test", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate("secreto", "u-1", "Emi", nil, "test", -1)
	require.NoError(t, err)

	_, err = jwt.Parse("secreto", token)
	assert.Error(t, err, "un token expirado debe rechazarse")
}

func TestGenerate_SinSecret(t *testing.T) {
	_, err := jwt.Generate("", "u-1", "Emi", nil, "test", 5)
	assert.Error(t, err)
}
