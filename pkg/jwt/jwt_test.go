package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateYParse_RoundTrip(t *testing.T) {
	token, err := Generate("secreto", "user-42", "mistock", 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := Generate("secreto", "user-42", "mistock", 60)
	require.NoError(t, err)

	_, err = Parse("otro-secreto", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	token, err := Generate("secreto", "user-42", "mistock", -5)
	require.NoError(t, err)

	_, err = Parse("secreto", token)
	assert.Error(t, err)
}

func TestParse_Basura(t *testing.T) {
	_, err := Parse("secreto", "no-es-un-jwt")
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "user-42", "mistock", 60)
	assert.Error(t, err)

	_, err = Parse("", "lo-que-sea")
	assert.Error(t, err)
}
