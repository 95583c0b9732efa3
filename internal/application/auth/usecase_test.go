package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mistock-api/internal/application/apptest"
	"github.com/jhoicas/mistock-api/internal/application/dto"
	"github.com/jhoicas/mistock-api/internal/domain"
	"github.com/jhoicas/mistock-api/pkg/jwt"
)

func nuevoAuthUseCase(store *apptest.Store) *AuthUseCase {
	return NewAuthUseCase(&apptest.UserRepo{S: store}, JWTConfig{
		Secret:     "secreto-de-prueba",
		ExpMinutes: 60,
		Issuer:     "mistock",
	})
}

func TestRegister_Exitoso(t *testing.T) {
	store := apptest.NewStore()
	uc := nuevoAuthUseCase(store)

	out, err := uc.Register(dto.RegisterRequest{
		FullName: "Ana García",
		Email:    "ana@test.com",
		Password: "contraseña123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "ana@test.com", out.Email)
	require.Contains(t, store.Users, out.ID)
	hash := store.Users[out.ID].PasswordHash
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "contraseña123", hash, "el password nunca se guarda en claro")
}

func TestRegister_EmailDuplicado(t *testing.T) {
	store := apptest.NewStore()
	uc := nuevoAuthUseCase(store)

	_, err := uc.Register(dto.RegisterRequest{FullName: "Ana", Email: "ana@test.com", Password: "abc123"})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{FullName: "Otra Ana", Email: "ana@test.com", Password: "xyz789"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_CamposObligatorios(t *testing.T) {
	uc := nuevoAuthUseCase(apptest.NewStore())

	_, err := uc.Register(dto.RegisterRequest{Email: "ana@test.com", Password: "abc"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "falta full_name")

	_, err = uc.Register(dto.RegisterRequest{FullName: "Ana", Password: "abc"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "falta email")

	_, err = uc.Register(dto.RegisterRequest{FullName: "Ana", Email: "ana@test.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "falta password")
}

func TestLogin_RoundTrip(t *testing.T) {
	store := apptest.NewStore()
	uc := nuevoAuthUseCase(store)

	registrado, err := uc.Register(dto.RegisterRequest{FullName: "Ana", Email: "ana@test.com", Password: "abc123"})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@test.com", Password: "abc123"})
	require.NoError(t, err)
	assert.Equal(t, registrado.ID, out.User.ID)

	// El token transporta el owner id que delimita todo el inventario
	userID, err := jwt.Parse("secreto-de-prueba", out.Token)
	require.NoError(t, err)
	assert.Equal(t, registrado.ID, userID)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	store := apptest.NewStore()
	uc := nuevoAuthUseCase(store)

	_, err := uc.Register(dto.RegisterRequest{FullName: "Ana", Email: "ana@test.com", Password: "abc123"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@test.com", Password: "equivocado"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := nuevoAuthUseCase(apptest.NewStore())

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@test.com", Password: "abc"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
