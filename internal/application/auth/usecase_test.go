package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmarte/equimed-api/internal/application/auth"
	"github.com/jmarte/equimed-api/internal/application/dto"
	"github.com/jmarte/equimed-api/internal/domain"
	"github.com/jmarte/equimed-api/internal/domain/entity"
	"github.com/jmarte/equimed-api/internal/testutil"
	pkgjwt "github.com/jmarte/equimed-api/pkg/jwt"
)

const testOrgID = "org-1"

var testJWTCfg = auth.JWTConfig{
	Secret:     "test-secret-key-for-unit-tests",
	ExpMinutes: 60,
	Issuer:     "equimed-test",
}

func newAuthUC() (*auth.AuthUseCase, *testutil.FakeUserRepo) {
	users := testutil.NewFakeUserRepo()
	orgs := testutil.NewFakeOrganizationRepo()
	_ = orgs.Create(&entity.Organization{
		ID:        testOrgID,
		Name:      "EquiMed Demo",
		IsActive:  true,
		CreatedAt: time.Now(),
	})
	return auth.NewAuthUseCase(users, orgs, testJWTCfg), users
}

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		OrganizationID: testOrgID,
		Email:          "ana@equimed.do",
		Password:       "clave-segura-123",
		FullName:       "Ana Pérez",
		Role:           entity.RoleAlmacen,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterUser(t *testing.T) {
	uc, users := newAuthUC()

	resp, err := uc.RegisterUser(registerRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, testOrgID, resp.OrganizationID)
	assert.Equal(t, entity.RoleAlmacen, resp.Role)
	assert.True(t, resp.IsActive)

	stored, err := users.GetByID(resp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "clave-segura-123", stored.PasswordHash,
		"la contraseña nunca se guarda en claro")
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.RegisterUser(registerRequest())
	require.NoError(t, err)

	_, err = uc.RegisterUser(registerRequest())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_OrganizacionInexistente(t *testing.T) {
	uc, _ := newAuthUC()

	in := registerRequest()
	in.OrganizationID = "org-fantasma"
	_, err := uc.RegisterUser(in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterUser_RolPorDefectoVendedor(t *testing.T) {
	uc, _ := newAuthUC()

	in := registerRequest()
	in.Role = ""
	resp, err := uc.RegisterUser(in)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, resp.Role)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin(t *testing.T) {
	uc, _ := newAuthUC()
	registered, err := uc.RegisterUser(registerRequest())
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "ana@equimed.do", Password: "clave-segura-123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	// El token lleva la identidad completa para el middleware.
	userID, organizationID, role, err := pkgjwt.Parse(testJWTCfg.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
	assert.Equal(t, testOrgID, organizationID)
	assert.Equal(t, entity.RoleAlmacen, role)

	assert.NotNil(t, resp.User.LastLogin, "el login debe registrar la última conexión")
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc, _ := newAuthUC()
	_, err := uc.RegisterUser(registerRequest())
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@equimed.do", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@equimed.do", Password: "lo-que-sea"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, users := newAuthUC()
	registered, err := uc.RegisterUser(registerRequest())
	require.NoError(t, err)

	stored, err := users.GetByID(registered.ID)
	require.NoError(t, err)
	stored.IsActive = false
	require.NoError(t, users.Update(stored))

	_, err = uc.Login(dto.LoginRequest{Email: "ana@equimed.do", Password: "clave-segura-123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
