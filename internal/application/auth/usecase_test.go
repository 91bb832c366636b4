package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/palletpro-api/internal/application/auth"
	"github.com/jhoicas/palletpro-api/internal/application/dto"
	"github.com/jhoicas/palletpro-api/internal/application/notification"
	"github.com/jhoicas/palletpro-api/internal/application/session"
	"github.com/jhoicas/palletpro-api/internal/domain"
	"github.com/jhoicas/palletpro-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/palletpro-api/pkg/jwt"
	"github.com/jhoicas/palletpro-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testSecret = "test-secret-key-for-unit-tests"

type fixture struct {
	uc       *auth.AuthUseCase
	sessions *session.Service
	feed     *notification.UseCase
	store    *memory.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := memory.NewSeededStore(0)
	require.NoError(t, err)
	sessions := session.NewService(memory.NewSessionStore(), time.Hour, logger.Nop())
	require.NoError(t, sessions.Init(context.Background()))
	notes := memory.NewNotificationStore()
	uc := auth.NewAuthUseCase(
		memory.NewUserRepository(store),
		memory.NewCustomerRepository(store),
		sessions,
		notification.NewDispatcher(notes, logger.Nop()),
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "palletpro-test"},
	)
	return &fixture{uc: uc, sessions: sessions, feed: notification.NewUseCase(notes), store: store}
}

func (f *fixture) titles(t *testing.T, userID string) []string {
	t.Helper()
	rows, err := f.feed.List(context.Background(), userID)
	require.NoError(t, err)
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Title)
	}
	return out
}

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_UsuarioDemoIniciaSesion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.uc.Login(ctx, dto.LoginRequest{Email: "  Sales@Example.com ", Password: memory.DemoPassword})
	require.NoError(t, err)
	assert.Equal(t, "salesperson", resp.User.Role)
	assert.Equal(t, "/sales", resp.Home)

	claims, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.SessionID, claims.SessionID)
	assert.Equal(t, resp.User.ID, claims.UserID)

	sess, err := f.sessions.Resolve(ctx, resp.SessionID)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "Jane Sales", sess.User.Name)

	assert.Equal(t, []string{"Login successful"}, f.titles(t, resp.User.ID))
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "admin@example.com", Password: "nope"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	adminID := memory.DeterministicID("user", "admin")
	assert.Equal(t, []string{"Login failed"}, f.titles(t, adminID))
}

func TestLogin_EmailDesconocido(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Login(context.Background(), dto.LoginRequest{Email: "ghost@example.com", Password: "password"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	users := memory.NewUserRepository(f.store)
	u, err := users.GetByEmail(ctx, "customer@example.com")
	require.NoError(t, err)
	u.IsActive = false
	require.NoError(t, users.Update(ctx, u))

	_, err = f.uc.Login(ctx, dto.LoginRequest{Email: "customer@example.com", Password: memory.DemoPassword})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Signup
// ──────────────────────────────────────────────────────────────────────────────

func TestSignup_ClienteCreaCuentaYSesion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.uc.Signup(ctx, dto.SignupRequest{
		Email: "new@buyer.example.com", Password: "supersecret", Name: "Nina Buyer", Role: "customer", Company: "Buyer LLC",
	})
	require.NoError(t, err)
	assert.Equal(t, "/customer", resp.Home)

	c, err := memory.NewCustomerRepository(f.store).GetByUserID(ctx, resp.User.ID)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Buyer LLC", c.Company)

	assert.Equal(t, []string{"Account created"}, f.titles(t, resp.User.ID))

	_, err = f.uc.Login(ctx, dto.LoginRequest{Email: "new@buyer.example.com", Password: "supersecret"})
	assert.NoError(t, err)
}

func TestSignup_EmailDuplicado(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Signup(context.Background(), dto.SignupRequest{
		Email: "ADMIN@example.com", Password: "supersecret", Name: "Otro", Role: "admin",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestSignup_RolFueraDeLaEnumeracion(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Signup(context.Background(), dto.SignupRequest{
		Email: "x@example.com", Password: "supersecret", Name: "X", Role: "superuser",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestSignup_EntradaInvalida(t *testing.T) {
	f := newFixture(t)
	cases := []dto.SignupRequest{
		{Email: "no-arroba", Password: "supersecret", Name: "X", Role: "admin"},
		{Email: "x@example.com", Password: "corta", Name: "X", Role: "admin"},
		{Email: "x@example.com", Password: "supersecret", Name: "  ", Role: "admin"},
	}
	for _, in := range cases {
		_, err := f.uc.Signup(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, in.Email)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Logout y perfil
// ──────────────────────────────────────────────────────────────────────────────

func TestLogout_CierraSesionYNotifica(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	resp, err := f.uc.Login(ctx, dto.LoginRequest{Email: "customer@example.com", Password: memory.DemoPassword})
	require.NoError(t, err)

	require.NoError(t, f.uc.Logout(ctx, resp.SessionID))
	sess, err := f.sessions.Resolve(ctx, resp.SessionID)
	require.NoError(t, err)
	assert.Nil(t, sess)
	assert.Equal(t, []string{"Logged out", "Login successful"}, f.titles(t, resp.User.ID))

	assert.NoError(t, f.uc.Logout(ctx, resp.SessionID), "logout repetido no falla")
}

func TestUpdateProfile_ActualizaNombreYSesion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	resp, err := f.uc.Login(ctx, dto.LoginRequest{Email: "customer@example.com", Password: memory.DemoPassword})
	require.NoError(t, err)

	out, err := f.uc.UpdateProfile(ctx, resp.SessionID, dto.UpdateProfileRequest{
		Name: strPtr("Johnny Customer"), Role: strPtr("customer"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Johnny Customer", out.Name)

	sess, err := f.sessions.Resolve(ctx, resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "Johnny Customer", sess.User.Name)
	assert.Contains(t, f.titles(t, resp.User.ID), "Profile updated")
}

func TestUpdateProfile_CambioDeRolRechazado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	resp, err := f.uc.Login(ctx, dto.LoginRequest{Email: "customer@example.com", Password: memory.DemoPassword})
	require.NoError(t, err)

	_, err = f.uc.UpdateProfile(ctx, resp.SessionID, dto.UpdateProfileRequest{
		Name: strPtr("Hacker"), Role: strPtr("admin"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	me, err := f.uc.Me(ctx, resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "John Customer", me.Name, "nada se modifica")
	assert.Equal(t, "customer", me.Role)
}

func TestUpdateProfile_EmailDeOtroUsuario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	resp, err := f.uc.Login(ctx, dto.LoginRequest{Email: "customer@example.com", Password: memory.DemoPassword})
	require.NoError(t, err)

	_, err = f.uc.UpdateProfile(ctx, resp.SessionID, dto.UpdateProfileRequest{Email: strPtr("sales@example.com")})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUpdateProfile_SinSesion(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.UpdateProfile(context.Background(), "inexistente", dto.UpdateProfileRequest{Name: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}
