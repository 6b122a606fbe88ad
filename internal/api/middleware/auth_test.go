package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gourmetcare/platform/internal/core/domain"
	"github.com/gourmetcare/platform/internal/core/service"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.Email] = u
	}
	return r
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) { return u, nil }
func (r *stubUserRepo) FindByID(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) { return nil, nil }
func (r *stubUserRepo) Update(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}
func (r *stubUserRepo) UpdateRole(_ context.Context, _ string, _ domain.Role) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (r *stubUserRepo) Delete(_ context.Context, _ string) error { return nil }

func alice() *domain.User {
	return &domain.User{ID: "1", Email: "alice@example.com", Role: domain.RoleAdmin}
}

func signToken(t *testing.T, tokens *service.TokenService, identifier string) string {
	t.Helper()
	token, err := tokens.Issue(identifier)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func runAuth(t *testing.T, req *http.Request, tokens *service.TokenService, repo *stubUserRepo) (*httptest.ResponseRecorder, bool, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Authenticate(tokens, repo)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	err := handler(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called, err
}

func TestAuthenticate_BearerHeader(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	repo := newStubUserRepo(alice())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, tokens, "alice@example.com"))

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Authenticate(tokens, repo)(func(c echo.Context) error {
		user, ok := Principal(c)
		if !ok {
			t.Fatalf("principal not set")
		}
		if user.Email != "alice@example.com" || user.Role != domain.RoleAdmin {
			t.Fatalf("wrong principal: %+v", user)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthenticate_Cookie(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	repo := newStubUserRepo(alice())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: signToken(t, tokens, "alice@example.com")})

	rec, called, err := runAuth(t, req, tokens, repo)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected next to run with 200, got called=%v code=%d", called, rec.Code)
	}
}

func TestAuthenticate_CookieWinsOverHeader(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	repo := newStubUserRepo(alice())

	// Valid header, garbage cookie: the cookie must be the one consulted.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, tokens, "alice@example.com"))
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "garbage"})

	rec, called, _ := runAuth(t, req, tokens, repo)
	if called {
		t.Fatalf("next should not run when the preferred cookie token is invalid")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticate_MissingToken(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	repo := newStubUserRepo(alice())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec, called, _ := runAuth(t, req, tokens, repo)
	if called {
		t.Fatalf("next should not run")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	repo := newStubUserRepo(alice())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")

	rec, called, _ := runAuth(t, req, tokens, repo)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without running next, got called=%v code=%d", called, rec.Code)
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	issuer := service.NewTokenService("secret", time.Nanosecond)
	verifier := service.NewTokenService("secret", time.Hour)
	repo := newStubUserRepo(alice())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, issuer, "alice@example.com"))

	rec, called, _ := runAuth(t, req, verifier, repo)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without running next, got called=%v code=%d", called, rec.Code)
	}
}

func TestAuthenticate_DeletedUser(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	// Token is valid but the account is gone: authentication failure, not 500.
	repo := newStubUserRepo()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, tokens, "alice@example.com"))

	rec, called, _ := runAuth(t, req, tokens, repo)
	if called || rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without running next, got called=%v code=%d", called, rec.Code)
	}
}
