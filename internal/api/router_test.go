package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/gourmetcare/platform/internal/core/domain"
	"github.com/gourmetcare/platform/internal/core/otpstore"
	"github.com/gourmetcare/platform/internal/core/service"
)

// fakeUserRepo is an in-memory UserRepository for end-to-end routing tests.
type fakeUserRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	clone := *user
	clone.ID = strconv.Itoa(r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.byID {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[user.ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	*stored = *user
	clone := *stored
	return &clone, nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	stored.Role = role
	clone := *stored
	return &clone, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

type nopSender struct{}

func (nopSender) Send(_ context.Context, _, _ string) error { return nil }

type testEnv struct {
	router http.Handler
	repo   *fakeUserRepo
	tokens *service.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	repo := newFakeUserRepo()
	tokens := service.NewTokenService("test-secret", time.Hour)
	authSvc := service.NewAuthService(repo, otpstore.NewMemory(), nopSender{}, tokens, time.Minute)
	userSvc := service.NewUserService(repo)

	e := NewRouter(zerolog.Nop(), Deps{
		Users:   repo,
		Tokens:  tokens,
		Auth:    authSvc,
		UserSvc: userSvc,
	})
	return &testEnv{router: e, repo: repo, tokens: tokens}
}

func (env *testEnv) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %s: %v", rec.Body.String(), err)
	}
	return resp.Data
}

// registerUser drives send-code + register for an email and returns the
// issued access token.
func (env *testEnv) registerUser(t *testing.T, email string) string {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/auth/send-code", `{"email":"`+email+`"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("send-code: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	code, _ := decodeData(t, rec)["code"].(string)
	if code == "" {
		t.Fatalf("send-code did not echo the code in test mode")
	}

	body := `{"first_name":"Test","last_name":"User","email":"` + email + `","phone_number":"5512345678","code":"` + code + `"}`
	rec = env.do(t, http.MethodPost, "/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	token, _ := decodeData(t, rec)["access_token"].(string)
	if token == "" {
		t.Fatalf("register did not return a token")
	}
	return token
}

// loginUser drives send-code + login and returns a fresh token.
func (env *testEnv) loginUser(t *testing.T, email string) string {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/auth/send-code", `{"email":"`+email+`"}`, "")
	code, _ := decodeData(t, rec)["code"].(string)

	rec = env.do(t, http.MethodPost, "/auth/login", `{"email":"`+email+`","code":"`+code+`"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	token, _ := decodeData(t, rec)["access_token"].(string)
	return token
}

func (env *testEnv) seedSuperAdmin(t *testing.T) (string, string) {
	t.Helper()
	now := time.Now().UTC()
	root, err := env.repo.Create(context.Background(), &domain.User{
		FirstName: "Root",
		LastName:  "Admin",
		Email:     "root@example.com",
		Role:      domain.RoleSuperAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("seed superAdmin: %v", err)
	}
	token, err := env.tokens.Issue(root.Email)
	if err != nil {
		t.Fatalf("issue superAdmin token: %v", err)
	}
	return root.ID, token
}

func TestRouter_PromotionFlow(t *testing.T) {
	env := newTestEnv(t)

	// Fresh registration defaults to the user role and cannot list users.
	aliceToken := env.registerUser(t, "alice@example.com")
	rec := env.do(t, http.MethodGet, "/users", "", aliceToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user role, got %d: %s", rec.Code, rec.Body.String())
	}

	// A superAdmin promotes alice to admin.
	_, rootToken := env.seedSuperAdmin(t)
	alice, err := env.repo.FindByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("find alice: %v", err)
	}
	rec = env.do(t, http.MethodPut, "/users/"+alice.ID+"/role", `{"role":"admin"}`, rootToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("promote: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// After re-login the same endpoint succeeds.
	aliceToken = env.loginUser(t, "alice@example.com")
	rec = env.do(t, http.MethodGet, "/users", "", aliceToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after promotion, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_AdminCannotGrantSuperAdmin(t *testing.T) {
	env := newTestEnv(t)

	env.registerUser(t, "alice@example.com")
	env.registerUser(t, "bob@example.com")
	_, rootToken := env.seedSuperAdmin(t)

	alice, _ := env.repo.FindByEmail(context.Background(), "alice@example.com")
	bob, _ := env.repo.FindByEmail(context.Background(), "bob@example.com")

	rec := env.do(t, http.MethodPut, "/users/"+alice.ID+"/role", `{"role":"admin"}`, rootToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("promote alice: expected 200, got %d", rec.Code)
	}
	aliceToken := env.loginUser(t, "alice@example.com")

	rec = env.do(t, http.MethodPut, "/users/"+bob.ID+"/role", `{"role":"superAdmin"}`, aliceToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 granting superAdmin as admin, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if resp.Success || resp.Message == "" {
		t.Fatalf("expected failure envelope, got %+v", resp)
	}
}

func TestRouter_AdminCannotTargetSelf(t *testing.T) {
	env := newTestEnv(t)

	env.registerUser(t, "alice@example.com")
	rootID, rootToken := env.seedSuperAdmin(t)

	alice, _ := env.repo.FindByEmail(context.Background(), "alice@example.com")
	rec := env.do(t, http.MethodPut, "/users/"+alice.ID+"/role", `{"role":"admin"}`, rootToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("promote alice: expected 200, got %d", rec.Code)
	}

	// Even the superAdmin cannot touch their own role, no-op payload included.
	rec = env.do(t, http.MethodPut, "/users/"+rootID+"/role", `{"role":"superAdmin"}`, rootToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for self role change, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_MeAndHealth(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "alice@example.com")

	rec := env.do(t, http.MethodGet, "/users/me", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /users/me, got %d", rec.Code)
	}
	data := decodeData(t, rec)
	if data["email"] != "alice@example.com" {
		t.Fatalf("unexpected principal: %v", data)
	}

	rec = env.do(t, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /health, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/users/me", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}

func TestRouter_ManagerGateOnUserFetch(t *testing.T) {
	env := newTestEnv(t)

	env.registerUser(t, "alice@example.com")
	aliceToken := env.loginUser(t, "alice@example.com")
	alice, _ := env.repo.FindByEmail(context.Background(), "alice@example.com")

	// Plain users cannot fetch arbitrary accounts.
	rec := env.do(t, http.MethodGet, "/users/"+alice.ID, "", aliceToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user role, got %d", rec.Code)
	}

	_, rootToken := env.seedSuperAdmin(t)
	rec = env.do(t, http.MethodPut, "/users/"+alice.ID+"/role", `{"role":"manager"}`, rootToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("promote to manager: expected 200, got %d", rec.Code)
	}

	managerToken := env.loginUser(t, "alice@example.com")
	rec = env.do(t, http.MethodGet, "/users/"+alice.ID, "", managerToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for manager, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_DeleteRequiresSuperAdmin(t *testing.T) {
	env := newTestEnv(t)

	env.registerUser(t, "alice@example.com")
	env.registerUser(t, "bob@example.com")
	_, rootToken := env.seedSuperAdmin(t)

	alice, _ := env.repo.FindByEmail(context.Background(), "alice@example.com")
	bob, _ := env.repo.FindByEmail(context.Background(), "bob@example.com")

	rec := env.do(t, http.MethodPut, "/users/"+alice.ID+"/role", `{"role":"admin"}`, rootToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("promote alice: expected 200, got %d", rec.Code)
	}
	aliceToken := env.loginUser(t, "alice@example.com")

	rec = env.do(t, http.MethodDelete, "/users/"+bob.ID, "", aliceToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("admins must not delete users, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/users/"+bob.ID, "", rootToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("superAdmin delete: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Bob's token still verifies but his account is gone: 401, not 500.
	bobToken, _ := env.tokens.Issue("bob@example.com")
	rec = env.do(t, http.MethodGet, "/users/me", "", bobToken)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deleted user, got %d", rec.Code)
	}
}
