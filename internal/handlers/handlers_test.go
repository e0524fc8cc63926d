package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/identity-hub/apiserver/internal/auth"
	"github.com/identity-hub/apiserver/internal/services"
	"github.com/identity-hub/apiserver/internal/store"
	"github.com/identity-hub/apiserver/types"
)

const testSecret = "test-secret"

// memRepo is an in-memory stand-in for the Postgres repository. It
// mirrors the store semantics: coalesce updates, newest-first listing,
// uniform VerifyPassword failure, email uniqueness backstop. calls
// counts every storage operation.
type memRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]types.User
	calls int
}

func newMemRepo() *memRepo {
	return &memRepo{users: make(map[uuid.UUID]types.User)}
}

func (m *memRepo) Create(ctx context.Context, email, username, password string) (types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	for _, u := range m.users {
		if u.Email == email {
			return types.User{}, store.ErrEmailTaken
		}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return types.User{}, err
	}
	now := time.Now().UTC()
	user := types.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *memRepo) GetByID(ctx context.Context, id uuid.UUID) (types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	user, ok := m.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (m *memRepo) GetByEmail(ctx context.Context, email string) (types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (m *memRepo) List(ctx context.Context, limit, offset int) ([]types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	all := make([]types.User, 0, len(m.users))
	for _, u := range m.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if offset >= len(all) {
		return []types.User{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *memRepo) Update(ctx context.Context, id uuid.UUID, email, username *string) (types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	user, ok := m.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	if email != nil {
		user.Email = *email
	}
	if username != nil {
		user.Username = *username
	}
	user.UpdatedAt = time.Now().UTC()
	m.users[id] = user
	return user, nil
}

func (m *memRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if _, ok := m.users[id]; !ok {
		return false, nil
	}
	delete(m.users, id)
	return true, nil
}

func (m *memRepo) VerifyPassword(ctx context.Context, email, password string) (types.User, error) {
	m.mu.Lock()
	m.calls++
	var found *types.User
	for _, u := range m.users {
		if u.Email == email {
			u := u
			found = &u
			break
		}
	}
	m.mu.Unlock()

	if found == nil {
		return types.User{}, store.ErrNotFound
	}
	match, err := auth.CheckPassword(password, found.PasswordHash)
	if err != nil {
		return types.User{}, err
	}
	if !match {
		return types.User{}, store.ErrNotFound
	}
	return *found, nil
}

func (m *memRepo) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// newTestRouter mirrors the server wiring: the auth gate in front of the
// health, auth and user routes.
func newTestRouter() (*chi.Mux, *memRepo, *auth.TokenService) {
	repo := newMemRepo()
	userService := services.NewUserService(repo)
	tokenService := auth.NewTokenService([]byte(testSecret))
	authService := services.NewAuthService(userService, tokenService)

	router := chi.NewRouter()
	router.Use(AuthGate(tokenService))
	router.Get("/health", Health)
	router.Route("/api/auth", func(r chi.Router) {
		AuthRouter(r, authService)
	})
	router.Route("/api/users", func(r chi.Router) {
		UserRouter(r, userService)
	})
	return router, repo, tokenService
}

func doRequest(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func registerUser(t *testing.T, router http.Handler, email, username, password string) types.AuthResponse {
	t.Helper()

	rec := doRequest(t, router, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"username": username,
		"password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register status %d: %s", rec.Code, rec.Body.String())
	}

	var resp types.AuthResponse
	decodeBody(t, rec, &resp)
	return resp
}
