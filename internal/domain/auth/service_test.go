package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lumenstudio/lumen-api/internal/domain/user"
	"github.com/lumenstudio/lumen-api/internal/pkg/jwt"
	"github.com/lumenstudio/lumen-api/internal/pkg/password"
)

type fakeUserRepo struct {
	byEmail map[string]*user.User
	byID    map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*user.User),
		byID:    make(map[uuid.UUID]*user.User),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return f.byID[id], nil
}

type fakeTokenStore struct {
	tokens map[string]uuid.UUID
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]uuid.UUID)}
}

func (f *fakeTokenStore) Save(ctx context.Context, hash string, userID uuid.UUID, ttl time.Duration) error {
	f.tokens[hash] = userID
	return nil
}

func (f *fakeTokenStore) Get(ctx context.Context, hash string) (uuid.UUID, error) {
	id, ok := f.tokens[hash]
	if !ok {
		return uuid.Nil, ErrInvalidRefresh
	}
	return id, nil
}

func (f *fakeTokenStore) Delete(ctx context.Context, hash string) error {
	delete(f.tokens, hash)
	return nil
}

func newTestService() (*Service, *fakeUserRepo, *fakeTokenStore) {
	repo := newFakeUserRepo()
	tokens := newFakeTokenStore()
	jwtSvc := jwt.NewService("test-secret", 15*time.Minute, 24*time.Hour)
	return NewService(repo, jwtSvc, tokens), repo, tokens
}

func TestRegister_NormalizesEmailAndAssignsCustomerRole(t *testing.T) {
	svc, repo, _ := newTestService()

	pair, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "  Anna@Example.COM ",
		Password: "secret-password",
		FullName: "Anna K",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected token pair")
	}

	u := repo.byEmail["anna@example.com"]
	if u == nil {
		t.Fatal("expected email to be normalized")
	}
	if u.Role != user.RoleCustomer {
		t.Fatalf("expected customer role, got %s", u.Role)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	req := RegisterRequest{Email: "a@b.com", Password: "secret-password", FullName: "A B"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Register(ctx, req); err != ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	hash, _ := password.Hash("right-password")
	u := &user.User{ID: uuid.New(), Email: "a@b.com", PasswordHash: hash, Role: user.RoleCustomer, IsActive: true}
	repo.Create(ctx, u)

	if _, err := svc.Login(ctx, LoginRequest{Email: "a@b.com", Password: "wrong"}); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, LoginRequest{Email: "a@b.com", Password: "right-password"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	hash, _ := password.Hash("right-password")
	repo.Create(ctx, &user.User{ID: uuid.New(), Email: "a@b.com", PasswordHash: hash, Role: user.RoleStaff, IsActive: false})

	if _, err := svc.Login(ctx, LoginRequest{Email: "a@b.com", Password: "right-password"}); err != ErrUserInactive {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc, _, tokens := newTestService()
	ctx := context.Background()

	pair, err := svc.Register(ctx, RegisterRequest{Email: "a@b.com", Password: "secret-password", FullName: "A B"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	next, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Fatal("refresh must issue a new token")
	}

	// replaying the rotated-out token must fail
	if _, err := svc.Refresh(ctx, pair.RefreshToken); err != ErrInvalidRefresh {
		t.Fatalf("expected ErrInvalidRefresh on replay, got %v", err)
	}

	if len(tokens.tokens) != 1 {
		t.Fatalf("expected exactly one live refresh token, got %d", len(tokens.tokens))
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	pair, err := svc.Register(ctx, RegisterRequest{Email: "a@b.com", Password: "secret-password", FullName: "A B"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Logout(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Refresh(ctx, pair.RefreshToken); err != ErrInvalidRefresh {
		t.Fatalf("expected ErrInvalidRefresh after logout, got %v", err)
	}
}
