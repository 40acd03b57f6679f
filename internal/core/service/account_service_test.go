package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/OJOMB/user-registry/internal/core/domain"
)

type stubAccountRepo struct {
	accounts map[string]*domain.Account
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	if _, exists := r.accounts[account.Username]; exists {
		return nil, domain.ErrAccountExists
	}
	copy := cloneAccount(account)
	if copy.ID == "" {
		copy.ID = account.Username
	}
	r.accounts[copy.Username] = cloneAccount(copy)
	return cloneAccount(copy), nil
}

func (r *stubAccountRepo) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	a, ok := r.accounts[username]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func TestAccountService_Register_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, "secret", time.Hour)

	account, err := svc.Register(context.Background(), "alice", "pass123", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if account == nil {
		t.Fatalf("expected account, got nil")
	}
	if account.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if account.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", account.Role)
	}
}

func TestAccountService_Register_Validation(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "", "pass", domain.RoleAdmin); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if _, err := svc.Register(context.Background(), "bob", "pass", "superuser"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for bad role, got %v", err)
	}
}

func TestAccountService_Register_Duplicate(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, "secret", time.Hour)

	_, _ = svc.Register(context.Background(), "bob", "pass", domain.RoleViewer)
	if _, err := svc.Register(context.Background(), "bob", "pass2", domain.RoleViewer); err != domain.ErrAccountExists {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestAccountService_Login_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, "secret", time.Hour)

	if _, err := svc.Register(context.Background(), "carol", "s3cret", domain.RoleAdmin); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, account, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if account == nil || account.Username != "carol" {
		t.Fatalf("unexpected account: %+v", account)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != domain.RoleAdmin {
		t.Fatalf("expected role %s, got %v", domain.RoleAdmin, claims["role"])
	}
	if claims["username"] != "carol" {
		t.Fatalf("expected username claim, got %v", claims["username"])
	}
}

func TestAccountService_Login_InvalidPassword(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, "secret", time.Hour)

	_, _ = svc.Register(context.Background(), "dave", "goodpass", domain.RoleViewer)
	if _, _, err := svc.Login(context.Background(), "dave", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_Login_AccountNotFound(t *testing.T) {
	repo := newStubAccountRepo()
	svc := NewAccountService(repo, "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "ghost", "pass"); err != domain.ErrAccountNotFound {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}
