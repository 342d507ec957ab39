package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sidra/content-factory/internal/config"
	"github.com/sidra/content-factory/internal/domain"
	"github.com/sidra/content-factory/pkg/ctxutil"
)

//go:generate moq -out jwt_manager_mock_test.go -pkg auth . jwtManager

// hashPassword returns a bcrypt hash for testing.
func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	return string(hash)
}

func testCfg(t *testing.T) config.AuthConfig {
	t.Helper()
	return config.AuthConfig{
		AdminUsername:     "admin",
		AdminPasswordHash: hashPassword(t, "s3cret-admin"),
		Users: []config.UserAccount{
			{Username: "Huda", PasswordHash: hashPassword(t, "editor-pass"), Role: "editor"},
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func issuingMock() *jwtManagerMock {
	return &jwtManagerMock{
		GenerateAccessTokenFunc: func(p domain.Principal) (string, time.Time, error) {
			return "token-" + p.Username, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), nil
		},
	}
}

func TestService_Login_Success(t *testing.T) {
	t.Parallel()

	jwtMock := issuingMock()
	svc := NewService(discardLogger(), jwtMock, testCfg(t))

	result, err := svc.Login(context.Background(), LoginInput{Username: " huda ", Password: "editor-pass"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.AccessToken != "token-Huda" {
		t.Errorf("token: got %q", result.AccessToken)
	}
	if result.Principal.Role != domain.RoleEditor || result.Principal.ID == "" {
		t.Errorf("unexpected principal: %+v", result.Principal)
	}
	if calls := jwtMock.GenerateAccessTokenCalls(); len(calls) != 1 {
		t.Errorf("GenerateAccessToken calls: got %d, want 1", len(calls))
	}
}

func TestService_Login_StablePrincipalID(t *testing.T) {
	t.Parallel()
	cfg := testCfg(t)

	a, err := NewService(discardLogger(), issuingMock(), cfg).Login(context.Background(), LoginInput{Username: "admin", Password: "s3cret-admin"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	b, err := NewService(discardLogger(), issuingMock(), cfg).Login(context.Background(), LoginInput{Username: "ADMIN", Password: "s3cret-admin"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if a.Principal.ID != b.Principal.ID {
		t.Errorf("principal id not stable: %s vs %s", a.Principal.ID, b.Principal.ID)
	}
}

func TestService_Login_Failures(t *testing.T) {
	t.Parallel()

	jwtMock := issuingMock()
	svc := NewService(discardLogger(), jwtMock, testCfg(t))
	ctx := context.Background()

	tests := []struct {
		name  string
		input LoginInput
		want  error
	}{
		{"wrong password", LoginInput{Username: "admin", Password: "nope"}, domain.ErrUnauthorized},
		{"unknown user", LoginInput{Username: "ghost", Password: "s3cret-admin"}, domain.ErrUnauthorized},
		{"blank username", LoginInput{Username: "  ", Password: "x"}, domain.ErrValidation},
		{"missing password", LoginInput{Username: "admin"}, domain.ErrValidation},
	}
	for _, tt := range tests {
		if _, err := svc.Login(ctx, tt.input); !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
	if calls := jwtMock.GenerateAccessTokenCalls(); len(calls) != 0 {
		t.Errorf("token issued on failed login: %d calls", len(calls))
	}
}

func TestService_Login_TokenError(t *testing.T) {
	t.Parallel()

	jwtMock := &jwtManagerMock{
		GenerateAccessTokenFunc: func(domain.Principal) (string, time.Time, error) {
			return "", time.Time{}, errors.New("sign failed")
		},
	}
	svc := NewService(discardLogger(), jwtMock, testCfg(t))

	_, err := svc.Login(context.Background(), LoginInput{Username: "admin", Password: "s3cret-admin"})
	if err == nil || errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestService_ValidateToken(t *testing.T) {
	t.Parallel()

	jwtMock := &jwtManagerMock{
		ValidateAccessTokenFunc: func(token string) (domain.Principal, error) {
			switch token {
			case "good":
				return domain.Principal{ID: "1", Username: "admin", Role: domain.RoleAdmin}, nil
			case "removed":
				return domain.Principal{ID: "2", Username: "former", Role: domain.RoleEditor}, nil
			default:
				return domain.Principal{}, errors.New("parse token: malformed")
			}
		},
	}
	svc := NewService(discardLogger(), jwtMock, testCfg(t))
	ctx := context.Background()

	p, err := svc.ValidateToken(ctx, "good")
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if p.Username != "admin" {
		t.Errorf("username: got %q", p.Username)
	}

	for _, token := range []string{"bad", "removed"} {
		if _, err := svc.ValidateToken(ctx, token); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("%s: expected ErrUnauthorized, got %v", token, err)
		}
	}
}

func TestService_Profile(t *testing.T) {
	t.Parallel()
	svc := NewService(discardLogger(), &jwtManagerMock{}, testCfg(t))

	if _, err := svc.Profile(context.Background()); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	want := domain.Principal{ID: "1", Username: "admin", Role: domain.RoleAdmin}
	got, err := svc.Profile(ctxutil.WithPrincipal(context.Background(), want))
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
