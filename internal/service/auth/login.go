package auth

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/sidra/content-factory/internal/domain"
	"github.com/sidra/content-factory/pkg/ctxutil"
)

// dummyHash keeps unknown-user logins as slow as wrong-password ones.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("content-factory"), bcrypt.MinCost)

// Login authenticates a configured account and issues an access token.
// Returns ErrUnauthorized if the username is unknown or the password is wrong.
func (s *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	acc, ok := s.accounts[normalizeUsername(input.Username)]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(input.Password))
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(input.Password)); err != nil {
		s.log.InfoContext(ctx, "login failed", slog.String("username", acc.principal.Username))
		return nil, domain.ErrUnauthorized
	}

	token, expires, err := s.jwt.GenerateAccessToken(acc.principal)
	if err != nil {
		return nil, fmt.Errorf("auth.Login issue token: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in",
		slog.String("username", acc.principal.Username),
		slog.String("role", acc.principal.Role.String()),
	)

	return &LoginResult{AccessToken: token, ExpiresAt: expires, Principal: acc.principal}, nil
}

// Profile returns the principal of the current request.
func (s *Service) Profile(ctx context.Context) (domain.Principal, error) {
	p, ok := ctxutil.PrincipalFromCtx(ctx)
	if !ok {
		return domain.Principal{}, domain.ErrUnauthorized
	}
	return p, nil
}
