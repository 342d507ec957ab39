package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sidra/content-factory/internal/config"
	"github.com/sidra/content-factory/internal/domain"
)

// jwtManager defines the token operations needed by the auth service.
type jwtManager interface {
	GenerateAccessToken(p domain.Principal) (string, time.Time, error)
	ValidateAccessToken(token string) (domain.Principal, error)
}

// account is a configured login with its verified role.
type account struct {
	principal    domain.Principal
	passwordHash []byte
}

// Service verifies credentials against the configured accounts and issues
// access tokens.
type Service struct {
	log      *slog.Logger
	jwt      jwtManager
	accounts map[string]account
}

// NewService creates a new auth service. Usernames are matched
// case-insensitively.
func NewService(logger *slog.Logger, jwt jwtManager, cfg config.AuthConfig) *Service {
	accounts := make(map[string]account)
	for _, a := range cfg.Accounts() {
		key := normalizeUsername(a.Username)
		accounts[key] = account{
			principal: domain.Principal{
				ID:       principalID(key),
				Username: strings.TrimSpace(a.Username),
				Role:     domain.Role(a.Role),
			},
			passwordHash: []byte(a.PasswordHash),
		}
	}

	return &Service{
		log:      logger.With("service", "auth"),
		jwt:      jwt,
		accounts: accounts,
	}
}

// ValidateToken returns the principal a token was issued for.
// Any token problem is reported as domain.ErrUnauthorized.
func (s *Service) ValidateToken(ctx context.Context, token string) (domain.Principal, error) {
	p, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		s.log.DebugContext(ctx, "token rejected", slog.String("error", err.Error()))
		return domain.Principal{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if _, ok := s.accounts[normalizeUsername(p.Username)]; !ok {
		return domain.Principal{}, fmt.Errorf("%w: account %q removed", domain.ErrUnauthorized, p.Username)
	}
	return p, nil
}

func normalizeUsername(u string) string {
	return strings.ToLower(strings.TrimSpace(u))
}

// principalID derives a stable id from the username so audit and author
// fields survive restarts.
func principalID(normalized string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("content-factory/"+normalized)).String()
}
