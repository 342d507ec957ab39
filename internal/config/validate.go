package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Auth.validateAccounts(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn is required when storage.driver is %q", StorageDriverPostgres)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("storage.driver must be %q or %q (got %q)", StorageDriverPostgres, StorageDriverMemory, c.Storage.Driver)
	}

	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be > 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	return nil
}

func (c AuthConfig) validateAccounts() error {
	accounts := c.Accounts()
	if len(accounts) == 0 {
		return fmt.Errorf("at least one account must be configured (admin_password_hash or users)")
	}

	seen := make(map[string]bool, len(accounts))
	for i, a := range accounts {
		if strings.TrimSpace(a.Username) == "" {
			return fmt.Errorf("users[%d]: username is required", i)
		}
		if seen[a.Username] {
			return fmt.Errorf("users[%d]: duplicate username %q", i, a.Username)
		}
		seen[a.Username] = true

		if a.PasswordHash == "" {
			return fmt.Errorf("user %q: password_hash is required", a.Username)
		}
		switch a.Role {
		case "admin", "editor":
		default:
			return fmt.Errorf("user %q: role must be admin or editor (got %q)", a.Username, a.Role)
		}
	}
	return nil
}
