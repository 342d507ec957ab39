package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// bcrypt hash of "admin123".
const testHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z4zYQ1hVJgJ6y5F2sG6n4QeS"

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
	t.Setenv("AUTH_JWT_SECRET", "this-is-a-very-long-jwt-secret-for-testing-32+")
	t.Setenv("AUTH_ADMIN_PASSWORD_HASH", testHash)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 10
  auto_migrate: false

storage:
  driver: "postgres"

auth:
  jwt_secret: "this-is-a-very-long-jwt-secret-for-testing-32+"
  admin_username: "root"
  admin_password_hash: "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z4zYQ1hVJgJ6y5F2sG6n4QeS"
  users:
    - username: "editor1"
      password_hash: "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z4zYQ1hVJgJ6y5F2sG6n4QeS"
      role: "editor"

generation:
  endpoint: "http://generator.local/v1"
  cache_ttl: "5m"

log:
  level: "debug"
  format: "text"

rate_limit:
  requests_per_minute: 30
`

// isolate runs the test in an empty working directory so no stray
// config.yaml or .env is picked up.
func isolate(t *testing.T) {
	t.Helper()
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())
}

func TestLoad_ValidYAML(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "config.yaml", validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want %v", cfg.Server.ReadTimeout, 5*time.Second)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("database.max_conns = %d, want 10", cfg.Database.MaxConns)
	}
	if cfg.Database.AutoMigrate {
		t.Error("database.auto_migrate should be false")
	}

	accounts := cfg.Auth.Accounts()
	if len(accounts) != 2 {
		t.Fatalf("accounts = %d, want 2", len(accounts))
	}
	if accounts[0].Username != "root" || accounts[0].Role != "admin" {
		t.Errorf("accounts[0] = %+v", accounts[0])
	}
	if accounts[1].Username != "editor1" || accounts[1].Role != "editor" {
		t.Errorf("accounts[1] = %+v", accounts[1])
	}

	if cfg.Generation.Endpoint != "http://generator.local/v1" {
		t.Errorf("generation.endpoint = %q", cfg.Generation.Endpoint)
	}
	if cfg.Generation.CacheTTL != 5*time.Minute {
		t.Errorf("generation.cache_ttl = %v, want 5m", cfg.Generation.CacheTTL)
	}
	if cfg.Generation.Timeout != 10*time.Second {
		t.Errorf("generation.timeout = %v, want default 10s", cfg.Generation.Timeout)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.RateLimit.RequestsPerMinute != 30 || !cfg.RateLimit.Enabled {
		t.Errorf("rate_limit = %+v", cfg.RateLimit)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "config.yaml", validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3001 {
		t.Errorf("server.port = %d, want 3001 (default)", cfg.Server.Port)
	}
	if cfg.Storage.Driver != StorageDriverPostgres {
		t.Errorf("storage.driver = %q, want postgres (default)", cfg.Storage.Driver)
	}
	if cfg.Auth.AdminUsername != "admin" {
		t.Errorf("auth.admin_username = %q, want admin (default)", cfg.Auth.AdminUsername)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")
	isolate(t)

	envPath := writeFile(t, t.TempDir(), "test.env", "GENERATION_ENDPOINT=http://from-dotenv\n")
	t.Setenv("DOTENV_PATH", envPath)
	t.Cleanup(func() { _ = os.Unsetenv("GENERATION_ENDPOINT") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Generation.Endpoint != "http://from-dotenv" {
		t.Errorf("generation.endpoint = %q, want value from .env", cfg.Generation.Endpoint)
	}
}

func TestLoad_DotEnvExplicitMissing(t *testing.T) {
	isolate(t)
	t.Setenv("DOTENV_PATH", "/nonexistent/.env")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit .env path")
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	isolate(t)
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "config.yaml", `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

// validConfig returns a Config that passes validation.
func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{DSN: "postgres://u:p@localhost/db"},
		Storage:  StorageConfig{Driver: StorageDriverPostgres},
		Auth: AuthConfig{
			JWTSecret:         "this-is-a-very-long-jwt-secret-for-testing-32+",
			AdminUsername:     "admin",
			AdminPasswordHash: testHash,
		},
		RateLimit: RateLimitConfig{Enabled: true, RequestsPerMinute: 60},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_JWTSecretTooShort(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = "short"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for short JWT secret")
	}
}

func TestValidate_NoAccounts(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.AdminPasswordHash = ""

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "at least one account") {
		t.Fatalf("expected missing account error, got %v", err)
	}
}

func TestValidate_DuplicateUsername(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.Users = []UserAccount{{Username: "admin", PasswordHash: testHash, Role: "editor"}}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for duplicate username")
	}
}

func TestValidate_UnknownRole(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.Users = []UserAccount{{Username: "bob", PasswordHash: testHash, Role: "owner"}}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestValidate_PostgresRequiresDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Database.DSN = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty DSN with postgres driver")
	}
}

func TestValidate_MemoryDriverWithoutDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Database.DSN = ""
	cfg.Storage.Driver = StorageDriverMemory

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Driver = "mongo"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown storage driver")
	}
}

func TestValidate_RateLimitZero(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.RequestsPerMinute = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero requests_per_minute")
	}

	cfg.RateLimit.Enabled = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled rate limit should skip the check: %v", err)
	}
}
