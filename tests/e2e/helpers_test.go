//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sidra/content-factory/internal/adapter/postgres"
	"github.com/sidra/content-factory/internal/adapter/postgres/category"
	"github.com/sidra/content-factory/internal/adapter/postgres/contentcard"
	"github.com/sidra/content-factory/internal/adapter/postgres/ideaoption"
	"github.com/sidra/content-factory/internal/adapter/postgres/testhelper"
	authpkg "github.com/sidra/content-factory/internal/auth"
	"github.com/sidra/content-factory/internal/config"
	"github.com/sidra/content-factory/internal/generation"
	"github.com/sidra/content-factory/internal/metrics"
	authsvc "github.com/sidra/content-factory/internal/service/auth"
	"github.com/sidra/content-factory/internal/service/catalog"
	"github.com/sidra/content-factory/internal/service/content"
	"github.com/sidra/content-factory/internal/transport/dataloader"
	"github.com/sidra/content-factory/internal/transport/rest"
)

const (
	editorName = "e2e-editor"
	editorPass = "e2e-editor-password"
	adminName  = "e2e-admin"
	adminPass  = "e2e-admin-password"
)

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// apiResponse is the decoded success/error envelope.
type apiResponse struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields"`
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, &slog.HandlerOptions{Level: slog.LevelWarn}))

	authCfg := config.AuthConfig{
		AdminUsername:     adminName,
		AdminPasswordHash: hash(t, adminPass),
		Users: []config.UserAccount{
			{Username: editorName, PasswordHash: hash(t, editorPass), Role: "editor"},
		},
	}

	cards := contentcard.New(pool)
	ideas := ideaoption.New(pool)
	m := metrics.New()

	authService := authsvc.NewService(logger, authpkg.NewJWTManager("e2e-secret-key-at-least-32-characters!", "e2e", time.Hour), authCfg)
	contentService := content.NewService(logger, cards, ideas, postgres.NewTxManager(pool),
		generation.WithCache(generation.NewMock(nil), time.Minute, 0), m)
	catalogService := catalog.NewService(logger, category.New(pool))

	handler := rest.NewRouter(rest.RouterDeps{
		Auth:       rest.NewAuthHandler(authService, logger),
		Content:    rest.NewContentHandler(contentService, logger),
		Categories: rest.NewCategoryHandler(catalogService, logger),
		Health:     rest.NewHealthHandler("e2e", rest.HealthCheck{Name: config.StorageDriverPostgres, Pinger: pool}),
		Tokens:     authService,
		Loaders:    &dataloader.Repos{Ideas: ideas},
		Metrics:    m,
		CORS:       config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,POST,PUT,OPTIONS", AllowedHeaders: "Authorization,Content-Type"},
		Logger:     logger,
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Client: srv.Client(), Pool: pool}
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// call sends a JSON request and decodes the envelope.
func (ts *testServer) call(t *testing.T, method, path, token string, body any) (int, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

// login returns an access token for the given account.
func (ts *testServer) login(t *testing.T, username, password string) string {
	t.Helper()

	status, resp := ts.call(t, http.MethodPost, "/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status, resp.Error)

	var out struct {
		AccessToken string `json:"accessToken"`
	}
	decode(t, resp, &out)
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken
}

func decode(t *testing.T, resp apiResponse, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Data, dst), string(resp.Data))
}

// card is the subset of the card payload the tests assert on.
type card struct {
	ID               string  `json:"id"`
	Topic            string  `json:"topic"`
	Status           string  `json:"status"`
	ModerationStatus *string `json:"moderationStatus"`
	ModerationReason *string `json:"moderationReason"`
	CopyText         *string `json:"copyText"`
	ScheduledDate    *string `json:"scheduledDate"`
	AuditTrail       []struct {
		Action  string `json:"action"`
		User    string `json:"user"`
		Details string `json:"details"`
	} `json:"auditTrail"`
	Ideas []struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"ideas"`
}

// queuedCard walks a new card through ideation and copy approval so it
// lands in the moderation queue.
func (ts *testServer) queuedCard(t *testing.T, token, topic string) card {
	t.Helper()

	status, resp := ts.call(t, http.MethodPost, "/ideation/generate", token, map[string]string{"topic": topic})
	require.Equal(t, http.StatusCreated, status, resp.Error)
	var c card
	decode(t, resp, &c)
	require.NotEmpty(t, c.Ideas)

	steps := []struct {
		path string
		body map[string]string
	}{
		{"/ideation/select", map[string]string{"cardId": c.ID, "ideaId": c.Ideas[0].ID}},
		{"/copywriting/compose", map[string]string{
			"cardId":         c.ID,
			"ideaTextSeed":   c.Ideas[0].Text,
			"tone":           "friendly",
			"cultureContext": "sudanese",
		}},
		{"/copywriting/approve", map[string]string{"cardId": c.ID}},
	}
	for _, s := range steps {
		status, resp = ts.call(t, http.MethodPost, s.path, token, s.body)
		require.Equal(t, http.StatusOK, status, "%s: %s", s.path, resp.Error)
	}
	decode(t, resp, &c)
	require.Equal(t, "UnderReview", c.Status)
	return c
}

func containsCard(cards []card, id string) bool {
	for _, c := range cards {
		if c.ID == id {
			return true
		}
	}
	return false
}
