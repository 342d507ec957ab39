package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sidra/content-factory/internal/domain"
)

func TestHandleError_Mapping(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"validation", domain.NewValidationError("topic", "required"), http.StatusBadRequest, "validation: topic: required"},
		{"unauthorized", fmt.Errorf("login: %w", domain.ErrUnauthorized), http.StatusUnauthorized, "unauthorized"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"not found", fmt.Errorf("card x: %w", domain.ErrNotFound), http.StatusNotFound, "not found"},
		{"transition", fmt.Errorf("approve: card x is Draft: %w", domain.ErrInvalidTransition), http.StatusConflict, "approve: card x is Draft: invalid transition: conflict"},
		{"conflict", fmt.Errorf("update: %w", domain.ErrConflict), http.StatusConflict, "conflict"},
		{"internal", errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()

			handleError(rec, req, logger, tt.err)

			if rec.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, rec.Code)
			}
			var body envelope
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Success {
				t.Error("expected success=false")
			}
			if body.Error != tt.msg {
				t.Errorf("expected error %q, got %q", tt.msg, body.Error)
			}
		})
	}
}

func TestHandleError_ValidationFields(t *testing.T) {
	t.Parallel()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handleError(rec, req, logger, domain.NewValidationErrors([]domain.FieldError{
		{Field: "scheduledDate", Message: "required"},
		{Field: "platform", Message: "must be one of: facebook instagram twitter telegram"},
	}))

	var body envelope
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Fields) != 2 || body.Fields["scheduledDate"] != "required" {
		t.Errorf("unexpected fields: %+v", body.Fields)
	}
}

func TestWriteData_Envelope(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()

	writeData(rec, http.StatusOK, []string{})

	if got := rec.Body.String(); got != "{\"success\":true,\"data\":[]}\n" {
		t.Errorf("unexpected body %q", got)
	}
}
