package ctxutil

import (
	"context"
	"testing"

	"github.com/sidra/content-factory/internal/domain"
)

func TestWithPrincipal_And_PrincipalFromCtx(t *testing.T) {
	t.Parallel()

	want := domain.Principal{ID: "1", Username: "admin", Role: domain.RoleAdmin}
	ctx := WithPrincipal(context.Background(), want)

	got, ok := PrincipalFromCtx(ctx)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestPrincipalFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	if _, ok := PrincipalFromCtx(context.Background()); ok {
		t.Fatal("expected ok=false for empty context")
	}
}

func TestPrincipalFromCtx_EmptyUsername(t *testing.T) {
	t.Parallel()

	ctx := WithPrincipal(context.Background(), domain.Principal{ID: "1"})
	if _, ok := PrincipalFromCtx(ctx); ok {
		t.Fatal("expected ok=false for principal without username")
	}
}

func TestIsAdminCtx(t *testing.T) {
	t.Parallel()

	admin := WithPrincipal(context.Background(), domain.Principal{Username: "a", Role: domain.RoleAdmin})
	editor := WithPrincipal(context.Background(), domain.Principal{Username: "e", Role: domain.RoleEditor})

	if !IsAdminCtx(admin) {
		t.Error("admin principal should be admin")
	}
	if IsAdminCtx(editor) {
		t.Error("editor principal should not be admin")
	}
	if IsAdminCtx(context.Background()) {
		t.Error("anonymous context should not be admin")
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-1")
	if got := RequestIDFromCtx(ctx); got != "req-1" {
		t.Fatalf("expected req-1, got %q", got)
	}
	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
