//go:build integration

package testhelper

import (
	"context"
	"testing"

	"github.com/sidra/content-factory/internal/domain"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	card := SeedCard(t, pool, domain.CardStatusUnderReview)

	var status, moderation string
	var trail []byte
	err := pool.QueryRow(context.Background(),
		`SELECT status, moderation_status, audit_trail FROM content_cards WHERE id = $1`,
		card.ID,
	).Scan(&status, &moderation, &trail)
	if err != nil {
		t.Fatalf("expected card in DB, got error: %v", err)
	}

	if status != "UnderReview" || moderation != "Pending" {
		t.Fatalf("expected UnderReview/Pending, got %s/%s", status, moderation)
	}
	if string(trail) != "[]" {
		t.Fatalf("expected empty audit trail, got %s", trail)
	}
}
