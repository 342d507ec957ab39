// Package contentcard implements the content-card repository using PostgreSQL.
// Workflow updates are single guarded UPDATE statements, so two concurrent
// moderation decisions on one card cannot both apply.
package contentcard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/sidra/content-factory/internal/adapter/postgres"
	"github.com/sidra/content-factory/internal/domain"
)

const table = "content_cards"

var columns = []string{
	"id", "topic", "selected_idea_id", "copy_text", "tone", "culture_context",
	"selected_image_id", "selected_image_url", "selected_image_prompt", "selected_image_source",
	"image_upload_url", "platform", "status", "moderation_status", "moderation_reason",
	"audit_trail", "scheduled_date", "scheduled_time", "notes", "author_id", "author_name",
	"is_manual_idea", "is_manual_copy", "created_at", "updated_at",
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides content-card persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new content-card repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a card by primary key.
// Returns domain.ErrNotFound if the card does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ContentCard, error) {
	query, args, err := psql.Select(columns...).From(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get content_card: %w", err)
	}

	card, err := scanCard(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "content_card", id)
	}
	return card, nil
}

// ListByStatus returns cards in the given status in insertion order. A non-nil
// moderation status narrows the result further.
func (r *Repo) ListByStatus(ctx context.Context, status domain.CardStatus, moderation *domain.ModerationStatus) ([]*domain.ContentCard, error) {
	where := squirrel.Eq{"status": string(status)}
	if moderation != nil {
		where["moderation_status"] = string(*moderation)
	}

	query, args, err := psql.Select(columns...).
		From(table).
		Where(where).
		OrderBy("created_at ASC", "seq ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list content_cards: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list content_cards: %w", err)
	}
	defer rows.Close()

	cards := []*domain.ContentCard{}
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content_card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate content_cards: %w", err)
	}

	return cards, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new card and returns the persisted row.
func (r *Repo) Create(ctx context.Context, card *domain.ContentCard) (*domain.ContentCard, error) {
	trail, err := json.Marshal(nonNilTrail(card.AuditTrail))
	if err != nil {
		return nil, fmt.Errorf("encode audit trail: %w", err)
	}

	imgID, imgURL, imgPrompt, imgSource := imageColumns(card.SelectedImage)

	query, args, err := psql.Insert(table).
		Columns(columns...).
		Values(
			card.ID, card.Topic, card.SelectedIdeaID, card.CopyText, enumPtr(card.Tone), enumPtr(card.CultureContext),
			imgID, imgURL, imgPrompt, imgSource,
			card.ImageUploadURL, string(card.Platform), string(card.Status),
			enumPtr(card.ModerationStatus), card.ModerationReason,
			string(trail), datePtr(card.ScheduledDate), card.ScheduledTime, card.Notes,
			card.AuthorID, card.AuthorName, card.IsManualIdea, card.IsManualCopy,
			card.CreatedAt, card.UpdatedAt,
		).
		Suffix("RETURNING " + returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert content_card: %w", err)
	}

	created, err := scanCard(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "content_card", card.ID)
	}
	return created, nil
}

// Update applies patch and appends audit in one statement, provided the stored
// card still satisfies guard. Returns domain.ErrConflict when the guard no
// longer holds and domain.ErrNotFound when the card does not exist.
func (r *Repo) Update(
	ctx context.Context,
	id uuid.UUID,
	guard domain.CardGuard,
	patch domain.CardPatch,
	audit *domain.AuditEntry,
) (*domain.ContentCard, error) {
	b := psql.Update(table).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id})

	b = setPatch(b, patch)

	if audit != nil {
		entry, err := json.Marshal([]domain.AuditEntry{*audit})
		if err != nil {
			return nil, fmt.Errorf("encode audit entry: %w", err)
		}
		b = b.Set("audit_trail", squirrel.Expr("audit_trail || ?::jsonb", string(entry)))
	}

	if guard.Status != nil {
		b = b.Where(squirrel.Eq{"status": string(*guard.Status)})
	}
	if guard.ModerationStatus != nil {
		b = b.Where(squirrel.Eq{"moderation_status": string(*guard.ModerationStatus)})
	}

	query, args, err := b.Suffix("RETURNING " + returning()).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update content_card: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	updated, err := scanCard(q.QueryRow(ctx, query, args...))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, postgres.MapError(err, "content_card", id)
	}

	// No row matched: distinguish a missing card from a lost race.
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM content_cards WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, postgres.MapError(err, "content_card", id)
	}
	if !exists {
		return nil, fmt.Errorf("content_card %s: %w", id, domain.ErrNotFound)
	}
	return nil, fmt.Errorf("content_card %s: state changed: %w", id, domain.ErrConflict)
}

func setPatch(b squirrel.UpdateBuilder, p domain.CardPatch) squirrel.UpdateBuilder {
	if p.SelectedIdeaID != nil {
		b = b.Set("selected_idea_id", *p.SelectedIdeaID)
	}
	if p.CopyText != nil {
		b = b.Set("copy_text", *p.CopyText)
	}
	if p.Tone != nil {
		b = b.Set("tone", string(*p.Tone))
	}
	if p.CultureContext != nil {
		b = b.Set("culture_context", string(*p.CultureContext))
	}
	if p.SelectedImage != nil {
		b = b.SetMap(map[string]any{
			"selected_image_id":     p.SelectedImage.ID,
			"selected_image_url":    p.SelectedImage.URL,
			"selected_image_prompt": p.SelectedImage.Prompt,
			"selected_image_source": string(p.SelectedImage.Source),
		})
	}
	if p.ImageUploadURL != nil {
		b = b.Set("image_upload_url", *p.ImageUploadURL)
	}
	if p.Platform != nil {
		b = b.Set("platform", string(*p.Platform))
	}
	if p.Status != nil {
		b = b.Set("status", string(*p.Status))
	}
	if p.ModerationStatus != nil {
		b = b.Set("moderation_status", string(*p.ModerationStatus))
	} else if p.ClearModerationStatus {
		b = b.Set("moderation_status", nil)
	}
	if p.ModerationReason != nil {
		b = b.Set("moderation_reason", *p.ModerationReason)
	}
	if p.ScheduledDate != nil {
		b = b.Set("scheduled_date", datePtr(p.ScheduledDate))
	}
	if p.ScheduledTime != nil {
		b = b.Set("scheduled_time", *p.ScheduledTime)
	}
	if p.Notes != nil {
		b = b.Set("notes", *p.Notes)
	}
	if p.AuthorID != nil {
		b = b.Set("author_id", *p.AuthorID)
	}
	if p.AuthorName != nil {
		b = b.Set("author_name", *p.AuthorName)
	}
	if p.IsManualIdea != nil {
		b = b.Set("is_manual_idea", *p.IsManualIdea)
	}
	if p.IsManualCopy != nil {
		b = b.Set("is_manual_copy", *p.IsManualCopy)
	}
	return b
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

func returning() string {
	return strings.Join(columns, ", ")
}

func scanCard(row pgx.Row) (*domain.ContentCard, error) {
	var (
		c                                   domain.ContentCard
		tone, culture, moderation           *string
		imgID, imgURL, imgPrompt, imgSource *string
		platform, status                    string
		trail                               []byte
		scheduledDate                       pgtype.Date
	)

	err := row.Scan(
		&c.ID, &c.Topic, &c.SelectedIdeaID, &c.CopyText, &tone, &culture,
		&imgID, &imgURL, &imgPrompt, &imgSource,
		&c.ImageUploadURL, &platform, &status, &moderation, &c.ModerationReason,
		&trail, &scheduledDate, &c.ScheduledTime, &c.Notes, &c.AuthorID, &c.AuthorName,
		&c.IsManualIdea, &c.IsManualCopy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Platform = domain.Platform(platform)
	c.Status = domain.CardStatus(status)
	c.Tone = toEnum[domain.Tone](tone)
	c.CultureContext = toEnum[domain.CultureContext](culture)
	c.ModerationStatus = toEnum[domain.ModerationStatus](moderation)

	if imgURL != nil {
		c.SelectedImage = &domain.SelectedImage{
			ID:     deref(imgID),
			URL:    *imgURL,
			Prompt: deref(imgPrompt),
			Source: domain.ImageSource(deref(imgSource)),
		}
	}

	if scheduledDate.Valid {
		d := scheduledDate.Time
		c.ScheduledDate = &d
	}

	c.AuditTrail = []domain.AuditEntry{}
	if len(trail) > 0 {
		if err := json.Unmarshal(trail, &c.AuditTrail); err != nil {
			return nil, fmt.Errorf("decode audit trail: %w", err)
		}
	}

	return &c, nil
}

// ---------------------------------------------------------------------------
// pgtype helpers
// ---------------------------------------------------------------------------

func enumPtr[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func toEnum[T ~string](s *string) *T {
	if s == nil {
		return nil
	}
	v := T(*s)
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func datePtr(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: *t, Valid: true}
}

func imageColumns(img *domain.SelectedImage) (id, url, prompt, source *string) {
	if img == nil {
		return nil, nil, nil, nil
	}
	src := string(img.Source)
	return &img.ID, &img.URL, &img.Prompt, &src
}

func nonNilTrail(trail []domain.AuditEntry) []domain.AuditEntry {
	if trail == nil {
		return []domain.AuditEntry{}
	}
	return trail
}
