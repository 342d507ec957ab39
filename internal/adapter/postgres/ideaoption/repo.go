// Package ideaoption implements the idea-option repository using PostgreSQL.
package ideaoption

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/sidra/content-factory/internal/adapter/postgres"
	"github.com/sidra/content-factory/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var columns = []string{"id", "topic_id", "text", "rationale", "author_id", "author_name", "is_manual"}

// Repo provides idea-option persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new idea-option repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// CreateBatch inserts ideas for one or more cards, preserving slice order.
func (r *Repo) CreateBatch(ctx context.Context, ideas []domain.IdeaOption) ([]domain.IdeaOption, error) {
	if len(ideas) == 0 {
		return []domain.IdeaOption{}, nil
	}

	b := psql.Insert("idea_options").Columns(append(columns, "position")...)
	for i, idea := range ideas {
		b = b.Values(idea.ID, idea.CardID, idea.Text, idea.Rationale, idea.AuthorID, idea.AuthorName, idea.IsManual, i)
	}

	query, args, err := b.Suffix("RETURNING id, topic_id, text, rationale, author_id, author_name, is_manual").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert idea_options: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "idea_option", ideas[0].CardID)
	}

	created, err := collect(rows)
	if err != nil {
		return nil, postgres.MapError(err, "idea_option", ideas[0].CardID)
	}
	return created, nil
}

// GetByID returns one idea, scoped to its card.
// Returns domain.ErrNotFound if the idea does not belong to the card.
func (r *Repo) GetByID(ctx context.Context, cardID, ideaID uuid.UUID) (*domain.IdeaOption, error) {
	query, args, err := psql.Select(columns...).
		From("idea_options").
		Where(squirrel.Eq{"id": ideaID, "topic_id": cardID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get idea_option: %w", err)
	}

	var idea domain.IdeaOption
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	if err := scan(row, &idea); err != nil {
		return nil, postgres.MapError(err, "idea_option", ideaID)
	}
	return &idea, nil
}

// GetByCardIDs returns the ideas of several cards, each card's ideas in
// creation order. Used by the dataloader.
func (r *Repo) GetByCardIDs(ctx context.Context, cardIDs []uuid.UUID) ([]domain.IdeaOption, error) {
	if len(cardIDs) == 0 {
		return []domain.IdeaOption{}, nil
	}

	query, args, err := psql.Select(columns...).
		From("idea_options").
		Where(squirrel.Eq{"topic_id": cardIDs}).
		OrderBy("topic_id", "created_at", "position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list idea_options: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list idea_options: %w", err)
	}

	ideas, err := collect(rows)
	if err != nil {
		return nil, fmt.Errorf("list idea_options: %w", err)
	}
	return ideas, nil
}

func scan(row pgx.Row, idea *domain.IdeaOption) error {
	return row.Scan(&idea.ID, &idea.CardID, &idea.Text, &idea.Rationale, &idea.AuthorID, &idea.AuthorName, &idea.IsManual)
}

func collect(rows pgx.Rows) ([]domain.IdeaOption, error) {
	defer rows.Close()

	ideas := []domain.IdeaOption{}
	for rows.Next() {
		var idea domain.IdeaOption
		if err := scan(rows, &idea); err != nil {
			return nil, err
		}
		ideas = append(ideas, idea)
	}
	return ideas, rows.Err()
}
