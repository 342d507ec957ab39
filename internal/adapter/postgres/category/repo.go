// Package category implements the content-category and category-idea
// repository using PostgreSQL.
package category

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/sidra/content-factory/internal/adapter/postgres"
	"github.com/sidra/content-factory/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var categoryColumns = []string{
	"id", "name", "description", "primary_goal", "primary_audience", "default_tone",
	"default_content_types", "angles", "guardrails", "priority", "is_active", "created_at",
}

var ideaColumns = []string{"id", "category_id", "content_type", "angle", "idea_text", "status", "created_by", "created_at"}

// Repo provides category persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new category repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

type categoryRow struct {
	ID                  uuid.UUID `db:"id"`
	Name                string    `db:"name"`
	Description         string    `db:"description"`
	PrimaryGoal         string    `db:"primary_goal"`
	PrimaryAudience     string    `db:"primary_audience"`
	DefaultTone         []string  `db:"default_tone"`
	DefaultContentTypes []string  `db:"default_content_types"`
	Angles              []string  `db:"angles"`
	Guardrails          []string  `db:"guardrails"`
	Priority            string    `db:"priority"`
	IsActive            bool      `db:"is_active"`
	CreatedAt           time.Time `db:"created_at"`
}

type ideaRow struct {
	ID          uuid.UUID `db:"id"`
	CategoryID  uuid.UUID `db:"category_id"`
	ContentType string    `db:"content_type"`
	Angle       string    `db:"angle"`
	IdeaText    string    `db:"idea_text"`
	Status      string    `db:"status"`
	CreatedBy   *string   `db:"created_by"`
	CreatedAt   time.Time `db:"created_at"`
}

type countRow struct {
	CategoryID uuid.UUID `db:"category_id"`
	Total      int       `db:"total"`
	Approved   int       `db:"approved"`
}

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

// ListActive returns active categories, highest priority first, then by name.
func (r *Repo) ListActive(ctx context.Context) ([]domain.ContentCategory, error) {
	query, args, err := psql.Select(categoryColumns...).
		From("content_categories").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END", "name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list categories: %w", err)
	}

	var rows []categoryRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	out := make([]domain.ContentCategory, len(rows))
	for i, row := range rows {
		out[i] = toCategory(row)
	}
	return out, nil
}

// GetActive returns an active category by ID.
// Returns domain.ErrNotFound for unknown or inactive categories.
func (r *Repo) GetActive(ctx context.Context, id uuid.UUID) (*domain.ContentCategory, error) {
	query, args, err := psql.Select(categoryColumns...).
		From("content_categories").
		Where(squirrel.Eq{"id": id, "is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get category: %w", err)
	}

	var row categoryRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &row, query, args...); err != nil {
		return nil, mapScanError(err, "category", id)
	}

	cat := toCategory(row)
	return &cat, nil
}

// Create inserts a category and returns the stored row.
func (r *Repo) Create(ctx context.Context, c *domain.ContentCategory) (*domain.ContentCategory, error) {
	contentTypes := make([]string, len(c.DefaultContentTypes))
	for i, ct := range c.DefaultContentTypes {
		contentTypes[i] = string(ct)
	}

	query, args, err := psql.Insert("content_categories").
		Columns(categoryColumns...).
		Values(
			c.ID, c.Name, c.Description, string(c.PrimaryGoal), string(c.PrimaryAudience),
			c.DefaultTone, contentTypes, c.Angles, c.Guardrails,
			string(c.Priority), c.IsActive, c.CreatedAt,
		).
		Suffix("RETURNING *").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert category: %w", err)
	}

	var row categoryRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &row, query, args...); err != nil {
		return nil, mapScanError(err, "category", c.ID)
	}

	cat := toCategory(row)
	return &cat, nil
}

// Update changes the non-nil fields of a category.
// Returns domain.ErrNotFound if the category does not exist.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, p domain.CategoryUpdateParams) (*domain.ContentCategory, error) {
	set := map[string]any{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.PrimaryGoal != nil {
		set["primary_goal"] = string(*p.PrimaryGoal)
	}
	if p.PrimaryAudience != nil {
		set["primary_audience"] = string(*p.PrimaryAudience)
	}
	if p.Priority != nil {
		set["priority"] = string(*p.Priority)
	}
	if p.IsActive != nil {
		set["is_active"] = *p.IsActive
	}

	var (
		query string
		args  []any
		err   error
	)
	if len(set) == 0 {
		query, args, err = psql.Select(categoryColumns...).From("content_categories").Where(squirrel.Eq{"id": id}).ToSql()
	} else {
		query, args, err = psql.Update("content_categories").
			SetMap(set).
			Where(squirrel.Eq{"id": id}).
			Suffix("RETURNING *").
			ToSql()
	}
	if err != nil {
		return nil, fmt.Errorf("build update category: %w", err)
	}

	var row categoryRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &row, query, args...); err != nil {
		return nil, mapScanError(err, "category", id)
	}

	cat := toCategory(row)
	return &cat, nil
}

// ---------------------------------------------------------------------------
// Category ideas
// ---------------------------------------------------------------------------

// CreateIdeas inserts category ideas in one statement.
func (r *Repo) CreateIdeas(ctx context.Context, ideas []domain.ContentIdea) ([]domain.ContentIdea, error) {
	if len(ideas) == 0 {
		return []domain.ContentIdea{}, nil
	}

	b := psql.Insert("content_ideas").Columns(ideaColumns...)
	for _, idea := range ideas {
		b = b.Values(idea.ID, idea.CategoryID, string(idea.ContentType), idea.Angle,
			idea.IdeaText, string(idea.Status), idea.CreatedBy, idea.CreatedAt)
	}

	query, args, err := b.Suffix("RETURNING *").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert content_ideas: %w", err)
	}

	var rows []ideaRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "content_idea", ideas[0].CategoryID)
	}

	out := make([]domain.ContentIdea, len(rows))
	for i, row := range rows {
		out[i] = toIdea(row)
	}
	return out, nil
}

// ApproveIdea marks a category idea approved.
// Returns domain.ErrNotFound if the idea does not exist.
func (r *Repo) ApproveIdea(ctx context.Context, id uuid.UUID) (*domain.ContentIdea, error) {
	query, args, err := psql.Update("content_ideas").
		Set("status", string(domain.IdeaStatusApproved)).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING *").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build approve content_idea: %w", err)
	}

	var row ideaRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.pool), &row, query, args...); err != nil {
		return nil, mapScanError(err, "content_idea", id)
	}

	idea := toIdea(row)
	return &idea, nil
}

// ---------------------------------------------------------------------------
// Summary counts
// ---------------------------------------------------------------------------

// IdeaCounts returns total and approved idea counts per category.
// Categories with no ideas are absent from the map.
func (r *Repo) IdeaCounts(ctx context.Context) (map[uuid.UUID]domain.CategorySummary, error) {
	query, args, err := psql.Select(
		"category_id",
		"count(*) AS total",
		"count(*) FILTER (WHERE status = 'approved') AS approved",
	).
		From("content_ideas").
		GroupBy("category_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build idea counts: %w", err)
	}

	var rows []countRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("idea counts: %w", err)
	}

	out := make(map[uuid.UUID]domain.CategorySummary, len(rows))
	for _, row := range rows {
		out[row.CategoryID] = domain.CategorySummary{IdeasCount: row.Total, ApprovedIdeas: row.Approved}
	}
	return out, nil
}

// PublishedCounts returns the number of published posts per category.
func (r *Repo) PublishedCounts(ctx context.Context) (map[uuid.UUID]int, error) {
	query, args, err := psql.Select("i.category_id", "count(*) AS total", "0 AS approved").
		From("content_posts p").
		Join("content_ideas i ON i.id = p.idea_id").
		Where(squirrel.Eq{"p.status": "published"}).
		GroupBy("i.category_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build published counts: %w", err)
	}

	var rows []countRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.pool), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("published counts: %w", err)
	}

	out := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		out[row.CategoryID] = row.Total
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Row mapping
// ---------------------------------------------------------------------------

func mapScanError(err error, entity string, id uuid.UUID) error {
	if pgxscan.NotFound(err) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return postgres.MapError(err, entity, id)
}

func toCategory(row categoryRow) domain.ContentCategory {
	types := make([]domain.ContentType, len(row.DefaultContentTypes))
	for i, ct := range row.DefaultContentTypes {
		types[i] = domain.ContentType(ct)
	}
	return domain.ContentCategory{
		ID:                  row.ID,
		Name:                row.Name,
		Description:         row.Description,
		PrimaryGoal:         domain.PrimaryGoal(row.PrimaryGoal),
		PrimaryAudience:     domain.Audience(row.PrimaryAudience),
		DefaultTone:         row.DefaultTone,
		DefaultContentTypes: types,
		Angles:              row.Angles,
		Guardrails:          row.Guardrails,
		Priority:            domain.Priority(row.Priority),
		IsActive:            row.IsActive,
		CreatedAt:           row.CreatedAt,
	}
}

func toIdea(row ideaRow) domain.ContentIdea {
	return domain.ContentIdea{
		ID:          row.ID,
		CategoryID:  row.CategoryID,
		ContentType: domain.ContentType(row.ContentType),
		Angle:       row.Angle,
		IdeaText:    row.IdeaText,
		Status:      domain.IdeaStatus(row.Status),
		CreatedBy:   row.CreatedBy,
		CreatedAt:   row.CreatedAt,
	}
}
