package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/sidra/content-factory/internal/domain"
	"github.com/sidra/content-factory/internal/service/catalog"
)

type catalogService interface {
	ListActive(ctx context.Context) ([]domain.ContentCategory, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.ContentCategory, error)
	Create(ctx context.Context, input catalog.CreateCategoryInput) (*domain.ContentCategory, error)
	Update(ctx context.Context, id uuid.UUID, input catalog.UpdateCategoryInput) (*domain.ContentCategory, error)
	Summary(ctx context.Context) ([]domain.CategorySummary, error)
	GenerateIdeas(ctx context.Context, input catalog.GenerateIdeasInput) ([]domain.ContentIdea, error)
	CreateManualIdea(ctx context.Context, input catalog.ManualIdeaInput) (*domain.ContentIdea, error)
	ApproveIdea(ctx context.Context, id uuid.UUID) (*domain.ContentIdea, error)
}

// CategoryHandler serves content categories and their planned ideas.
type CategoryHandler struct {
	svc catalogService
	log *slog.Logger
}

// NewCategoryHandler creates a CategoryHandler.
func NewCategoryHandler(svc catalogService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{svc: svc, log: logger.With("handler", "categories")}
}

// List handles GET /content/categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.ListActive(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	out := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		out = append(out, toCategoryResponse(c))
	}
	writeData(w, http.StatusOK, out)
}

// Get handles GET /content/categories/{id}.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	cat, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toCategoryResponse(*cat))
}

// Create handles POST /content/categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input catalog.CreateCategoryInput
	if !decodeJSON(w, r, &input) {
		return
	}
	cat, err := h.svc.Create(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, toCategoryResponse(*cat))
}

// Update handles PUT /content/categories/{id}.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input catalog.UpdateCategoryInput
	if !decodeJSON(w, r, &input) {
		return
	}
	cat, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toCategoryResponse(*cat))
}

// Summary handles GET /content/categories/summary.
func (h *CategoryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Summary(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	out := make([]summaryResponse, 0, len(rows))
	for _, s := range rows {
		out = append(out, summaryResponse{
			Category:       toCategoryResponse(s.Category),
			IdeasCount:     s.IdeasCount,
			ApprovedIdeas:  s.ApprovedIdeas,
			PublishedPosts: s.PublishedPosts,
		})
	}
	writeData(w, http.StatusOK, out)
}

// GenerateIdeas handles POST /content/ideas/generate.
func (h *CategoryHandler) GenerateIdeas(w http.ResponseWriter, r *http.Request) {
	var input catalog.GenerateIdeasInput
	if !decodeJSON(w, r, &input) {
		return
	}
	ideas, err := h.svc.GenerateIdeas(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	out := make([]contentIdeaResponse, 0, len(ideas))
	for _, i := range ideas {
		out = append(out, toContentIdeaResponse(i))
	}
	writeData(w, http.StatusCreated, out)
}

// CreateIdea handles POST /content/ideas.
func (h *CategoryHandler) CreateIdea(w http.ResponseWriter, r *http.Request) {
	var input catalog.ManualIdeaInput
	if !decodeJSON(w, r, &input) {
		return
	}
	idea, err := h.svc.CreateManualIdea(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusCreated, toContentIdeaResponse(*idea))
}

// ApproveIdea handles PUT /content/ideas/{id}/approve.
func (h *CategoryHandler) ApproveIdea(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	idea, err := h.svc.ApproveIdea(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toContentIdeaResponse(*idea))
}
