package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/sidra/content-factory/internal/domain"
	"github.com/sidra/content-factory/internal/service/content"
	"github.com/sidra/content-factory/internal/transport/dataloader"
)

// contentService defines the workflow operations used by ContentHandler.
type contentService interface {
	CreateCard(ctx context.Context, input content.CreateCardInput) (*domain.ContentCard, error)
	GetCard(ctx context.Context, id uuid.UUID) (*domain.ContentCard, error)
	Library(ctx context.Context) ([]*domain.ContentCard, error)
	ModerationQueue(ctx context.Context) ([]*domain.ContentCard, error)
	ListByStatus(ctx context.Context, status domain.CardStatus) ([]*domain.ContentCard, error)
	Approve(ctx context.Context, cardID uuid.UUID) (*domain.ContentCard, error)
	Reject(ctx context.Context, input content.RejectInput) (*domain.ContentCard, error)

	GenerateIdeas(ctx context.Context, input content.GenerateIdeasInput) (*domain.ContentCard, error)
	CreateManualIdea(ctx context.Context, input content.ManualIdeaInput) (*domain.ContentCard, error)
	SelectIdea(ctx context.Context, input content.SelectIdeaInput) (*domain.ContentCard, error)

	ComposeCopy(ctx context.Context, input content.ComposeCopyInput) (*domain.ContentCard, error)
	CreateManualCopy(ctx context.Context, input content.ManualCopyInput) (*domain.ContentCard, error)
	ApproveCopy(ctx context.Context, input content.ApproveCopyInput) (*domain.ContentCard, error)

	GenerateImage(ctx context.Context, input content.GenerateImageInput) (domain.ImageDescriptor, error)
	UploadImage(ctx context.Context, input content.UploadImageInput) (domain.ImageDescriptor, error)
	SelectImage(ctx context.Context, input content.SelectImageInput) (*domain.ContentCard, error)

	Schedule(ctx context.Context, input content.ScheduleInput) (*domain.ContentCard, error)
	SubmitForReview(ctx context.Context, cardID uuid.UUID) (*domain.ContentCard, error)
	AddToLibrary(ctx context.Context, cardID uuid.UUID) (*domain.ContentCard, error)
}

// ContentHandler serves the card workflow endpoints.
type ContentHandler struct {
	svc contentService
	log *slog.Logger
}

// NewContentHandler creates a ContentHandler.
func NewContentHandler(svc contentService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{svc: svc, log: logger.With("handler", "content")}
}

type cardIDRequest struct {
	CardID uuid.UUID `json:"cardId"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// ---------------------------------------------------------------------------
// Cards and views
// ---------------------------------------------------------------------------

// CreateCard handles POST /content.
func (h *ContentHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	var input content.CreateCardInput
	if !decodeJSON(w, r, &input) {
		return
	}
	card, err := h.svc.CreateCard(r.Context(), input)
	h.respondCard(w, r, http.StatusCreated, card, err)
}

// GetCard handles GET /content/{id}.
func (h *ContentHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	card, err := h.svc.GetCard(r.Context(), id)
	h.respondCard(w, r, http.StatusOK, card, err)
}

// Library handles GET /content/library.
func (h *ContentHandler) Library(w http.ResponseWriter, r *http.Request) {
	cards, err := h.svc.Library(r.Context())
	h.respondList(w, r, cards, err)
}

// ModerationQueue handles GET /content/moderation-queue.
func (h *ContentHandler) ModerationQueue(w http.ResponseWriter, r *http.Request) {
	cards, err := h.svc.ModerationQueue(r.Context())
	h.respondList(w, r, cards, err)
}

// ListByStatus handles GET /content/cards?status=.
func (h *ContentHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status := domain.CardStatus(r.URL.Query().Get("status"))
	cards, err := h.svc.ListByStatus(r.Context(), status)
	h.respondList(w, r, cards, err)
}

// Approve handles POST /content/{id}/approve.
func (h *ContentHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	card, err := h.svc.Approve(r.Context(), id)
	h.respondCard(w, r, http.StatusOK, card, err)
}

// Reject handles POST /content/{id}/reject.
func (h *ContentHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req rejectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	card, err := h.svc.Reject(r.Context(), content.RejectInput{CardID: id, Reason: req.Reason})
	h.respondCard(w, r, http.StatusOK, card, err)
}

// ---------------------------------------------------------------------------
// Ideation
// ---------------------------------------------------------------------------

// GenerateIdeas handles POST /ideation/generate.
func (h *ContentHandler) GenerateIdeas(w http.ResponseWriter, r *http.Request) {
	var input content.GenerateIdeasInput
	if !decodeJSON(w, r, &input) {
		return
	}
	card, err := h.svc.GenerateIdeas(r.Context(), input)
	h.respondCard(w, r, http.StatusCreated, card, err)
}

// CreateManualIdea handles POST /ideation/manual.
func (h *ContentHandler) CreateManualIdea(w http.ResponseWriter, r *http.Request) {
	var input content.ManualIdeaInput
	if !decodeJSON(w, r, &input) {
		return
	}
	card, err := h.svc.CreateManualIdea(r.Context(), input)
	h.respondCard(w, r, http.StatusOK, card, err)
}

// SelectIdea handles POST /ideation/select.
func (h *ContentHandler) SelectIdea(w http.ResponseWriter, r *http.Request) {
	var input content.SelectIdeaInput
	if !decodeJSON(w, r, &input) {
		return
	}
	card, err := h.svc.SelectIdea(r.Context(), input)
	h.respondCard(w, r, http.StatusOK, card, err)
}

// ---------------------------------------------------------------------------
// Copywriting
// ---------------------------------------------------------------------------

// ComposeCopy handles POST /copywriting/compose.
func (h *ContentHandler) ComposeCopy(w http.ResponseWriter, r *http.Request) {
	var input content.ComposeCopyInput
	if !decodeJSON(w, r, &input) {
		return
	}
	card, err := h.svc.ComposeCopy(r.Context(), input)
	h.respondCard(w, r, http.StatusOK, card, err)
}

// ManualCopy handles POST /copywriting/manual.
func (h *ContentHandler) ManualCopy(w http.ResponseWriter, r *http.Request) {
	var input content.ManualCopyInput
	if !decodeJSON(w, r, &input) {
		return
	}
	card, err := h.svc.CreateManualCopy(r.Context(), input)
	h.respondCard(w, r, http.StatusOK, card, err)
}

// ApproveCopy handles POST /copywriting/approve.
func (h *ContentHandler) ApproveCopy(w http.ResponseWriter, r *http.Request) {
	var input content.ApproveCopyInput
	if !decodeJSON(w, r, &input) {
		return
	}
	card, err := h.svc.ApproveCopy(r.Context(), input)
	h.respondCard(w, r, http.StatusOK, card, err)
}

// ---------------------------------------------------------------------------
// Visual design
// ---------------------------------------------------------------------------

// GenerateImage handles POST /visual-design/generate.
func (h *ContentHandler) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var input content.GenerateImageInput
	if !decodeJSON(w, r, &input) {
		return
	}
	img, err := h.svc.GenerateImage(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toImageResponse(img))
}

// UploadImage handles POST /visual-design/upload.
func (h *ContentHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	var input content.UploadImageInput
	if !decodeJSON(w, r, &input) {
		return
	}
	img, err := h.svc.UploadImage(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toImageResponse(img))
}

// SelectImage handles POST /visual-design/select.
func (h *ContentHandler) SelectImage(w http.ResponseWriter, r *http.Request) {
	var input content.SelectImageInput
	if !decodeJSON(w, r, &input) {
		return
	}
	card, err := h.svc.SelectImage(r.Context(), input)
	h.respondCard(w, r, http.StatusOK, card, err)
}

// ---------------------------------------------------------------------------
// Scheduling
// ---------------------------------------------------------------------------

// Schedule handles POST /scheduling/schedule.
func (h *ContentHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var input content.ScheduleInput
	if !decodeJSON(w, r, &input) {
		return
	}
	card, err := h.svc.Schedule(r.Context(), input)
	h.respondCard(w, r, http.StatusOK, card, err)
}

// SubmitForReview handles POST /scheduling/submit-review.
func (h *ContentHandler) SubmitForReview(w http.ResponseWriter, r *http.Request) {
	id, ok := bodyCardID(w, r)
	if !ok {
		return
	}
	card, err := h.svc.SubmitForReview(r.Context(), id)
	h.respondCard(w, r, http.StatusOK, card, err)
}

// AddToLibrary handles POST /scheduling/add-library.
func (h *ContentHandler) AddToLibrary(w http.ResponseWriter, r *http.Request) {
	id, ok := bodyCardID(w, r)
	if !ok {
		return
	}
	card, err := h.svc.AddToLibrary(r.Context(), id)
	h.respondCard(w, r, http.StatusOK, card, err)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func (h *ContentHandler) respondCard(w http.ResponseWriter, r *http.Request, status int, card *domain.ContentCard, err error) {
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, status, toCardResponse(card))
}

// respondList embeds idea options into every card through the request's
// batching loader.
func (h *ContentHandler) respondList(w http.ResponseWriter, r *http.Request, cards []*domain.ContentCard, err error) {
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if err := dataloader.FromContext(r.Context()).AttachIdeas(r.Context(), cards); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeData(w, http.StatusOK, toCardResponses(cards))
}

func bodyCardID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	var req cardIDRequest
	if !decodeJSON(w, r, &req) {
		return uuid.Nil, false
	}
	if req.CardID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, envelope{
			Error:  "validation: cardId: required",
			Fields: map[string]string{"cardId": "required"},
		})
		return uuid.Nil, false
	}
	return req.CardID, true
}
