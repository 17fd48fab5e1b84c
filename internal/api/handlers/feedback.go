package handlers

import (
	"context"
	"net/http"

	"github.com/smarterworkco/GPT-UI/internal/api"
	"github.com/smarterworkco/GPT-UI/internal/api/middleware"
	"github.com/smarterworkco/GPT-UI/internal/domain"
)

type FeedbackRepository interface {
	GetFeedbackRequests(ctx context.Context, businessID int64) ([]domain.FeedbackRequest, error)
	CreateFeedbackRequest(ctx context.Context, in domain.CreateFeedbackInput) (*domain.FeedbackRequest, error)
}

type FeedbackHandler struct {
	repo FeedbackRepository
}

func NewFeedbackHandler(repo FeedbackRepository) *FeedbackHandler {
	return &FeedbackHandler{repo: repo}
}

// CreateFeedbackRequest ignores any status sent by the client
type CreateFeedbackRequest struct {
	Type        string `json:"type" validate:"required,oneof=feature bug improvement support"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Priority    string `json:"priority" validate:"required,oneof=low medium high"`
}

func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	business := middleware.GetBusiness(r.Context())
	items, err := h.repo.GetFeedbackRequests(r.Context(), business.ID)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}
	api.JSON(w, http.StatusOK, items)
}

func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateFeedbackRequest
	if !api.Decode(w, r, &req) {
		return
	}

	business := middleware.GetBusiness(r.Context())
	fb, err := h.repo.CreateFeedbackRequest(r.Context(), domain.CreateFeedbackInput{
		Type:        domain.FeedbackType(req.Type),
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.FeedbackPriority(req.Priority),
		BusinessID:  business.ID,
	})
	if err != nil {
		api.HandleError(w, r, err)
		return
	}
	api.JSON(w, http.StatusCreated, fb)
}
