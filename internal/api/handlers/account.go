package handlers

import (
	"context"
	"net/http"

	"github.com/smarterworkco/GPT-UI/internal/api"
	"github.com/smarterworkco/GPT-UI/internal/api/middleware"
	"github.com/smarterworkco/GPT-UI/internal/domain"
)

type UserReader interface {
	GetUser(ctx context.Context, id int64) (*domain.User, error)
}

type BusinessUpdater interface {
	UpdateBusiness(ctx context.Context, id int64, patch domain.BusinessPatch) (*domain.Business, error)
}

// AccountHandler serves the caller's user and business profile
type AccountHandler struct {
	users      UserReader
	businesses BusinessUpdater
}

func NewAccountHandler(users UserReader, businesses BusinessUpdater) *AccountHandler {
	return &AccountHandler{users: users, businesses: businesses}
}

// UpdateBusinessRequest replaces name and merges the other fields that are
// present. An empty string clears an optional field.
type UpdateBusinessRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Description  *string `json:"description"`
	Industry     *string `json:"industry" validate:"omitempty,max=100"`
	LogoURL      *string `json:"logoUrl" validate:"omitempty,url_or_empty"`
	PrimaryColor *string `json:"primaryColor" validate:"omitempty,hexcolor_or_empty"`
	AccentColor  *string `json:"accentColor" validate:"omitempty,hexcolor_or_empty"`
}

func (h *AccountHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		api.HandleError(w, r, err)
		return
	}
	api.JSON(w, http.StatusOK, user)
}

func (h *AccountHandler) GetBusiness(w http.ResponseWriter, r *http.Request) {
	api.JSON(w, http.StatusOK, middleware.GetBusiness(r.Context()))
}

func (h *AccountHandler) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	var req UpdateBusinessRequest
	if !api.Decode(w, r, &req) {
		return
	}

	business := middleware.GetBusiness(r.Context())
	updated, err := h.businesses.UpdateBusiness(r.Context(), business.ID, domain.BusinessPatch{
		Name:         &req.Name,
		Description:  req.Description,
		Industry:     req.Industry,
		LogoURL:      req.LogoURL,
		PrimaryColor: req.PrimaryColor,
		AccentColor:  req.AccentColor,
	})
	if err != nil {
		api.HandleError(w, r, err)
		return
	}
	api.JSON(w, http.StatusOK, updated)
}
