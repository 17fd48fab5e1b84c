package handlers

import (
	"context"
	"net/http"

	"github.com/smarterworkco/GPT-UI/internal/api"
	"github.com/smarterworkco/GPT-UI/internal/service"
)

type AuthService interface {
	Register(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error)
	Login(ctx context.Context, identifier, password string) (*service.AuthResult, error)
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type RegisterRequest struct {
	Username     string `json:"username" validate:"required,min=3,max=50"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	BusinessName string `json:"businessName" validate:"max=200"`
	Industry     string `json:"industry" validate:"max=100"`
}

// LoginRequest accepts either a username or an email in Username
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !api.Decode(w, r, &req) {
		return
	}

	res, err := h.svc.Register(r.Context(), service.RegisterInput{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		BusinessName: req.BusinessName,
		Industry:     req.Industry,
	})
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	api.JSON(w, http.StatusCreated, res)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !api.Decode(w, r, &req) {
		return
	}

	res, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}

	api.JSON(w, http.StatusOK, res)
}
