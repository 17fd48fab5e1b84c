package handlers

import (
	"context"
	"net/http"

	"github.com/smarterworkco/GPT-UI/internal/api"
	"github.com/smarterworkco/GPT-UI/internal/api/middleware"
	"github.com/smarterworkco/GPT-UI/internal/domain"
	"github.com/smarterworkco/GPT-UI/internal/service"
)

type ChatRepository interface {
	GetChatSessions(ctx context.Context, businessID int64) ([]domain.ChatSession, error)
	GetChatSession(ctx context.Context, id int64) (*domain.ChatSession, error)
	CreateChatSession(ctx context.Context, in domain.CreateChatSessionInput) (*domain.ChatSession, error)
	GetChatMessages(ctx context.Context, sessionID int64) ([]domain.ChatMessage, error)
	CreateChatMessage(ctx context.Context, in domain.CreateChatMessageInput) (*domain.ChatMessage, error)
}

type ChatService interface {
	Ask(ctx context.Context, session *domain.ChatSession, content string) (*service.AskResult, error)
	Prompt(ctx context.Context, prompt string) (string, error)
}

type ChatHandler struct {
	repo ChatRepository
	svc  ChatService
}

func NewChatHandler(repo ChatRepository, svc ChatService) *ChatHandler {
	return &ChatHandler{repo: repo, svc: svc}
}

type CreateSessionRequest struct {
	AgentType string `json:"agentType" validate:"required,oneof=general sop compliance social"`
}

type CreateMessageRequest struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

type AskRequest struct {
	Content string `json:"content" validate:"required,max=8000"`
}

type PromptRequest struct {
	Prompt string `json:"prompt" validate:"required,max=8000"`
}

type PromptResponse struct {
	Reply string `json:"reply"`
}

func (h *ChatHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	business := middleware.GetBusiness(r.Context())
	sessions, err := h.repo.GetChatSessions(r.Context(), business.ID)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}
	api.JSON(w, http.StatusOK, sessions)
}

func (h *ChatHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if !api.Decode(w, r, &req) {
		return
	}

	business := middleware.GetBusiness(r.Context())
	session, err := h.repo.CreateChatSession(r.Context(), domain.CreateChatSessionInput{
		AgentType:  domain.AgentType(req.AgentType),
		BusinessID: business.ID,
	})
	if err != nil {
		api.HandleError(w, r, err)
		return
	}
	api.JSON(w, http.StatusCreated, session)
}

func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	session, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	msgs, err := h.repo.GetChatMessages(r.Context(), session.ID)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}
	api.JSON(w, http.StatusOK, msgs)
}

func (h *ChatHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	session, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	var req CreateMessageRequest
	if !api.Decode(w, r, &req) {
		return
	}

	msg, err := h.repo.CreateChatMessage(r.Context(), domain.CreateChatMessageInput{
		SessionID: session.ID,
		Role:      domain.MessageRole(req.Role),
		Content:   req.Content,
	})
	if err != nil {
		api.HandleError(w, r, err)
		return
	}
	api.JSON(w, http.StatusCreated, msg)
}

// Ask records the user's message and the agent's reply in one round trip
func (h *ChatHandler) Ask(w http.ResponseWriter, r *http.Request) {
	session, ok := h.loadSession(w, r)
	if !ok {
		return
	}

	var req AskRequest
	if !api.Decode(w, r, &req) {
		return
	}

	res, err := h.svc.Ask(r.Context(), session, req.Content)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}
	api.JSON(w, http.StatusCreated, res)
}

// Prompt is a stateless single-turn completion
func (h *ChatHandler) Prompt(w http.ResponseWriter, r *http.Request) {
	var req PromptRequest
	if !api.Decode(w, r, &req) {
		return
	}

	reply, err := h.svc.Prompt(r.Context(), req.Prompt)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}
	api.JSON(w, http.StatusOK, PromptResponse{Reply: reply})
}

func (h *ChatHandler) loadSession(w http.ResponseWriter, r *http.Request) (*domain.ChatSession, bool) {
	id, ok := pathID(r, "id")
	if !ok {
		api.NotFound(w)
		return nil, false
	}

	session, err := h.repo.GetChatSession(r.Context(), id)
	if err != nil {
		api.HandleError(w, r, err)
		return nil, false
	}

	if session.BusinessID != middleware.GetBusiness(r.Context()).ID {
		api.NotFound(w)
		return nil, false
	}
	return session, true
}
