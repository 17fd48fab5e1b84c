package handlers

import (
	"net/http"

	"github.com/smarterworkco/GPT-UI/internal/api"
	"github.com/smarterworkco/GPT-UI/internal/domain"
)

// ListAgents returns the catalog of chat personas
func ListAgents(w http.ResponseWriter, r *http.Request) {
	api.JSON(w, http.StatusOK, domain.Agents())
}
