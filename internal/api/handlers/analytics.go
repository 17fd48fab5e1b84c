package handlers

import (
	"context"
	"net/http"

	"github.com/smarterworkco/GPT-UI/internal/api"
	"github.com/smarterworkco/GPT-UI/internal/api/middleware"
	"github.com/smarterworkco/GPT-UI/internal/domain"
)

type MetricsSource interface {
	GetBusinessMetrics(ctx context.Context, businessID int64) (domain.BusinessMetrics, error)
}

type AnalyticsHandler struct {
	source MetricsSource
}

func NewAnalyticsHandler(source MetricsSource) *AnalyticsHandler {
	return &AnalyticsHandler{source: source}
}

func (h *AnalyticsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	business := middleware.GetBusiness(r.Context())
	metrics, err := h.source.GetBusinessMetrics(r.Context(), business.ID)
	if err != nil {
		api.HandleError(w, r, err)
		return
	}
	api.JSON(w, http.StatusOK, metrics)
}
