package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-fit/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-fit/internal/core/services"
)

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.GetSummary)
}

// GetSummary godoc
// @Summary   Chart data and totals for the whole program
// @Tags      stats
// @Produce   json
// @Security  BearerAuth
// @Success   200  {object}  domain.LedgerSummary
// @Router    /stats [get]
func (h *StatsHandler) GetSummary(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		handleError(c, domain.ErrInvalidToken)
		return
	}

	summary, err := h.svc.GetSummary(c.Request.Context(), accountID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
