package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-fit/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-fit/internal/core/services"
)

type AccountHandler struct {
	svc *services.AccountService
}

func NewAccountHandler(svc *services.AccountService) *AccountHandler {
	return &AccountHandler{svc: svc}
}

// profileRequest lists the patchable profile attributes. Omitted fields are
// left unchanged.
type profileRequest struct {
	Email        *string  `json:"email"`
	Age          *int     `json:"age"`
	Height       *float64 `json:"height"`
	Weight       *float64 `json:"weight"`
	Goal         *string  `json:"goal"`
	RiskLevel    *string  `json:"risk_level"`
	ProgramLevel *string  `json:"program_level"`
	GoalDuration *string  `json:"goal_duration"`
	PictureRef   *string  `json:"picture_ref"`
}

func (r profileRequest) patch() domain.ProfilePatch {
	return domain.ProfilePatch{
		Email:        r.Email,
		Age:          r.Age,
		Height:       r.Height,
		Weight:       r.Weight,
		Goal:         r.Goal,
		RiskLevel:    r.RiskLevel,
		ProgramLevel: r.ProgramLevel,
		GoalDuration: r.GoalDuration,
		PictureRef:   r.PictureRef,
	}
}

func (h *AccountHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/me", h.Get)
	router.PATCH("/me", h.Update)
}

// Get godoc
// @Summary   Current account profile
// @Tags      account
// @Produce   json
// @Security  BearerAuth
// @Success   200  {object}  domain.Account
// @Router    /me [get]
func (h *AccountHandler) Get(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		handleError(c, domain.ErrInvalidToken)
		return
	}

	account, err := h.svc.GetProfile(c.Request.Context(), accountID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// Update godoc
// @Summary   Patch profile attributes
// @Tags      account
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      profileRequest  true  "fields to change"
// @Success   200   {object}  domain.Account
// @Failure   400   {object}  errorResponse
// @Router    /me [patch]
func (h *AccountHandler) Update(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		handleError(c, domain.ErrInvalidToken)
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	account, err := h.svc.UpdateProfile(c.Request.Context(), accountID, req.patch())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}
