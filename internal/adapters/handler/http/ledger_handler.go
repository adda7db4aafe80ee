package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-fit/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-fit/internal/core/services"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	replayedHeader       = "Idempotent-Replayed"
)

type LedgerHandler struct {
	svc *services.LedgerService
}

func NewLedgerHandler(svc *services.LedgerService) *LedgerHandler {
	return &LedgerHandler{svc: svc}
}

type recordCaloriesRequest struct {
	Calories *int `json:"calories" binding:"required"`
	// Day is accepted for compatibility and ignored.
	Day int `json:"day"`
}

type recordWorkoutRequest struct {
	ItemIDs []int `json:"item_ids"`
}

type advanceResponse struct {
	CurrentDay int `json:"current_day"`
}

type caloriesResponse struct {
	Day      int `json:"day"`
	Calories int `json:"calories"`
}

type workoutResponse struct {
	Day            int `json:"day"`
	CompletedCount int `json:"completed_count"`
}

type ledgerResponse struct {
	CurrentDay int                `json:"current_day"`
	Days       []domain.LedgerDay `json:"days"`
}

func (h *LedgerHandler) RegisterRoutes(router *gin.RouterGroup) {
	ledger := router.Group("/ledger")
	{
		ledger.GET("", h.List)
		ledger.POST("/advance", h.Advance)
		ledger.POST("/calories", h.RecordCalories)
		ledger.POST("/workouts", h.RecordWorkouts)
	}
}

// Advance godoc
// @Summary   Move to the next program day
// @Tags      ledger
// @Produce   json
// @Security  BearerAuth
// @Success   200  {object}  advanceResponse
// @Failure   404  {object}  errorResponse
// @Router    /ledger/advance [post]
func (h *LedgerHandler) Advance(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		handleError(c, domain.ErrInvalidToken)
		return
	}

	day, err := h.svc.AdvanceDay(c.Request.Context(), accountID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, advanceResponse{CurrentDay: day})
}

// RecordCalories godoc
// @Summary   Add calories to the current day
// @Tags      ledger
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     Idempotency-Key  header    string                 false  "replay-safe request key"
// @Param     body             body      recordCaloriesRequest  true   "calories to add"
// @Success   200              {object}  caloriesResponse
// @Failure   400              {object}  errorResponse
// @Failure   409              {object}  errorResponse
// @Router    /ledger/calories [post]
func (h *LedgerHandler) RecordCalories(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		handleError(c, domain.ErrInvalidToken)
		return
	}

	var req recordCaloriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.svc.RecordCalories(c.Request.Context(), services.RecordCaloriesInput{
		AccountID:      accountID,
		Calories:       *req.Calories,
		RequestedDay:   req.Day,
		IdempotencyKey: c.GetHeader(idempotencyKeyHeader),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	markReplay(c, res)
	c.JSON(http.StatusOK, caloriesResponse{Day: res.Day, Calories: res.Total})
}

// RecordWorkouts godoc
// @Summary   Mark workout items completed on the current day
// @Tags      ledger
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     Idempotency-Key  header    string                false  "replay-safe request key"
// @Param     body             body      recordWorkoutRequest  true   "completed item ids"
// @Success   200              {object}  workoutResponse
// @Failure   400              {object}  errorResponse
// @Router    /ledger/workouts [post]
func (h *LedgerHandler) RecordWorkouts(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		handleError(c, domain.ErrInvalidToken)
		return
	}

	var req recordWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.svc.RecordWorkoutCompletion(c.Request.Context(), services.RecordWorkoutInput{
		AccountID:      accountID,
		ItemIDs:        req.ItemIDs,
		IdempotencyKey: c.GetHeader(idempotencyKeyHeader),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	markReplay(c, res)
	c.JSON(http.StatusOK, workoutResponse{Day: res.Day, CompletedCount: res.Total})
}

// List godoc
// @Summary   Per-day ledger in ascending day order
// @Tags      ledger
// @Produce   json
// @Security  BearerAuth
// @Success   200  {object}  ledgerResponse
// @Router    /ledger [get]
func (h *LedgerHandler) List(c *gin.Context) {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		handleError(c, domain.ErrInvalidToken)
		return
	}

	view, err := h.svc.GetLedger(c.Request.Context(), accountID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ledgerResponse{CurrentDay: view.CurrentDay, Days: view.Days})
}

func markReplay(c *gin.Context, res domain.AccumulationResult) {
	if res.Replayed {
		c.Header(replayedHeader, "true")
	}
}
