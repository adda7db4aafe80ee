package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-fit/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-fit/internal/core/services"
)

type AuthHandler struct {
	auth   *services.AuthService
	tokens *services.TokenService
}

func NewAuthHandler(auth *services.AuthService, tokens *services.TokenService) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		tokens: tokens,
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	profileRequest
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token      string `json:"token"`
	AccountID  string `json:"account_id"`
	CurrentDay int    `json:"current_day"`
}

// Register godoc
// @Summary  Create an account
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body  body      registerRequest  true  "credentials and optional profile"
// @Success  201   {object}  domain.Account
// @Failure  400   {object}  errorResponse
// @Failure  409   {object}  errorResponse
// @Router   /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	account, err := h.auth.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Profile:  req.patch(),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, account)
}

// Login godoc
// @Summary  Exchange credentials for a bearer token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body  body      loginRequest  true  "credentials"
// @Success  200   {object}  loginResponse
// @Failure  401   {object}  errorResponse
// @Router   /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	account, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	token, err := h.tokens.GenerateToken(account.ID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token:      token,
		AccountID:  account.ID,
		CurrentDay: account.CurrentDay,
	})
}

// Logout godoc
// @Summary   Revoke the current bearer token
// @Tags      auth
// @Security  BearerAuth
// @Success   204
// @Router    /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	session, ok := middleware.GetSession(c)
	if !ok {
		handleError(c, domain.ErrInvalidToken)
		return
	}

	if err := h.tokens.Revoke(c.Request.Context(), session); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

// RegisterProtectedRoutes mounts the routes that need a session.
func (h *AuthHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.POST("/auth/logout", h.Logout)
}
