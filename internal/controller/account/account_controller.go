package account

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/dailydose/config"
	"github.com/lshigami/dailydose/internal/controller"
	"github.com/lshigami/dailydose/internal/dto"
	"github.com/lshigami/dailydose/internal/service"
)

type AccountController struct {
	authService service.AuthService
	cookie      config.Auth
}

func NewAccountController(authService service.AuthService, cfg *config.Config) *AccountController {
	return &AccountController{authService: authService, cookie: cfg.Auth}
}

// Register godoc
// @Summary Register an account
// @Description Creates a STUDENT (default) or QAUTHOR account.
// @Tags Auth
// @Accept json
// @Produce json
// @Param account body dto.RegisterRequest true "Account data"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (c *AccountController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	user, err := c.authService.Register(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials, updates the login streak, opens today's session and sets the session cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 403 {object} dto.ErrorResponse "Account not provisioned"
// @Router /auth/login [post]
func (c *AccountController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !controller.BindJSON(ctx, &req) {
		return
	}
	result, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	c.setSessionCookie(ctx, result.Token, int(c.cookie.SessionTTL.Seconds()))
	ctx.JSON(http.StatusOK, dto.LoginResponse{User: result.User, ExpiresAt: result.ExpiresAt})
}

// Logout godoc
// @Summary Log out
// @Description Ends the active study session and clears the session cookie.
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /auth/logout [post]
func (c *AccountController) Logout(ctx *gin.Context) {
	caller, ok := controller.Caller(ctx)
	if !ok {
		return
	}
	if err := c.authService.Logout(ctx.Request.Context(), caller.ID); err != nil {
		controller.RespondError(ctx, err)
		return
	}
	c.setSessionCookie(ctx, "", -1)
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}

// Me godoc
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /auth/me [get]
func (c *AccountController) Me(ctx *gin.Context) {
	caller, ok := controller.Caller(ctx)
	if !ok {
		return
	}
	user, err := c.authService.Me(ctx.Request.Context(), caller.ID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

func (c *AccountController) setSessionCookie(ctx *gin.Context, value string, maxAge int) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.cookie.CookieName, value, maxAge, "/", "", c.cookie.CookieSecure, true)
}
