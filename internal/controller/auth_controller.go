package controller

import (
	"errors"
	"net/http"

	"cybersafe_backend/internal/config"
	"cybersafe_backend/internal/middleware"
	"cybersafe_backend/internal/service"
	"cybersafe_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthController handles admin login and logout.
type AuthController struct {
	AuthService *service.AuthService
	Cfg         *config.Config
}

func NewAuthController(authService *service.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{AuthService: authService, Cfg: cfg}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ctl *AuthController) Login(c *gin.Context) {
	// Demo mode needs no credentials; the auth middleware waves every
	// request through as the synthetic demo admin.
	if ctl.Cfg.Admin.DemoMode {
		util.Success(c, gin.H{"username": "demo", "demoMode": true})
		return
	}

	var body loginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		util.BadRequest(c, "username and password are required")
		return
	}

	token, err := ctl.AuthService.Login(body.Username, body.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Unauthorized(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}

	secure := ctl.Cfg.Server.Mode == "release"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AdminCookieName, token, int(ctl.Cfg.Admin.SessionTTL.Seconds()), "/", "", secure, true)
	util.Success(c, gin.H{"username": body.Username})
}

func (ctl *AuthController) Logout(c *gin.Context) {
	if claims := util.GetAdminFromContext(c); claims != nil {
		ctl.AuthService.Logout(claims.Username)
	}
	c.SetCookie(middleware.AdminCookieName, "", -1, "/", "", false, true)
	util.Success(c, nil)
}

// Me reports who is logged in; the admin UI uses it to guard its views.
func (ctl *AuthController) Me(c *gin.Context) {
	claims := util.GetAdminFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	util.Success(c, gin.H{"username": claims.Username, "demoMode": ctl.Cfg.Admin.DemoMode})
}
