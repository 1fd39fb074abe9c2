package http

import (
	"github.com/gin-gonic/gin"

	"github.com/davicafu/academylab/internal/auth/application"
	"github.com/davicafu/academylab/pkg/utils"
	sharedDomain "github.com/davicafu/academylab/shared/domain"
)

// AuthHandler encapsula los endpoints HTTP de autenticación
type AuthHandler struct {
	service *application.AuthService
	cookies CookieConfig
}

func NewAuthHandler(service *application.AuthService, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{service: service, cookies: cookies}
}

// Register endpoint POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req application.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(utils.BindError(err))
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	utils.SendCreated(c, "User registered successfully", user)
}

// Login endpoint POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req application.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(utils.BindError(err))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	setCookie(c, h.cookies, AccessCookie, res.AccessToken, h.cookies.AccessTTL)
	setCookie(c, h.cookies, RefreshCookie, res.RefreshToken, h.cookies.RefreshTTL)
	utils.SendOK(c, "Login successful", res)
}

// RefreshToken endpoint POST /auth/refresh-token. Lee la cookie y, si no
// está, el campo refreshToken del body.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	token, _ := c.Cookie(RefreshCookie)
	if token == "" {
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		_ = c.ShouldBindJSON(&body)
		token = body.RefreshToken
	}
	if token == "" {
		_ = c.Error(sharedDomain.NewAuthenticationError("Refresh token is required"))
		return
	}

	access, err := h.service.Refresh(c.Request.Context(), token)
	if err != nil {
		_ = c.Error(err)
		return
	}

	setCookie(c, h.cookies, AccessCookie, access, h.cookies.AccessTTL)
	utils.SendOK(c, "Access token refreshed", gin.H{"accessToken": access})
}

// Logout endpoint POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	clearCookie(c, h.cookies, AccessCookie)
	clearCookie(c, h.cookies, RefreshCookie)
	utils.SendOK(c, "Logged out successfully", nil)
}
