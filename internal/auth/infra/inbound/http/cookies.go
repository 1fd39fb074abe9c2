package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"
)

// CookieConfig controla los atributos de las cookies de sesión.
type CookieConfig struct {
	Secure     bool // sólo en producción
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func setCookie(c *gin.Context, cfg CookieConfig, name, value string, ttl time.Duration) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteNoneMode,
	})
}

func clearCookie(c *gin.Context, cfg CookieConfig, name string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteNoneMode,
	})
}
