package http

import "github.com/gin-gonic/gin"

func RegisterAuthRoutes(r *gin.RouterGroup, handler *AuthHandler) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
		auth.POST("/refresh-token", handler.RefreshToken)
		auth.POST("/logout", handler.Logout)
	}
}
