package api

import (
	"github.com/gin-gonic/gin"

	"github.com/freshmart/storefront/internal/handlers"
)

func registerAuthRoutes(engine *gin.Engine, h *handlers.AuthHandler) {
	auth := engine.Group("/api/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/verify-otp", h.VerifyOTP)
		auth.POST("/resend-otp", h.ResendOTP)
	}
}
