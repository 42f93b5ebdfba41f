package routes

import (
	"jobportal/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the public signup and login routes.
// OTP issuance and signup are rate limited per client IP.
func RegisterAuthRoutes(
	rg *gin.RouterGroup,
	authHandler handlers.AuthHandlerInterface,
	rateLimit gin.HandlerFunc,
) {
	auth := rg.Group("/auth")
	{
		auth.POST("/send-otp", rateLimit, authHandler.SendOTP)
		auth.POST("/signup", rateLimit, authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
	}
}
