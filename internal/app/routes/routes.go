package routes

import (
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/app/controllers"
	"github.com/Abhisheksinghchauhan192/AuthenticationProject/internal/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	teacherController *controllers.TeacherController,
	authMiddleware *middleware.AuthMiddleware,
	loginThrottle gin.HandlerFunc,
) {
	// --- Public Auth routes ---
	api := router.Group("/api")
	{
		api.POST("/signup", authController.Register)
		api.POST("/login", loginThrottle, authController.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := router.Group("")
	authenticated.Use(authMiddleware.SessionGuard())
	{
		authenticated.POST("/api/logout", authController.Logout)
		authenticated.GET("/api/me", authController.Me)

		authenticated.POST("/teacher", teacherController.CreateProfile)
		authenticated.GET("/profile", teacherController.GetProfile)
		authenticated.GET("/profiles", teacherController.ListProfiles)
	}

	router.NoRoute(middleware.NotFound)
}
