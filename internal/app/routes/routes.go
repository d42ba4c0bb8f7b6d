package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/jobly/internal/app/controllers"
	"github.com/yigit/jobly/internal/app/models/dto"
	"github.com/yigit/jobly/internal/middleware"
)

// SetupRouter configures all application routes. Authentication runs on every
// route; the guards decide who may proceed.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	companyController *controllers.CompanyController,
	jobController *controllers.JobController,
	userController *controllers.UserController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.Use(authMiddleware.Authenticate())
	router.NoRoute(middleware.NotFound())

	router.GET("/ping", Ping)

	auth := router.Group("/auth")
	{
		auth.POST("/token", authController.Token)
		auth.POST("/register", authController.Register)
	}

	companies := router.Group("/companies")
	{
		companies.GET("", companyController.List)
		companies.GET("/:handle", companyController.Get)
		companies.POST("", middleware.EnsureAdmin(), companyController.Create)
		companies.PATCH("/:handle", middleware.EnsureAdmin(), companyController.Update)
		companies.DELETE("/:handle", middleware.EnsureAdmin(), companyController.Remove)
	}

	jobs := router.Group("/jobs")
	{
		jobs.GET("", jobController.List)
		jobs.GET("/:id", jobController.Get)
		jobs.POST("", middleware.EnsureAdmin(), jobController.Create)
		jobs.PATCH("/:id", middleware.EnsureAdmin(), jobController.Update)
		jobs.DELETE("/:id", middleware.EnsureAdmin(), jobController.Remove)
	}

	users := router.Group("/users")
	{
		users.POST("", middleware.EnsureAdmin(), userController.Create)
		users.GET("", middleware.EnsureAdmin(), userController.List)

		self := users.Group("/:username", middleware.EnsureCorrectUserOrAdmin())
		self.GET("", userController.Get)
		self.PATCH("", userController.Update)
		self.DELETE("", userController.Remove)
		self.POST("/jobs/:id", userController.Apply)
	}
}

// Ping is the health check
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.PingResponse
// @Router /ping [get]
func Ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.PingResponse{Message: "pong"})
}
