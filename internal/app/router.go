package app

import (
	"learnpath_backend/docs"
	"learnpath_backend/internal/config"
	"learnpath_backend/internal/middleware"
	"learnpath_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/user/signup", c.auth.Signup)
		public.POST("/user/signin", c.auth.Signin)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg.JWT.Secret, repos.user))
	{
		a.registerUserRoutes(authGroup, c)
		a.registerRoadmapRoutes(authGroup, c)
		a.registerTopicRoutes(authGroup, c)
	}
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	user := rg.Group("/user")
	{
		user.GET("/me", c.user.GetProfile)
		user.GET("/profile", c.user.GetProfile)
		user.PUT("/profile", c.user.UpdateProfile)
		user.PUT("/password", c.user.ChangePassword)
		user.PUT("/activity", c.user.TouchActivity)
		user.DELETE("", c.user.DeleteAccount)
	}
}

func (a *App) registerRoadmapRoutes(rg *gin.RouterGroup, c *controllers) {
	roadmap := rg.Group("/roadmap")
	{
		roadmap.POST("", c.roadmap.Generate)
		roadmap.GET("", c.roadmap.List)
		roadmap.POST("/import", c.roadmap.Import)
		roadmap.POST("/progress", c.roadmap.UpdateProgress)
		roadmap.GET("/:id", c.roadmap.Get)
	}
}

func (a *App) registerTopicRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/module-content/generate", c.content.Generate)
	rg.GET("/module-content/:topic", c.content.Get)

	rg.POST("/quiz/generate", c.quiz.Generate)
	rg.GET("/quiz/:topic", c.quiz.Get)
}
