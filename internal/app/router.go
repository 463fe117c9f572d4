package app

import (
	"eduflex_backend/docs"
	"eduflex_backend/internal/config"
	"eduflex_backend/internal/middleware"
	"eduflex_backend/internal/model"
	"eduflex_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.Health)

		auth := api.Group("/auth")
		{
			auth.POST("/register", c.auth.Register)
			auth.POST("/login", c.auth.Login)
			auth.GET("/profile", middleware.AuthMiddleware(cfg), c.auth.Profile)
		}

		courses := api.Group("/courses")
		{
			// course catalog is publicly readable
			courses.GET("", c.course.ListCourses)
			courses.GET("/:id", c.course.GetCourse)

			authoring := courses.Group("")
			authoring.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Instructor))
			{
				authoring.POST("", c.course.CreateCourse)
				authoring.PUT("/:id", c.course.UpdateCourse)
				authoring.DELETE("/:id", c.course.DeleteCourse)
			}
		}

		// progress routes address the caller's own record; the course id in
		// the path is the only client-supplied identifier
		progress := api.Group("/courses/:id")
		progress.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Student))
		{
			progress.GET("/progress", c.progress.GetProgress)
			progress.PUT("/module/:moduleIndex", c.progress.ToggleModule)
			progress.PUT("/complete", c.progress.CompleteCourse)
		}

		quizzes := api.Group("/quizzes")
		quizzes.Use(middleware.AuthMiddleware(cfg))
		{
			quizzes.GET("", c.quiz.ListQuizzes)
			quizzes.GET("/:id", c.quiz.GetQuiz)
			quizzes.POST("", middleware.RoleMiddleware(model.Instructor), c.quiz.CreateQuiz)
			quizzes.POST("/:id/attempt", middleware.RoleMiddleware(model.Student), c.quiz.SubmitAttempt)
			quizzes.GET("/:id/attempt", middleware.RoleMiddleware(model.Student), c.quiz.GetAttempt)
		}

		analytics := api.Group("/analytics")
		analytics.Use(middleware.AuthMiddleware(cfg))
		{
			analytics.GET("/stats", c.analytics.DashboardStats)
		}
	}
}
