package app

import (
	"cybersafe_backend/internal/config"
	"cybersafe_backend/internal/middleware"
	"cybersafe_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)
	router.GET("/api/health", c.health.HealthCheck)

	// Learner routes: every request gets an anonymous session.
	api := router.Group("/api")
	api.Use(middleware.LearnerSession(repos.session))
	{
		api.GET("/landing", c.course.Landing)
		api.GET("/modules/:step", c.course.ModuleByStep)

		api.GET("/quiz/:phase", c.course.GetQuiz)
		api.POST("/quiz/:phase", c.course.SubmitQuiz)

		api.GET("/game/:phase", c.game.GetGame)
		api.POST("/game/:phase", c.game.SubmitGame)

		api.GET("/result", c.course.Result)
		api.GET("/home-tips", c.course.HomeTips)
		api.POST("/feedback", c.course.SubmitFeedback)
		api.POST("/certificate", c.course.Certificate)
	}

	// Back office.
	admin := router.Group("/api/admin")
	{
		admin.POST("/login", c.auth.Login)

		authorized := admin.Group("")
		authorized.Use(middleware.AdminAuth(cfg))
		{
			authorized.POST("/logout", c.auth.Logout)
			authorized.GET("/me", c.auth.Me)
			authorized.GET("/dashboard", c.admin.Dashboard)

			authorized.GET("/questions", c.admin.ListQuestions)
			authorized.POST("/questions", c.admin.SaveQuestion)
			authorized.DELETE("/questions/:id", c.admin.DeleteQuestion)

			authorized.GET("/modules", c.admin.ListModules)
			authorized.POST("/modules", c.admin.SaveModule)
			authorized.DELETE("/modules/:id", c.admin.DeleteModule)
			authorized.POST("/modules/:id/image", c.admin.UploadModuleImage)

			authorized.GET("/stats.csv", c.admin.ExportCSV)
		}
	}
}
