package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/edutest/edutest-backend/internal/handlers"
	"github.com/edutest/edutest-backend/internal/middleware"
	"github.com/edutest/edutest-backend/internal/types"
)

type RouterConfig struct {
	AuthHandler     *handlers.AuthHandler
	AuthMiddleware  *middleware.AuthMiddleware
	UserHandler     *handlers.UserHandler
	LevelHandler    *handlers.LevelHandler
	GradeHandler    *handlers.GradeHandler
	UnitHandler     *handlers.UnitHandler
	SubUnitHandler  *handlers.SubUnitHandler
	ConceptHandler  *handlers.ConceptHandler
	QuestionHandler *handlers.QuestionHandler
	SolveHandler    *handlers.SolveHandler
	AllowOrigins    []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/auth/register", cfg.AuthHandler.Register)
		api.POST("/auth/login", cfg.AuthHandler.Login)
		api.POST("/auth/refresh", cfg.AuthHandler.Refresh)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	protected.POST("/auth/logout", cfg.AuthHandler.Logout)

	// User
	protected.GET("/users/me", cfg.UserHandler.GetMe)
	protected.PUT("/users/profile", cfg.UserHandler.UpdateProfile)

	// Curriculum reads are open to every authenticated user; the solving
	// screen drives its cascading selects off them.
	protected.GET("/levels", cfg.LevelHandler.List)
	protected.GET("/levels/:id", cfg.LevelHandler.Get)
	protected.GET("/grades", cfg.GradeHandler.List)
	protected.GET("/grades/:id", cfg.GradeHandler.Get)
	protected.GET("/grades/by-level/:levelId", cfg.GradeHandler.ListByLevel)
	protected.GET("/units", cfg.UnitHandler.List)
	protected.GET("/units/:id", cfg.UnitHandler.Get)
	protected.GET("/units/by-grade/:gradeId", cfg.UnitHandler.ListByGrade)
	protected.GET("/sub-units", cfg.SubUnitHandler.List)
	protected.GET("/sub-units/:id", cfg.SubUnitHandler.Get)
	protected.GET("/sub-units/by-unit/:unitId", cfg.SubUnitHandler.ListByUnit)
	protected.GET("/concepts", cfg.ConceptHandler.List)
	protected.GET("/concepts/:id", cfg.ConceptHandler.Get)
	protected.GET("/concepts/by-sub-unit/:subUnitId", cfg.ConceptHandler.ListBySubUnit)

	// Solving flow
	protected.GET("/solve/questions", cfg.SolveHandler.List)
	protected.POST("/solve/attempts", cfg.SolveHandler.Submit)
	protected.GET("/solve/history", cfg.SolveHandler.History)

	// Question attachments and generated images
	protected.GET("/questions/files/*path", cfg.QuestionHandler.ServeFile)
	protected.GET("/questions", cfg.QuestionHandler.List)
	protected.GET("/questions/:id", cfg.QuestionHandler.Get)

	// ===============
	// || Admin     ||
	// ===============
	admin := protected.Group("/")
	admin.Use(cfg.AuthMiddleware.RequireRole(types.RoleAdmin, types.RoleTeacher))

	admin.POST("/levels", cfg.LevelHandler.Create)
	admin.PUT("/levels/:id", cfg.LevelHandler.Update)
	admin.PUT("/levels/:id/reorder", cfg.LevelHandler.Reorder)
	admin.DELETE("/levels/:id", cfg.LevelHandler.Delete)

	admin.POST("/grades", cfg.GradeHandler.Create)
	admin.PUT("/grades/:id", cfg.GradeHandler.Update)
	admin.PUT("/grades/:id/reorder", cfg.GradeHandler.Reorder)
	admin.DELETE("/grades/:id", cfg.GradeHandler.Delete)

	admin.POST("/units", cfg.UnitHandler.Create)
	admin.PUT("/units/:id", cfg.UnitHandler.Update)
	admin.PUT("/units/:id/reorder", cfg.UnitHandler.Reorder)
	admin.DELETE("/units/:id", cfg.UnitHandler.Delete)

	admin.POST("/sub-units", cfg.SubUnitHandler.Create)
	admin.PUT("/sub-units/:id", cfg.SubUnitHandler.Update)
	admin.PUT("/sub-units/:id/reorder", cfg.SubUnitHandler.Reorder)
	admin.DELETE("/sub-units/:id", cfg.SubUnitHandler.Delete)

	admin.POST("/concepts", cfg.ConceptHandler.Create)
	admin.PUT("/concepts/:id", cfg.ConceptHandler.Update)
	admin.PUT("/concepts/:id/reorder", cfg.ConceptHandler.Reorder)
	admin.DELETE("/concepts/:id", cfg.ConceptHandler.Delete)

	admin.POST("/questions", cfg.QuestionHandler.Create)
	admin.PUT("/questions/:id", cfg.QuestionHandler.Update)
	admin.DELETE("/questions/:id", cfg.QuestionHandler.Delete)
	admin.POST("/questions/generate-ai", cfg.QuestionHandler.GenerateAI)

	return router
}
