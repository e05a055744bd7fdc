package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"devflow-backend/internal/shared/middleware"
	"devflow-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		setupQuestionRoutes(v1, c)
		setupAnswerRoutes(v1, c)
		setupTagRoutes(v1, c)
		setupUserRoutes(v1, c)
	}

	return router
}

// ========================================
// QUESTION ROUTES
// ========================================
func setupQuestionRoutes(v1 *gin.RouterGroup, c *container.Container) {
	questions := v1.Group("/questions")
	{
		questions.POST("", c.QuestionHandler.CreateQuestion)
		questions.GET("", c.QuestionHandler.GetQuestions)
		questions.GET("/hot", c.QuestionHandler.GetHotQuestions)
		questions.GET("/:id", c.QuestionHandler.GetQuestionByID)
		questions.PUT("/:id", c.QuestionHandler.EditQuestion)
		questions.DELETE("/:id", c.QuestionHandler.DeleteQuestion)
		questions.POST("/:id/upvote", c.QuestionHandler.UpvoteQuestion)
		questions.POST("/:id/downvote", c.QuestionHandler.DownvoteQuestion)
		questions.POST("/:id/view", c.QuestionHandler.ViewQuestion)
		questions.GET("/:id/answers", c.AnswerHandler.GetAnswers)
	}
}

// ========================================
// ANSWER ROUTES
// ========================================
func setupAnswerRoutes(v1 *gin.RouterGroup, c *container.Container) {
	answers := v1.Group("/answers")
	{
		answers.POST("", c.AnswerHandler.CreateAnswer)
		answers.DELETE("/:id", c.AnswerHandler.DeleteAnswer)
		answers.POST("/:id/upvote", c.AnswerHandler.UpvoteAnswer)
		answers.POST("/:id/downvote", c.AnswerHandler.DownvoteAnswer)
	}
}

// ========================================
// TAG ROUTES
// ========================================
func setupTagRoutes(v1 *gin.RouterGroup, c *container.Container) {
	tags := v1.Group("/tags")
	{
		tags.GET("", c.TagHandler.GetAllTags)
		tags.GET("/popular", c.TagHandler.GetTopPopularTags)
		tags.GET("/top-interacted", c.TagHandler.GetTopInteractedTags)
		tags.GET("/:id/questions", c.TagHandler.GetQuestionsByTag)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	{
		users.POST("", c.UserHandler.CreateUser)
		users.GET("", c.UserHandler.GetAllUsers)
		users.POST("/saved/toggle", c.UserHandler.ToggleSaveQuestion)
		users.GET("/:auth_id", c.UserHandler.GetUserByAuthID)
		users.PUT("/:auth_id", c.UserHandler.UpdateUser)
		users.DELETE("/:auth_id", c.UserHandler.DeleteUser)
		users.GET("/:auth_id/saved", c.UserHandler.GetSavedQuestions)
		users.GET("/:auth_id/info", c.UserHandler.GetUserInfo)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
		defer cancel()

		status := "healthy"
		httpStatus := http.StatusOK

		dbStatus := "up"
		if err := c.DB.HealthCheck(checkCtx); err != nil {
			dbStatus = "down"
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}

		redisStatus := "up"
		if c.Redis == nil {
			redisStatus = "disabled"
		} else if err := c.Redis.HealthCheck(checkCtx); err != nil {
			// Redis is non-critical, report but stay healthy
			redisStatus = "down"
		}

		ctx.JSON(httpStatus, gin.H{
			"status": status,
			"components": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
			"timestamp": time.Now().UTC(),
		})
	}
}
