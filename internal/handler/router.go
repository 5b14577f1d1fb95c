package handler

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-maker/internal/handler/web"
	"github.com/yourusername/quiz-maker/internal/middleware"
)

// RouterDeps - зависимости маршрутизатора
type RouterDeps struct {
	AuthHandler    *AuthHandler
	QuizHandler    *QuizHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
	AllowedOrigins []string
	Release        bool
}

// NewRouter создает роутер Gin со страницами, формами и JSON API
func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	// В release не доверяем прокси-заголовкам, в разработке доверяем localhost
	trusted := []string{"127.0.0.1", "::1"}
	if deps.Release {
		trusted = nil
	}
	if err := router.SetTrustedProxies(trusted); err != nil {
		log.Printf("Warning: failed to set trusted proxies: %v", err)
	}

	router.SetHTMLTemplate(tmpl)
	router.StaticFS("/static", web.Static())
	router.Use(deps.AuthMiddleware.LoadSession())

	authLimit := deps.RateLimiter.Limit(middleware.StrictAuthRateLimitConfig())

	// Страницы и формы
	router.GET("/", deps.QuizHandler.Index)
	router.GET("/register", deps.AuthHandler.RegisterPage)
	router.POST("/register", authLimit, deps.AuthHandler.Register)
	router.GET("/login", deps.AuthHandler.LoginPage)
	router.POST("/login", authLimit, deps.AuthHandler.Login)
	router.GET("/logout", deps.AuthHandler.Logout)
	router.GET("/quizzes", deps.QuizHandler.ListPage)
	router.GET("/quiz/:quizId", deps.QuizHandler.QuizPage)

	create := router.Group("/create")
	create.Use(deps.AuthMiddleware.RequireSession())
	{
		create.GET("", deps.QuizHandler.CreatePage)
		create.POST("", deps.QuizHandler.CreateQuiz)
	}

	// JSON API
	api := router.Group("/api")
	if len(deps.AllowedOrigins) > 0 {
		api.Use(cors.New(cors.Config{
			AllowOrigins:     deps.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	{
		quizWithID := api.Group("/quiz/:quizId")
		quizWithID.Use(middleware.ExtractQuizIDParam("quizId", QuizIDContextKey))
		{
			quizWithID.GET("/data", deps.QuizHandler.GetQuizData)
			quizWithID.POST("/submit", deps.QuizHandler.SubmitQuiz)
		}

		quizzes := api.Group("/quizzes")
		{
			quizzes.GET("", deps.QuizHandler.ListQuizzes)
			quizzes.GET("/import/template", deps.QuizHandler.ImportTemplate)
			quizzes.POST("/import", deps.AuthMiddleware.RequireSessionJSON(), deps.QuizHandler.ImportQuiz)
		}
	}

	return router, nil
}
