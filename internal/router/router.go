package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/dailydose/config"
	"github.com/lshigami/dailydose/internal/controller/account"
	"github.com/lshigami/dailydose/internal/controller/admin"
	"github.com/lshigami/dailydose/internal/controller/author"
	"github.com/lshigami/dailydose/internal/controller/student"
	"github.com/lshigami/dailydose/internal/dto"
	"github.com/lshigami/dailydose/internal/middleware"
	"github.com/lshigami/dailydose/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
)

// NewGinEngine builds the engine with request logging, recovery, CORS, the
// health check and Swagger UI.
func NewGinEngine(cfg *config.Config) (*gin.Engine, error) {
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := dto.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.MessageResponse{Message: "ok"})
	})
	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return r, nil
}

type Params struct {
	fx.In

	Engine      *gin.Engine
	Config      *config.Config
	AuthService service.AuthService
	Account     *account.AccountController
	Admin       *admin.AdminController
	Questions   *author.QuestionController
	Student     *student.StudentController
}

// RegisterRoutes mounts the API under /api/v1 behind the permission table.
func RegisterRoutes(p Params) {
	api := p.Engine.Group("/api/v1")
	api.Use(middleware.Authenticate(p.AuthService, p.Config.Auth.CookieName, middleware.Permissions))

	auth := api.Group("/auth")
	{
		auth.POST("/register", p.Account.Register)
		auth.POST("/login", p.Account.Login)
		auth.POST("/logout", p.Account.Logout)
		auth.GET("/me", p.Account.Me)
	}

	questions := api.Group("/questions")
	{
		questions.GET("", p.Questions.ListQuestions)
		questions.POST("", p.Questions.CreateQuestion)
		questions.GET("/:id", p.Questions.GetQuestion)
		questions.PUT("/:id", p.Questions.UpdateQuestion)
		questions.DELETE("/:id", p.Questions.DeleteQuestion)
		questions.POST("/:id/explanation-draft", p.Questions.DraftExplanation)
	}

	subjects := api.Group("/subjects")
	{
		subjects.GET("", p.Admin.ListSubjects)
		subjects.POST("", p.Admin.CreateSubject)
		subjects.PUT("/:id", p.Admin.UpdateSubject)
		subjects.DELETE("/:id", p.Admin.DeleteSubject)
	}
	api.GET("/users", p.Admin.ListUsers)

	studentGroup := api.Group("/student")
	{
		studentGroup.GET("/subjects", p.Student.ListSubjects)
		studentGroup.POST("/subjects", p.Student.SelectSubject)
		studentGroup.POST("/submit-answer", p.Student.SubmitAnswer)
		studentGroup.POST("/end-session", p.Student.EndSession)
		studentGroup.GET("/analytics", p.Student.GetAnalytics)
	}
	api.GET("/daily-questions", p.Student.GetDailyQuestions)
	api.POST("/daily-questions", p.Student.CompleteDailyQuestions)

	log.Info().Int("routes", len(p.Engine.Routes())).Msg("API routes registered")
}
