package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
  "github.com/matchwise/matchwise-backend/internal/handlers"
  "github.com/matchwise/matchwise-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler        *handlers.AuthHandler
  AuthMiddleware     *middleware.AuthMiddleware
  UserHandler        *handlers.UserHandler
  StatementHandler   *handlers.StatementHandler
  ExperienceHandler  *handlers.ExperienceHandler
  ResearchHandler    *handlers.ResearchHandler
  MiscHandler        *handlers.MiscQuestionHandler
  PreferenceHandler  *handlers.PreferenceHandler
  ProgramHandler     *handlers.ProgramHandler
  ApplicationHandler *handlers.ApplicationHandler
  ProgressHandler    *handlers.ProgressHandler
  ExportHandler      *handlers.ExportHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()
  router.Use(otelgin.Middleware("matchwise-backend"))

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/register", cfg.AuthHandler.Register)
  router.POST("/login", cfg.AuthHandler.Login)

// ===============
// || Protected ||
// ===============
  protected := router.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Auth
  protected.POST("/refresh", cfg.AuthHandler.Refresh)
  protected.POST("/logout", cfg.AuthHandler.Logout)
  // User
  protected.GET("/user", cfg.UserHandler.GetMe)
  // Progress
  protected.GET("/progress", cfg.ProgressHandler.Recompute)
  protected.GET("/progress/ready", cfg.ProgressHandler.Ready)
  // Personal statement
  protected.GET("/personal-statement", cfg.StatementHandler.Get)
  protected.PUT("/personal-statement", cfg.StatementHandler.Save)
  protected.POST("/personal-statement/theses", cfg.StatementHandler.GenerateTheses)
  protected.POST("/personal-statement/theses/select", cfg.StatementHandler.SelectThesis)
  protected.POST("/personal-statement/draft", cfg.StatementHandler.Draft)
  protected.POST("/personal-statement/finalize", cfg.StatementHandler.Finalize)
  // Experiences
  protected.GET("/experiences", cfg.ExperienceHandler.List)
  protected.POST("/experiences", cfg.ExperienceHandler.Create)
  protected.PUT("/experiences/:id", cfg.ExperienceHandler.Update)
  protected.DELETE("/experiences/:id", cfg.ExperienceHandler.Delete)
  // Research products
  protected.GET("/research-products", cfg.ResearchHandler.List)
  protected.POST("/research-products", cfg.ResearchHandler.Create)
  protected.PUT("/research-products/:id", cfg.ResearchHandler.Update)
  protected.DELETE("/research-products/:id", cfg.ResearchHandler.Delete)
  protected.POST("/research-products/:id/enrich", cfg.ResearchHandler.Enrich)
  // Miscellaneous questions
  protected.GET("/miscellaneous", cfg.MiscHandler.Get)
  protected.PUT("/miscellaneous", cfg.MiscHandler.Save)
  // Program preferences
  protected.GET("/program-preference", cfg.PreferenceHandler.Get)
  protected.PUT("/program-preference", cfg.PreferenceHandler.Save)
  // Programs
  protected.GET("/programs", cfg.ProgramHandler.List)
  protected.GET("/programs/recommendations", cfg.ProgramHandler.Recommend)
  protected.GET("/programs/:id", cfg.ProgramHandler.Get)
  protected.POST("/programs", cfg.ProgramHandler.Create)
  protected.PUT("/programs/:id", cfg.ProgramHandler.Update)
  protected.DELETE("/programs/:id", cfg.ProgramHandler.Delete)
  // Applications
  protected.GET("/applications", cfg.ApplicationHandler.List)
  protected.POST("/applications", cfg.ApplicationHandler.Create)
  protected.PUT("/applications/:id", cfg.ApplicationHandler.Update)
  protected.DELETE("/applications/:id", cfg.ApplicationHandler.Delete)
  protected.GET("/dashboard", cfg.ApplicationHandler.Dashboard)
  // Export
  protected.POST("/export", cfg.ExportHandler.ExportPacket)

  return router
}
