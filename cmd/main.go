package main

import (
  "context"
  "fmt"
  "os"
  "time"
  "github.com/joho/godotenv"
  "github.com/matchwise/matchwise-backend/internal/catalog"
  "github.com/matchwise/matchwise-backend/internal/db"
  "github.com/matchwise/matchwise-backend/internal/handlers"
  "github.com/matchwise/matchwise-backend/internal/logger"
  "github.com/matchwise/matchwise-backend/internal/middleware"
  "github.com/matchwise/matchwise-backend/internal/observability"
  "github.com/matchwise/matchwise-backend/internal/repos"
  "github.com/matchwise/matchwise-backend/internal/server"
  "github.com/matchwise/matchwise-backend/internal/services"
  "github.com/matchwise/matchwise-backend/internal/utils"
)

func main() {
  _ = godotenv.Load()

  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Tracing
  otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
    ServiceName: "matchwise-backend",
    Environment: os.Getenv("APP_ENV"),
    Version:     os.Getenv("APP_VERSION"),
  })
  if otelShutdown != nil {
    defer otelShutdown(context.Background())
  }

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  userTokenRepo := repos.NewUserTokenRepo(thePG, log)
  statementRepo := repos.NewPersonalStatementRepo(thePG, log)
  experienceRepo := repos.NewExperienceRepo(thePG, log)
  researchRepo := repos.NewResearchProductRepo(thePG, log)
  miscRepo := repos.NewMiscQuestionRepo(thePG, log)
  preferenceRepo := repos.NewProgramPreferenceRepo(thePG, log)
  programRepo := repos.NewProgramRepo(thePG, log)
  applicationRepo := repos.NewApplicationRepo(thePG, log)

  // Catalog
  specialtyCatalog := catalog.Load(log)

  // Services
  log.Info("Setting up Services from main...")
  openaiClient, err := services.NewOpenAIClient(log)
  if err != nil {
    log.Error("Could not init OpenAIClient", "error", err)
    os.Exit(1)
  }
  pubmedClient, err := services.NewPubMedClient(log)
  if err != nil {
    log.Error("Could not init PubMedClient", "error", err)
    os.Exit(1)
  }
  emailService, err := services.NewEmailService(log)
  if err != nil {
    log.Warn("Could not init EmailService", "error", err)
  }
  avatarService, err := services.NewAvatarService(thePG, log, userRepo)
  if err != nil {
    log.Error("Could not init AvatarService", "error", err)
    os.Exit(1)
  }
  progressService := services.NewProgressService(thePG, log, userRepo, statementRepo, researchRepo, experienceRepo, miscRepo, preferenceRepo)
  authService := services.NewAuthService(thePG, log, userRepo, avatarService, userTokenRepo, emailService, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
  userService := services.NewUserService(thePG, log, userRepo)
  statementService := services.NewStatementService(thePG, log, statementRepo, openaiClient, progressService, specialtyCatalog)
  experienceService := services.NewExperienceService(thePG, log, experienceRepo, progressService)
  researchService := services.NewResearchService(thePG, log, researchRepo, pubmedClient, progressService)
  miscService := services.NewMiscQuestionService(thePG, log, miscRepo, progressService)
  preferenceService := services.NewPreferenceService(thePG, log, preferenceRepo, progressService, specialtyCatalog)
  programService := services.NewProgramService(thePG, log, programRepo, preferenceRepo, progressService, specialtyCatalog)
  applicationService := services.NewApplicationService(thePG, log, applicationRepo, userRepo, progressService, specialtyCatalog)
  exportService := services.NewExportService(thePG, log, userRepo, statementRepo, experienceRepo, researchRepo, miscRepo, preferenceRepo, applicationRepo, progressService, emailService)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  userHandler := handlers.NewUserHandler(userService)
  statementHandler := handlers.NewStatementHandler(statementService)
  experienceHandler := handlers.NewExperienceHandler(experienceService)
  researchHandler := handlers.NewResearchHandler(researchService)
  miscHandler := handlers.NewMiscQuestionHandler(miscService)
  preferenceHandler := handlers.NewPreferenceHandler(preferenceService)
  programHandler := handlers.NewProgramHandler(programService)
  applicationHandler := handlers.NewApplicationHandler(applicationService)
  progressHandler := handlers.NewProgressHandler(progressService)
  exportHandler := handlers.NewExportHandler(exportService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:        authHandler,
    AuthMiddleware:     authMiddleware,
    UserHandler:        userHandler,
    StatementHandler:   statementHandler,
    ExperienceHandler:  experienceHandler,
    ResearchHandler:    researchHandler,
    MiscHandler:        miscHandler,
    PreferenceHandler:  preferenceHandler,
    ProgramHandler:     programHandler,
    ApplicationHandler: applicationHandler,
    ProgressHandler:    progressHandler,
    ExportHandler:      exportHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
