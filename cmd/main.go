package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/edutest/edutest-backend/internal/clients/redis"
	"github.com/edutest/edutest-backend/internal/db"
	"github.com/edutest/edutest-backend/internal/handlers"
	"github.com/edutest/edutest-backend/internal/logger"
	"github.com/edutest/edutest-backend/internal/middleware"
	"github.com/edutest/edutest-backend/internal/repos"
	"github.com/edutest/edutest-backend/internal/server"
	"github.com/edutest/edutest-backend/internal/services"
	"github.com/edutest/edutest-backend/internal/taxonomy"
	"github.com/edutest/edutest-backend/internal/types"
	"github.com/edutest/edutest-backend/internal/utils"
)

func main() {
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

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	uploadRoot := utils.GetEnv("UPLOAD_DIR", "./uploads", log)
	seedFile := utils.GetEnv("CURRICULUM_SEED_FILE", "./seeds/curriculum.yaml", log)
	port := utils.GetEnv("PORT", "8080", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	levelRepo := repos.NewLevelRepo(thePG, log)
	gradeRepo := repos.NewGradeRepo(thePG, log)
	unitRepo := repos.NewUnitRepo(thePG, log)
	subUnitRepo := repos.NewSubUnitRepo(thePG, log)
	conceptRepo := repos.NewConceptRepo(thePG, log)
	questionRepo := repos.NewQuestionRepo(thePG, log)
	attemptRepo := repos.NewAttemptRepo(thePG, log)
	aiCallLogRepo := repos.NewAICallLogRepo(thePG, log)

	// Taxonomy snapshot store, optionally backed by redis
	var cache taxonomy.SnapshotCache
	if redisCache, err := redis.NewSnapshotCache(log); err != nil {
		log.Warn("Redis snapshot cache unavailable, running without it", "error", err)
	} else {
		cache = redisCache
	}
	store := taxonomy.NewStore(log, taxonomy.Sources{
		Levels: func(ctx context.Context) ([]types.Level, error) {
			return levelRepo.GetAll(ctx, nil)
		},
		Grades: func(ctx context.Context) ([]types.Grade, error) {
			return gradeRepo.GetAll(ctx, nil)
		},
		Units: func(ctx context.Context) ([]types.Unit, error) {
			return unitRepo.GetAll(ctx, nil)
		},
		SubUnits: func(ctx context.Context) ([]types.SubUnit, error) {
			return subUnitRepo.GetAll(ctx, nil)
		},
		Concepts: func(ctx context.Context) ([]types.Concept, error) {
			return conceptRepo.GetAll(ctx, nil)
		},
	}, cache)

	// Services
	log.Info("Setting up Services from main...")
	fileService, err := services.NewFileStorageService(log, uploadRoot)
	if err != nil {
		log.Fatal("Could not init FileStorageService", "error", err)
	}
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, unitRepo, subUnitRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	userService := services.NewUserService(thePG, log, userRepo, store)
	levelService := services.NewLevelService(thePG, log, levelRepo, store)
	gradeService := services.NewGradeService(thePG, log, gradeRepo, levelRepo, store)
	unitService := services.NewUnitService(thePG, log, unitRepo, gradeRepo, store)
	subUnitService := services.NewSubUnitService(thePG, log, subUnitRepo, unitRepo, store)
	conceptService := services.NewConceptService(thePG, log, conceptRepo, subUnitRepo, store)
	questionService := services.NewQuestionService(thePG, log, questionRepo, conceptRepo, attemptRepo, store, fileService)
	solveService := services.NewSolveService(thePG, log, questionRepo, attemptRepo, userRepo, store)

	var genService services.QuestionGenService
	if aiClient, err := services.NewOpenAIClient(log); err != nil {
		log.Warn("OpenAI client unavailable, AI generation disabled", "error", err)
	} else {
		genService = services.NewQuestionGenService(thePG, log, aiClient, conceptRepo, aiCallLogRepo, store, fileService)
	}

	// Seed + first snapshot
	seedService := services.NewSeedService(thePG, log, levelRepo)
	if err := seedService.SeedIfEmpty(context.Background(), seedFile); err != nil {
		log.Warn("Curriculum seed failed", "error", err)
	}
	if !store.WarmFromCache(context.Background()) {
		if _, err := store.LoadAll(context.Background()); err != nil {
			log.Warn("Initial taxonomy load failed", "error", err)
		}
	}

	// Handlers
	log.Info("Setting up Handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	levelHandler := handlers.NewLevelHandler(levelService)
	gradeHandler := handlers.NewGradeHandler(gradeService)
	unitHandler := handlers.NewUnitHandler(unitService)
	subUnitHandler := handlers.NewSubUnitHandler(subUnitService)
	conceptHandler := handlers.NewConceptHandler(conceptService)
	questionHandler := handlers.NewQuestionHandler(questionService, genService, fileService)
	solveHandler := handlers.NewSolveHandler(solveService)
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	var origins []string
	if raw := os.Getenv("CORS_ALLOW_ORIGINS"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	router := server.NewRouter(server.RouterConfig{
		AuthHandler:     authHandler,
		AuthMiddleware:  authMiddleware,
		UserHandler:     userHandler,
		LevelHandler:    levelHandler,
		GradeHandler:    gradeHandler,
		UnitHandler:     unitHandler,
		SubUnitHandler:  subUnitHandler,
		ConceptHandler:  conceptHandler,
		QuestionHandler: questionHandler,
		SolveHandler:    solveHandler,
		AllowOrigins:    origins,
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
