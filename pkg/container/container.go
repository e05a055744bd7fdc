package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"devflow-backend/internal/config"
	"devflow-backend/internal/infrastructure/cache"
	"devflow-backend/internal/infrastructure/database"
	"devflow-backend/internal/domains/reputation"
	"devflow-backend/pkg/revalidate"

	answerHandler "devflow-backend/internal/domains/answer/handler"
	answerRepo "devflow-backend/internal/domains/answer/repository"
	answerService "devflow-backend/internal/domains/answer/service"
	interactionRepo "devflow-backend/internal/domains/interaction/repository"
	questionHandler "devflow-backend/internal/domains/question/handler"
	questionRepo "devflow-backend/internal/domains/question/repository"
	questionService "devflow-backend/internal/domains/question/service"
	tagHandler "devflow-backend/internal/domains/tag/handler"
	tagRepo "devflow-backend/internal/domains/tag/repository"
	tagService "devflow-backend/internal/domains/tag/service"
	userHandler "devflow-backend/internal/domains/user/handler"
	userRepo "devflow-backend/internal/domains/user/repository"
	userService "devflow-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Every component is a
// singleton built once at startup.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================

	Config      *config.Config
	DB          *database.PostgresDB
	Redis       *cache.RedisClient
	Revalidator revalidate.Signaler

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================

	QuestionRepo    questionRepo.QuestionRepository
	AnswerRepo      answerRepo.AnswerRepository
	TagRepo         tagRepo.TagRepository
	UserRepo        userRepo.UserRepository
	InteractionRepo interactionRepo.InteractionRepository

	// ========================================
	// DOMAIN POLICY
	// ========================================

	Ledger *reputation.Ledger

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================

	QuestionService questionService.ServiceInterface
	AnswerService   answerService.ServiceInterface
	TagService      tagService.ServiceInterface
	UserService     userService.ServiceInterface

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================

	QuestionHandler *questionHandler.QuestionHandler
	AnswerHandler   *answerHandler.AnswerHandler
	TagHandler      *tagHandler.TagHandler
	UserHandler     *userHandler.UserHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer initializes the whole dependency graph in order: config,
// infrastructure, repositories, policy, services, handlers.
func NewContainer() (*Container, error) {
	log.Println("Initializing DI container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("Config loaded (environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	// ========================================
	// STEP 3: INITIALIZE REDIS
	// ========================================
	// Redis failure is non-critical: page invalidation degrades to a no-op,
	// content mutations still work.
	redisClient := cache.NewRedisClient(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)

	if err := redisClient.Connect(context.Background()); err != nil {
		log.Printf("Redis connection failed (non-critical): %v", err)
		c.Revalidator = revalidate.Noop{}
	} else {
		c.Redis = redisClient
		c.Revalidator = cache.NewRevalidator(redisClient)
	}

	// ========================================
	// STEP 4: INITIALIZE REPOSITORIES
	// ========================================
	c.initRepositories()

	// ========================================
	// STEP 5: INITIALIZE SERVICES
	// ========================================
	c.initServices()

	// ========================================
	// STEP 6: INITIALIZE HANDLERS
	// ========================================
	c.initHandlers()

	log.Println("DI container initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.QuestionRepo = questionRepo.NewPostgresQuestionRepository(pool)
	c.AnswerRepo = answerRepo.NewPostgresAnswerRepository(pool)
	c.TagRepo = tagRepo.NewPostgresTagRepository(pool)
	c.UserRepo = userRepo.NewPostgresUserRepository(pool)
	c.InteractionRepo = interactionRepo.NewPostgresInteractionRepository(pool)
}

func (c *Container) initServices() {
	// The user repository doubles as the reputation store: reputation is a
	// column on the users table.
	c.Ledger = reputation.NewLedger(c.UserRepo)

	c.TagService = tagService.NewTagService(
		c.TagRepo,
		c.InteractionRepo,
		c.UserRepo, // user existence checks
	)

	c.QuestionService = questionService.NewQuestionService(
		c.QuestionRepo,
		c.TagService, // tag resolution is a tag-domain concern
		c.InteractionRepo,
		c.Ledger,
		c.Revalidator,
	)

	c.AnswerService = answerService.NewAnswerService(
		c.AnswerRepo,
		c.QuestionRepo,
		c.InteractionRepo,
		c.Ledger,
		c.Revalidator,
	)

	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.Revalidator,
	)
}

func (c *Container) initHandlers() {
	c.QuestionHandler = questionHandler.NewQuestionHandler(c.QuestionService)
	c.AnswerHandler = answerHandler.NewAnswerHandler(c.AnswerService)
	c.TagHandler = tagHandler.NewTagHandler(c.TagService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases infrastructure resources during graceful shutdown.
func (c *Container) Cleanup() {
	log.Println("Cleaning up container resources...")

	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
		log.Println("Database connections closed")
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Printf("Failed to close Redis: %v", err)
		} else {
			log.Println("Redis connections closed")
		}
	}

	log.Println("Container cleanup completed")
}
