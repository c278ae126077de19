package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"blog-backend/internal/config"
	infraCache "blog-backend/internal/infrastructure/cache"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/internal/infrastructure/storage"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/jwt"

	"blog-backend/internal/domains/author"
	authorHandler "blog-backend/internal/domains/author/handler"
	authorRepo "blog-backend/internal/domains/author/repository"
	authorService "blog-backend/internal/domains/author/service"
	"blog-backend/internal/domains/blogpost"
	blogpostHandler "blog-backend/internal/domains/blogpost/handler"
	blogpostRepo "blog-backend/internal/domains/blogpost/repository"
	blogpostService "blog-backend/internal/domains/blogpost/service"
	"blog-backend/internal/domains/user"
	userHandler "blog-backend/internal/domains/user/handler"
	userRepo "blog-backend/internal/domains/user/repository"
	userService "blog-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Every component is a
// singleton built once at startup, in dependency order.
type Container struct {
	// Infrastructure, shared across all domains
	Config         *config.Config
	DB             *database.PostgresDB
	Cache          cache.Cache
	Storage        *storage.MinIOStorage
	ImageProcessor *storage.ImageProcessor
	JWTManager     *jwt.Manager

	// Repositories (data access)
	UserRepo      user.Repository
	AuthorRepo    author.Repository
	BlogPostRepo  blogpost.Repository
	PostImageRepo blogpost.ImageRepository

	// Services (business logic)
	UserService     user.Service
	AuthorService   author.Service
	BlogPostService blogpost.Service

	// Handlers (HTTP)
	UserHandler     *userHandler.UserHandler
	AuthorHandler   *authorHandler.AuthorHandler
	BlogPostHandler *blogpostHandler.BlogPostHandler
}

// ========================================
// CONSTRUCTOR
// ========================================

// NewContainer builds the full dependency graph. Initialization order
// matters: config, then infrastructure, then repositories, services and
// handlers on top.
func NewContainer() (*Container, error) {
	log.Println("[CONTAINER] Initializing...")

	c := &Container{}

	// Step 1: configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[CONTAINER] Config loaded (environment: %s)", cfg.App.Environment)

	// Step 2: database
	db := database.NewPostgresDB(cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	// Step 3: cache
	// Redis failure is non-critical: listings fall through to the database.
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			log.Printf("[CONTAINER] Redis connection failed (non-critical): %v", err)
		}
	}
	c.Cache = redisCache

	// Step 4: object storage and image pipeline
	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = minioStorage
	c.ImageProcessor = storage.NewImageProcessor()

	// Step 5: auth
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// Step 6: domain layers, bottom-up
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("[CONTAINER] Initialized successfully")
	return c, nil
}

// ========================================
// LAYER INITIALIZATION
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.AuthorRepo = authorRepo.NewPostgresRepository(pool)
	c.BlogPostRepo = blogpostRepo.NewPostgresRepository(pool)
	c.PostImageRepo = blogpostRepo.NewImagePostgresRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.Config.JWT.AccessTokenExpiry)
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.BlogPostService = blogpostService.NewBlogPostService(
		c.BlogPostRepo,
		c.PostImageRepo,
		c.AuthorRepo,
		c.Cache,
		c.Storage,
		c.ImageProcessor,
	)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BlogPostHandler = blogpostHandler.NewBlogPostHandler(c.BlogPostService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases infrastructure resources. Call on shutdown.
func (c *Container) Cleanup() {
	log.Println("[CONTAINER] Cleaning up...")

	if c.DB != nil {
		c.DB.Close()
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("[CONTAINER] Redis close failed: %v", err)
		}
	}

	log.Println("[CONTAINER] Cleanup complete")
}
