package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hopeeiscoding/ShopEasy-web-app/internal/handlers"
	"github.com/hopeeiscoding/ShopEasy-web-app/internal/middleware"
	"github.com/hopeeiscoding/ShopEasy-web-app/internal/models"
	"github.com/hopeeiscoding/ShopEasy-web-app/internal/repositories"
	"github.com/hopeeiscoding/ShopEasy-web-app/internal/services"
	"github.com/hopeeiscoding/ShopEasy-web-app/pkg/rabbitmq"
	"github.com/hopeeiscoding/ShopEasy-web-app/pkg/redisstore"
)

func main() {
	// --- Configuration ---
	// .env first, then environment variables over the defaults below.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "shopeasy.db")
	viper.SetDefault("JWT_SECRET", "change-this-to-any-random-string")
	viper.SetDefault("SESSION_COOKIE_NAME", "shopeasy_session")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Database ---
	db, err := openDatabase(viper.GetString("DATABASE_DSN"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Item{},
		&models.List{},
		&models.ListItem{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Session store ---
	sessions := newSessionStore(
		viper.GetString("SESSION_COOKIE_NAME"),
		viper.GetString("REDIS_ADDR"),
		viper.GetString("REDIS_PASSWORD"),
	)

	// --- RabbitMQ (optional) ---
	// Event publishing is best effort: without a broker URL the
	// subsystem is skipped and every request still works.
	var mqClient *rabbitmq.Client
	if rabbitMQURL := viper.GetString("RABBITMQ_URL"); rabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Printf("Warning: failed to initialize RabbitMQ client, continuing without events: %v", err)
			mqClient = nil
		} else {
			defer mqClient.Close()
		}
	}

	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	itemRepo := repositories.NewGORMItemRepository(db)
	listRepo := repositories.NewGORMListRepository(db)

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"))
	categoryService := services.NewCategoryService(categoryRepo)
	itemService := services.NewItemService(itemRepo, categoryRepo)
	listService := services.NewListService(listRepo, itemRepo, mqClient)

	// --- Initialize Fiber App ---
	app := newApp(appDeps{
		authService:     authService,
		categoryService: categoryService,
		itemService:     itemService,
		listService:     listService,
		sessions:        sessions,
		corsOrigins:     viper.GetString("CORS_ORIGINS"),
	})

	// --- Start list event consumer ---
	// Logs received events; the place to hang notifications later.
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for list events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received list event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeListEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

// appDeps bundles everything newApp needs, so tests can build the app
// against in-memory infrastructure.
type appDeps struct {
	authService     *services.AuthService
	categoryService *services.CategoryService
	itemService     *services.ItemService
	listService     *services.ListService
	sessions        *session.Store
	corsOrigins     string
}

// newApp constructs the Fiber app with all middleware and routes.
func newApp(deps appDeps) *fiber.App {
	app := fiber.New()

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     deps.corsOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	authHandler := handlers.NewAuthHandler(deps.authService, deps.sessions)
	categoryHandler := handlers.NewCategoryHandler(deps.categoryService)
	itemHandler := handlers.NewItemHandler(deps.itemService)
	listHandler := handlers.NewListHandler(deps.listService)

	api := app.Group("/api")

	// Public routes: auth entry points and the shared catalog.
	authHandler.RegisterRoutes(api)
	categoryHandler.RegisterRoutes(api)
	itemHandler.RegisterRoutes(api)

	// List routes require an authenticated caller.
	protected := api.Group("", middleware.AuthRequired(deps.sessions, deps.authService))
	authHandler.RegisterProtectedRoutes(protected)
	listHandler.RegisterRoutes(protected)

	return app
}

// openDatabase picks the GORM driver from the DSN shape: PostgreSQL
// for URL or key=value DSNs, SQLite for everything else.
func openDatabase(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.Contains(dsn, "host=") {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
}

// newSessionStore builds the cookie session store, backed by Redis
// when an address is configured and process memory otherwise.
func newSessionStore(cookieName, redisAddr, redisPassword string) *session.Store {
	cfg := session.Config{
		KeyLookup:      "cookie:" + cookieName,
		Expiration:     7 * 24 * time.Hour,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	}

	if redisAddr != "" {
		storage, err := redisstore.New(redisstore.Config{
			Addr:     redisAddr,
			Password: redisPassword,
		})
		if err != nil {
			log.Printf("Warning: failed to connect to Redis, falling back to in-memory sessions: %v", err)
		} else {
			cfg.Storage = storage
			log.Printf("Sessions stored in Redis at %s", redisAddr)
		}
	}

	return session.New(cfg)
}
