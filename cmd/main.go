package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/recipehub/gin-recipe-api/docs" // Import generated docs
	"github.com/recipehub/gin-recipe-api/internal/config"
	"github.com/recipehub/gin-recipe-api/internal/controllers"
	"github.com/recipehub/gin-recipe-api/internal/database"
	"github.com/recipehub/gin-recipe-api/internal/middleware"
	"github.com/recipehub/gin-recipe-api/internal/models"
	"github.com/recipehub/gin-recipe-api/internal/services"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

var (
	db                *gorm.DB
	recipeController  controllers.RecipeController
	catalogController controllers.CatalogController
	userController    controllers.UserController
	authController    *controllers.AuthController
	configuration     *config.Config
)

// @title Recipe API
// @version 1.0
// @description A recipe-sharing backend with favorites, shopping carts and author subscriptions
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Set JWT secret from configuration
	middleware.SetJWTSecret(configuration.JWTSecret)

	// Initialize database connection
	setupDatabase(configuration)

	// Initialize services and controllers
	recipeService := services.NewRecipeService(db)
	membershipService := services.NewMembershipService(db)
	shoppingListService := services.NewShoppingListService(db)
	catalogService := services.NewCatalogService(db)
	userService := services.NewUserService(db)

	recipeController = controllers.NewRecipeController(
		recipeService, membershipService, shoppingListService, configuration.MediaDir)
	catalogController = controllers.NewCatalogController(catalogService)
	userController = controllers.NewUserController(userService, membershipService)
	authController = controllers.NewAuthController(userService, configuration.JWTSecret)

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase initializes the database connection and returns a gorm.DB instance
func setupDatabase(conf *config.Config) *gorm.DB {
	var err error
	db, err = database.InitDatabase(database.DatabaseConfig{
		Driver:   conf.DBDriver,
		Host:     conf.DBHost,
		Port:     conf.DBPort,
		User:     conf.DBUser,
		Password: conf.DBPassword,
		Name:     conf.DBName,
		SSLMode:  conf.DBSSLMode,
		Path:     conf.DBPath,
	})
	checkPanicErr(err)

	// Migrate the schema
	err = db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Favorite{},
		&models.ShoppingCart{},
		&models.Follow{},
	)
	checkPanicErr(err)

	// Seed tags only if the catalog is empty
	var count int64
	db.Model(&models.Tag{}).Count(&count)
	if count == 0 {
		log.Info("Tag catalog is empty, seeding initial data")
		seedDatabase()
	} else {
		log.Info("Tag catalog already seeded")
	}
	return db
}

// seedDatabase seeds the tag catalog with initial data
func seedDatabase() {
	tags := []models.Tag{
		{Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
		{Name: "Lunch", Color: "#49B64E", Slug: "lunch"},
		{Name: "Dinner", Color: "#8775D2", Slug: "dinner"},
	}
	for _, tag := range tags {
		db.Create(&tag)
	}
	log.Info("Tag catalog seeded successfully")
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	// Initialize Gin router
	router := gin.Default()

	// Define routes
	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	v1 := router.Group("/api/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
		}

		// Catalog reads are public
		v1.GET("/tags", catalogController.GetAllTags)
		v1.GET("/tags/:id", catalogController.GetTagByID)
		v1.GET("/ingredients", catalogController.GetAllIngredients)
		v1.GET("/ingredients/:id", catalogController.GetIngredientByID)

		// Catalog writes are an admin path
		adminApi := v1.Group("")
		adminApi.Use(middleware.JWTAuth(), middleware.RequireRole("admin"))
		{
			adminApi.POST("/tags", catalogController.CreateTag)
			adminApi.POST("/ingredients", catalogController.CreateIngredient)
		}

		// Recipe reads accept an optional viewer so favorite/cart flags
		// can be derived
		recipes := v1.Group("/recipes")
		recipes.Use(middleware.OptionalJWTAuth())
		{
			recipes.GET("", recipeController.ListRecipes)
			recipes.GET("/:id", recipeController.GetRecipeByID)
		}

		// Recipe writes and membership actions require authentication
		protectedRecipes := v1.Group("/recipes")
		protectedRecipes.Use(middleware.JWTAuth())
		{
			protectedRecipes.POST("", recipeController.CreateRecipe)
			protectedRecipes.PUT("/:id", recipeController.UpdateRecipe)
			protectedRecipes.DELETE("/:id", recipeController.DeleteRecipe)
			protectedRecipes.POST("/:id/favorite", recipeController.AddFavorite)
			protectedRecipes.DELETE("/:id/favorite", recipeController.RemoveFavorite)
			protectedRecipes.POST("/:id/shopping_cart", recipeController.AddToCart)
			protectedRecipes.DELETE("/:id/shopping_cart", recipeController.RemoveFromCart)
			protectedRecipes.GET("/download_shopping_cart", recipeController.DownloadShoppingCart)
		}

		// User profiles and subscriptions
		users := v1.Group("/users")
		users.Use(middleware.OptionalJWTAuth())
		{
			users.GET("/:id", userController.GetUserByID)
		}
		protectedUsers := v1.Group("/users")
		protectedUsers.Use(middleware.JWTAuth())
		{
			protectedUsers.GET("/me", userController.GetMe)
			protectedUsers.GET("/subscriptions", userController.Subscriptions)
			protectedUsers.POST("/:id/subscribe", userController.Subscribe)
			protectedUsers.DELETE("/:id/subscribe", userController.Unsubscribe)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "gin-recipe-api",
	})
}
