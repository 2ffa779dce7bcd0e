package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/inkwell/pkg/inkwell/auth"
	"github.com/inkwell/inkwell/pkg/inkwell/blogs"
	"github.com/inkwell/inkwell/pkg/inkwell/comments"
	"github.com/inkwell/inkwell/pkg/inkwell/config"
	"github.com/inkwell/inkwell/pkg/inkwell/database"
	"github.com/inkwell/inkwell/pkg/inkwell/follows"
	"github.com/inkwell/inkwell/pkg/inkwell/likes"
	"github.com/inkwell/inkwell/pkg/inkwell/logger"
	"github.com/inkwell/inkwell/pkg/inkwell/models"
	"github.com/inkwell/inkwell/pkg/inkwell/users"
	"github.com/joho/godotenv"
)

// @title Inkwell API
// @version 1.0
// @description A Medium-style blogging platform: users, blogs, tags,
// @description categories, comments, likes and follows.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT bearer token. Format: "Bearer {token}"

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	if err := logger.Initialize(config.LogLevel()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// Connect to database
	if err := database.Connect(config.DatabaseURL(), config.SQLitePath()); err != nil {
		logger.Log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := models.AutoMigrate(database.GetDB()); err != nil {
		logger.Log.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Log.Info("Database migrations completed")

	// Set up Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	db := database.GetDB()
	v1 := r.Group("/api/v1")
	{
		// User routes: public signup/signin, bearer-protected /auth subtree
		user := v1.Group("/user")
		auth.NewHandler(db).RegisterRoutes(user)

		userAuth := user.Group("/auth")
		userAuth.Use(auth.AuthMiddleware())
		users.NewHandler(db).RegisterRoutes(userAuth)
		follows.NewHandler(db).RegisterRoutes(userAuth)

		// Blog routes: everything sits behind the bearer gate
		blogAuth := v1.Group("/blog/auth")
		blogAuth.Use(auth.AuthMiddleware())

		blogsHandler := blogs.NewHandler(db)
		blogsHandler.RegisterRoutes(blogAuth)
		blogsHandler.RegisterTaxonomyRoutes(blogAuth)
		comments.NewHandler(db).RegisterRoutes(blogAuth)
		likes.NewHandler(db).RegisterRoutes(blogAuth)
	}

	port := config.Port()
	logger.Log.Infof("Starting inkwell server on :%s", port)
	if err := r.Run(":" + port); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}
