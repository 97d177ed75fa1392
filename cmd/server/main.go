package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/studyhubapp/studyhub-backend/internal/cache"
	"github.com/studyhubapp/studyhub-backend/internal/handlers"
	"github.com/studyhubapp/studyhub-backend/internal/middleware"
	"github.com/studyhubapp/studyhub-backend/internal/repository"
	"github.com/studyhubapp/studyhub-backend/internal/service"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName: "StudyHub Backend",
	})

	// Middleware
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: os.Getenv("ALLOWED_ORIGINS"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Initialize database connection
	db, err := repository.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis cache
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if parsedDB, err := strconv.Atoi(dbStr); err == nil {
			redisDB = parsedDB
		}
	}

	redisCache := cache.NewRedisCache(redisAddr, redisPassword, redisDB)
	var statsStore cache.Store
	if err := redisCache.Ping(); err != nil {
		log.Printf("WARNING: Redis connection failed: %v. Running without cache.", err)
	} else {
		log.Println("Redis cache connected successfully")
		statsStore = redisCache
	}
	statsCache := cache.NewGroupStatsCache(statsStore)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewStudyGroupRepository(db)
	goalRepo := repository.NewGroupGoalRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo)
	groupService := service.NewGroupService(groupRepo, userRepo)
	goalService := service.NewGoalService(groupRepo, goalRepo, statsCache)
	activityService := service.NewActivityService(groupRepo, goalRepo, activityRepo, statsCache)
	statsService := service.NewStatsService(groupRepo, goalRepo, activityRepo, statsCache)
	questionService := service.NewQuestionService(questionRepo, groupRepo)
	messageService := service.NewMessageService(messageRepo, groupRepo)
	subjectService := service.NewSubjectService(subjectRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	groupHandler := handlers.NewGroupHandler(groupService, goalService, activityService, statsService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	messageHandler := handlers.NewMessageHandler(messageService)
	subjectHandler := handlers.NewSubjectHandler(subjectService)

	// Public routes
	api := app.Group("/api")
	auth := api.Group("/auth", limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Protected routes
	protected := api.Group("/", middleware.AuthRequired())

	protected.Get("/subjects", subjectHandler.GetSubjects)
	protected.Post("/subjects", subjectHandler.CreateSubject)

	// Group routes
	protected.Post("/groups", groupHandler.CreateGroup)
	protected.Get("/groups", groupHandler.ListGroups)
	protected.Get("/groups/:id", groupHandler.GetGroup)
	protected.Post("/groups/:id/member", groupHandler.AddMember)
	protected.Post("/groups/:id/join", groupHandler.JoinGroup)
	protected.Post("/groups/:id/leave", groupHandler.LeaveGroup)
	protected.Post("/groups/:id/goal", groupHandler.AddGoal)
	protected.Post("/groups/:id/activity", groupHandler.RecordActivity)
	protected.Get("/groups/:id/leaderboard", groupHandler.GetLeaderboard)
	protected.Get("/groups/:id/progress", groupHandler.GetProgress)

	// Questions & messages
	protected.Post("/questions", questionHandler.AskQuestion)
	protected.Post("/questions/:id/answers", questionHandler.AnswerQuestion)
	protected.Get("/questions/group/:groupId", questionHandler.GetGroupQuestions)
	protected.Post("/messages", messageHandler.SendMessage)
	protected.Get("/messages/group/:groupId", messageHandler.GetGroupMessages)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "StudyHub is running",
		})
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s...", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
