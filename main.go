package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"learning-service/internal/auth"
	"learning-service/internal/config"
	"learning-service/internal/db"
	"learning-service/internal/event"
	"learning-service/internal/grading"
	"learning-service/internal/handlers"
	"learning-service/internal/models"
	"learning-service/internal/repository"
	"learning-service/internal/seed"
	"learning-service/internal/service"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system env")
	}
	cfg := config.Load()

	db.InitMongo(cfg.MongoDB.URI)
	defer db.DisconnectMongo()

	database := db.Client.Database(cfg.MongoDB.Database)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoDB.Timeout)
	defer cancel()
	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// RabbitMQ event publisher (disabled when unconfigured)
	publisher, err := event.NewEventPublisher(cfg.RabbitMQ.URI, cfg.RabbitMQ.Exchange)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Repositories
	userRepo := repository.NewUserRepository(database)
	courseRepo := repository.NewCourseRepository(database)
	quizRepo := repository.NewQuizRepository(database)
	resultRepo := repository.NewResultRepository(database)
	enrollmentRepo := repository.NewEnrollmentRepository(database)
	badgeRepo := repository.NewBadgeRepository(database)

	if os.Getenv("SEED_DATA") == "true" {
		seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := seed.Run(seedCtx, userRepo, courseRepo, quizRepo); err != nil {
			log.Printf("Seed failed: %v", err)
		}
		seedCancel()
	}

	// Services
	authService := service.NewAuthService(userRepo, badgeRepo, tokens, publisher)
	courseService := service.NewCourseService(courseRepo, enrollmentRepo, badgeRepo, publisher)
	diagnosticService := service.NewDiagnosticService(quizRepo, resultRepo, userRepo, publisher, grading.ParsePolicy(cfg.Leveling.Policy))
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, courseRepo, badgeRepo, userRepo, publisher)
	badgeService := service.NewBadgeService(badgeRepo, courseRepo, userRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	courseHandler := handlers.NewCourseHandler(courseService)
	diagnosticHandler := handlers.NewDiagnosticHandler(diagnosticService)
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentService)
	badgeHandler := handlers.NewBadgeHandler(badgeService)

	api := r.Group("/api")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.GET("/me", auth.Authenticate(tokens), authHandler.Me)
	}

	courses := api.Group("/courses", auth.Authenticate(tokens))
	{
		courses.GET("/", courseHandler.ListCourses)
		courses.GET("/:id", courseHandler.GetCourse)
		courses.POST("/", auth.RequireRoles(models.RoleTeacher, models.RoleAdmin), courseHandler.CreateCourse)
		courses.PUT("/:id", auth.RequireRoles(models.RoleTeacher, models.RoleAdmin), courseHandler.UpdateCourse)
		courses.DELETE("/:id", auth.RequireRoles(models.RoleTeacher, models.RoleAdmin), courseHandler.DeleteCourse)
	}

	diagnostic := api.Group("/diagnostic", auth.Authenticate(tokens))
	{
		diagnostic.GET("/quizzes/all", diagnosticHandler.ListQuizzes)
		diagnostic.GET("/quiz/:id", diagnosticHandler.GetQuiz)
		diagnostic.POST("/quiz/:id/submit", diagnosticHandler.SubmitQuiz)
		diagnostic.GET("/my-results", diagnosticHandler.MyResults)

		teacherOnly := auth.RequireRoles(models.RoleTeacher, models.RoleAdmin)
		diagnostic.POST("/", teacherOnly, diagnosticHandler.CreateQuiz)
		diagnostic.GET("/my-quizzes", teacherOnly, diagnosticHandler.MyQuizzes)
		diagnostic.PUT("/:id", teacherOnly, diagnosticHandler.UpdateQuiz)
		diagnostic.DELETE("/:id", teacherOnly, diagnosticHandler.DeleteQuiz)
		diagnostic.GET("/quiz/:id/full", teacherOnly, diagnosticHandler.GetFullQuiz)
		diagnostic.GET("/quiz/:id/results", teacherOnly, diagnosticHandler.QuizResults)
	}

	enrollments := api.Group("/enrollments", auth.Authenticate(tokens))
	{
		enrollments.POST("/", enrollmentHandler.Enroll)
		enrollments.GET("/my-courses", enrollmentHandler.MyCourses)
		enrollments.GET("/course/:courseId", enrollmentHandler.CourseEnrollments)
		enrollments.GET("/:id", enrollmentHandler.GetEnrollment)
		enrollments.PUT("/:id/progress", enrollmentHandler.UpdateProgress)
		enrollments.POST("/:id/assessment", enrollmentHandler.SubmitAssessment)
	}

	badges := api.Group("/badges", auth.Authenticate(tokens))
	{
		badges.GET("/my-badges", badgeHandler.MyBadges)
		badges.GET("/:id", badgeHandler.GetBadge)
	}

	r.Run(":" + cfg.Server.Port)
}
