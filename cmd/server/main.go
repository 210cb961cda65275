package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mailminder/internal/database"
	"mailminder/internal/handlers"
	"mailminder/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	if err := database.InitDB(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.CloseDB()

	// Initialize email service. A broken mailer is not fatal: the service
	// keeps accepting submissions and delivery resumes once it is fixed.
	emailService := services.NewEmailService()
	if err := emailService.Verify(); err != nil {
		log.Printf("Email service not ready: %v", err)
	} else {
		log.Println("Email service ready")
	}

	// Wire the dispatch cycle and its internal minute trigger
	store := database.NewReminderStore(database.GetDB())
	dispatcher := services.NewDispatcher(store, emailService)
	worker := services.NewDispatchWorker(dispatcher)
	if err := worker.Start(); err != nil {
		log.Fatal("Failed to start dispatch worker:", err)
	}
	defer worker.Stop()

	// Initialize Gin router
	router := gin.Default()

	// Configure trusted proxies
	router.SetTrustedProxies([]string{"127.0.0.1"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	// Basic routes
	router.GET("/", handlers.HomeHandler)
	router.GET("/health", handlers.HealthHandler)

	// Reminder submission
	router.POST("/reminders", handlers.CreateReminder)

	// External dispatch trigger; GET kept because external cron pingers
	// issue plain GETs
	router.GET("/check-reminders", handlers.TriggerDispatch(dispatcher))
	router.POST("/check-reminders", handlers.TriggerDispatch(dispatcher))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s...", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	// Wait for shutdown signal so the worker and DB pool close cleanly
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
