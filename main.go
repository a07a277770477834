package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"restay/config"
	"restay/controllers"
	"restay/jobs"
	"restay/models"
	"restay/routes"
	"restay/services"
	"restay/services/logger"
	"restay/services/notification"

	"github.com/gin-gonic/gin"
)

func migrate(app *config.App) {
	if err := app.DB.AutoMigrate(&models.Property{}, &models.Room{}, &models.User{}); err != nil {
		log.Fatalf("Failed to migrate tables: %v", err)
	}
}

func main() {
	app, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	migrate(app)

	appLogger := logger.NewDefaultLogger(logger.InfoLevel)
	notifier := notification.NewMelodyService(app.Melody)

	userService := services.NewUserService(services.UserServiceOptions{
		DB:     app.DB,
		Redis:  app.Redis,
		Logger: appLogger,
	})
	roomService := services.NewRoomService(services.RoomServiceOptions{
		DB:     app.DB,
		Redis:  app.Redis,
		Logger: appLogger,
	})
	propertyService := services.NewPropertyService(services.PropertyServiceOptions{
		DB:       app.DB,
		Redis:    app.Redis,
		Logger:   appLogger,
		Notifier: notifier,
	})
	reconcileService := services.NewReconcileService(services.ReconcileServiceOptions{
		DB:       app.DB,
		Rooms:    roomService,
		Logger:   appLogger,
		Notifier: notifier,
	})
	searchService := services.NewSearchService(propertyService)

	authManager := services.NewAuthManager(services.AuthManagerOptions{
		Users:    userService,
		Sessions: services.NewRedisSessionStore(app.Redis, 24*time.Hour),
		Verifier: services.GoogleTokenVerifier(os.Getenv("GOOGLE_CLIENT_ID")),
		Logger:   appLogger,
	})

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := authManager.Restore(startupCtx); err != nil {
		log.Printf("Warning: session restore failed: %v", err)
	}
	if err := reconcileService.RefreshAll(startupCtx); err != nil {
		log.Printf("Warning: initial read-model refresh failed: %v", err)
	}
	cancel()

	jobs.SetReadModelRefresher(reconcileService)
	if err := jobs.InitCronJobs(app.Cron); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	config.InitWebSocket(app.Router, app.Melody)

	routes.SetupRoutes(app.Router, routes.Controllers{
		Auth: controllers.NewAuthController(controllers.AuthControllerOptions{
			Auth:   authManager,
			Users:  userService,
			Logger: appLogger,
		}),
		Property: controllers.NewPropertyController(controllers.PropertyControllerOptions{
			Properties: propertyService,
			Reconcile:  reconcileService,
			Search:     searchService,
			Notifier:   notifier,
			Logger:     appLogger,
		}),
		Room: controllers.NewRoomController(controllers.RoomControllerOptions{
			Rooms:     roomService,
			Reconcile: reconcileService,
			Notifier:  notifier,
			Logger:    appLogger,
		}),
		User: controllers.NewUserController(controllers.UserControllerOptions{
			Users:    userService,
			Notifier: notifier,
			Logger:   appLogger,
		}),
	}, app.Cloudinary)

	app.Router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}

	log.Println("Server starting on port " + port + "...")
	if err := app.Router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
