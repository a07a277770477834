package config

import (
	"fmt"
	"log"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// App bundles the process-wide dependencies. Everything downstream receives
// them explicitly; nothing reads them from package state.
type App struct {
	Router     *gin.Engine
	DB         *gorm.DB
	Redis      *redis.Client
	Cloudinary *cloudinary.Cloudinary
	Melody     *melody.Melody
	Cron       *cron.Cron
}

// InitApp wires the HTTP engine and every external connection.
func InitApp() (*App, error) {
	router := gin.Default()

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization")
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		return true
	}
	router.Use(cors.New(configCors))

	router.SetTrustedProxies(nil)

	LoadEnv()

	db, err := ConnectDB()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to db: %v", err)
	}

	rdb, err := ConnectRedis()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %v", err)
	}

	cld, err := ConnectCloudinary()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %v", err)
	}

	log.Println("All components initialized successfully")

	return &App{
		Router:     router,
		DB:         db,
		Redis:      rdb,
		Cloudinary: cld,
		Melody:     melody.New(),
		Cron:       cron.New(),
	}, nil
}

// InitWebSocket mounts the notification websocket endpoint
func InitWebSocket(router *gin.Engine, m *melody.Melody) {
	router.GET("/ws", func(c *gin.Context) {
		m.HandleRequest(c.Writer, c.Request)
	})
	log.Println("WebSocket initialized successfully")
}
