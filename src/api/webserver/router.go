package webserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/freaksearch/freaksearch/src/api/config"
	"github.com/freaksearch/freaksearch/src/pipeline"
)

func attachRoutes(r *gin.Engine, cfg config.Config, db *gorm.DB, rdb *redis.Client, handler *pipeline.Handler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	authH := NewAuth(db, []byte(cfg.JWTSecret))
	chatH := NewChat(db, rdb, handler, time.Duration(cfg.ChatRateSeconds)*time.Second)
	histH := NewHistory(db)
	uploadH := NewUpload(db, handler, cfg.UploadDir)
	pages := NewPages(cfg.WebDir)

	r.GET("/", pages.Landing)
	r.GET("/chat", pages.Chat)

	api := r.Group("/api")
	{
		api.POST("/register", authH.Register)
		api.POST("/login", authH.Login)

		secured := api.Use(JWTMiddleware([]byte(cfg.JWTSecret)))
		secured.POST("/chatbot", chatH.Handle)
		secured.GET("/chat-history", histH.List)
		secured.POST("/save-chat", histH.Save)
		secured.POST("/upload-media", uploadH.Media)
	}
}
