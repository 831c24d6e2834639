package webserver

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/freaksearch/freaksearch/src/api/config"
	"github.com/freaksearch/freaksearch/src/pipeline"
)

func New(cfg config.Config, db *gorm.DB, rdb *redis.Client, handler *pipeline.Handler) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, cfg, db, rdb, handler)
	return g
}
