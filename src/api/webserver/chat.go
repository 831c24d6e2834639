package webserver

import (
	"fmt"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/freaksearch/freaksearch/src/api/data"
	"github.com/freaksearch/freaksearch/src/api/types"
	"github.com/freaksearch/freaksearch/src/pipeline"
)

type Chat struct {
	db        *gorm.DB
	rdb       *redis.Client
	handler   *pipeline.Handler
	sanitizer *bluemonday.Policy
	rateLimit time.Duration
}

func NewChat(db *gorm.DB, rdb *redis.Client, handler *pipeline.Handler, rateLimit time.Duration) Chat {
	// Chat input is plain text; strip all markup before the pipeline and
	// the database see it.
	return Chat{
		db:        db,
		rdb:       rdb,
		handler:   handler,
		sanitizer: bluemonday.StrictPolicy(),
		rateLimit: rateLimit,
	}
}

func (h Chat) Handle(c *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required,min=1,max=10000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	uid := userID(c)
	uidKey := strconv.FormatUint(uid, 10)
	if h.rateLimit > 0 && !data.AllowChat(c, h.rdb, uidKey, h.rateLimit) {
		retry := data.ChatRetryAfter(c, h.rdb, uidKey)
		c.JSON(http.StatusTooManyRequests, gin.H{
			"err": fmt.Sprintf("rate limit exceeded, retry in %s", retry.Round(time.Second)),
		})
		return
	}

	message := h.sanitizer.Sanitize(req.Message)
	if !utf8.ValidString(message) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid characters in input"})
		return
	}

	response := h.handler.Handle(c.Request.Context(), message, nil)

	sub := types.Submission{
		UserID:       uid,
		RequestID:    uuid.NewString(),
		InputText:    message,
		ResponseText: response,
		CreatedAt:    time.Now(),
	}
	_ = h.db.Create(&sub).Error

	c.JSON(http.StatusOK, gin.H{"text": response})
}
