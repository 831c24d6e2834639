package webserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freaksearch/freaksearch/src/api/types"
)

type History struct {
	db *gorm.DB
}

func NewHistory(db *gorm.DB) History {
	return History{db: db}
}

// List returns the caller's submissions, newest first.
func (h History) List(c *gin.Context) {
	var subs []types.Submission
	err := h.db.Where("user_id = ?", userID(c)).Order("id DESC").Find(&subs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	history := make([]gin.H, 0, len(subs))
	for _, s := range subs {
		history = append(history, gin.H{
			"id":            s.ID,
			"input_text":    s.InputText,
			"response_text": s.ResponseText,
			"created_at":    s.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

// Save stores a submission without running the pipeline. The frontend
// uses it to persist exchanges restored from local state.
func (h History) Save(c *gin.Context) {
	inputText := c.PostForm("input_text")
	if inputText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "input_text is required"})
		return
	}

	sub := types.Submission{
		UserID:       userID(c),
		RequestID:    uuid.NewString(),
		InputText:    inputText,
		ResponseText: c.PostForm("response_text"),
		CreatedAt:    time.Now(),
	}
	if err := h.db.Create(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chat saved successfully", "id": sub.ID})
}
