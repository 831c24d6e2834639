package webserver

import (
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freaksearch/freaksearch/src/api/types"
	"github.com/freaksearch/freaksearch/src/pipeline"
)

const maxUploadBytes = 10 << 20 // 10 MiB

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tiff": true, ".webp": true,
}

type Upload struct {
	db      *gorm.DB
	handler *pipeline.Handler
	dir     string
}

func NewUpload(db *gorm.DB, handler *pipeline.Handler, dir string) Upload {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("Failed to create upload dir %s: %v", dir, err)
	}
	return Upload{db: db, handler: handler, dir: dir}
}

// Media stores the uploaded file and, for images, runs it through the
// verification pipeline (OCR then fact-check) so the client gets a
// verdict back in the same call.
func (u Upload) Media(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "file is required"})
		return
	}
	if file.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"err": "file too large"})
		return
	}

	// Never trust the client filename for the on-disk name.
	base := filepath.Base(file.Filename)
	storedName := uuid.NewString() + "_" + base
	dst := filepath.Join(u.dir, storedName)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		log.Printf("Failed to store upload %s: %v", base, err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "failed to store file"})
		return
	}

	rec := types.Upload{
		UserID:     userID(c),
		StoredName: storedName,
		Filename:   base,
		CreatedAt:  time.Now(),
	}
	_ = u.db.Create(&rec).Error

	resp := gin.H{"message": "File '" + base + "' uploaded successfully."}

	if imageExtensions[strings.ToLower(filepath.Ext(base))] {
		f, err := os.Open(dst)
		if err == nil {
			imageBytes, readErr := io.ReadAll(io.LimitReader(f, maxUploadBytes))
			f.Close()
			if readErr == nil {
				resp["text"] = u.handler.Handle(c.Request.Context(), "", imageBytes)
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}
