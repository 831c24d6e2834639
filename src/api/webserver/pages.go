package webserver

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
)

type Pages struct {
	webDir string
}

func NewPages(webDir string) Pages {
	return Pages{webDir: webDir}
}

func (p Pages) Landing(c *gin.Context) {
	c.File(filepath.Join(p.webDir, "landing.html"))
}

func (p Pages) Chat(c *gin.Context) {
	c.File(filepath.Join(p.webDir, "chat.html"))
}
