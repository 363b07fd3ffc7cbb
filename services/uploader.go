package services

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
)

// Uploader stores uploaded images on local disk and hands back the
// public URL recorded on the item. It fills the slot an external
// object-storage API would occupy in production.
type Uploader struct {
	Dir     string // filesystem directory for stored files
	BaseURL string // public base, e.g. http://localhost:8080
}

func NewUploader(dir, baseURL string) *Uploader {
	return &Uploader{Dir: dir, BaseURL: baseURL}
}

// Save writes the file under a unique name and returns its public URL.
func (u *Uploader) Save(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(u.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(file.Filename))
	dst := filepath.Join(u.Dir, filename)

	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}

	return fmt.Sprintf("%s/uploads/items/%s", u.BaseURL, filename), nil
}
