package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"localinfo/internal/ports/storage"

	"github.com/gin-gonic/gin"
)

// limitBody caps the request body at max bytes; max <= 0 disables the cap.
func limitBody(c *gin.Context, max int64) {
	if max > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max)
	}
}

// formFiles reads every file sent under field. Non-multipart requests carry no files.
func formFiles(c *gin.Context, field string) ([]storage.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	headers := form.File[field]
	files := make([]storage.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
		}
		content, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
		}
		contentType := fh.Header.Get("Content-Type")
		if contentType == "" {
			contentType = http.DetectContentType(content)
		}
		files = append(files, storage.File{Name: fh.Filename, ContentType: contentType, Content: content})
	}
	return files, nil
}
