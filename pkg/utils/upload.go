package utils

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/davicafu/academylab/shared/domain"
	"github.com/davicafu/academylab/shared/platform/storage"
)

const (
	DataField = "data"
	FileField = "file"
)

var imageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
	"image/gif":  true,
}

// Upload es el fichero opcional de una petición multipart. Close es seguro
// aunque no haya fichero.
type Upload struct {
	File   *storage.File
	closer io.Closer
}

func (u Upload) Close() {
	if u.closer != nil {
		_ = u.closer.Close()
	}
}

// BindWithFile acepta JSON o multipart con el JSON en el campo "data" y una
// imagen opcional en "file". Un body vacío se valida como objeto vacío.
func BindWithFile(c *gin.Context, dest interface{}, maxBytes int64) (Upload, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		err := c.ShouldBindJSON(dest)
		if errors.Is(err, io.EOF) {
			err = binding.Validator.ValidateStruct(dest)
		}
		if err != nil {
			return Upload{}, BindError(err)
		}
		return Upload{}, nil
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+(1<<20))
	if err := c.Request.ParseMultipartForm(maxBytes); err != nil {
		return Upload{}, domain.NewValidationError("Request too large or malformed")
	}

	if data := strings.TrimSpace(c.PostForm(DataField)); data != "" {
		if err := binding.JSON.BindBody([]byte(data), dest); err != nil {
			return Upload{}, BindError(err)
		}
	} else if err := binding.Validator.ValidateStruct(dest); err != nil {
		return Upload{}, BindError(err)
	}

	file, header, err := c.Request.FormFile(FileField)
	if errors.Is(err, http.ErrMissingFile) {
		return Upload{}, nil
	}
	if err != nil {
		return Upload{}, domain.NewValidationError("Invalid file upload")
	}

	if header.Size > maxBytes {
		_ = file.Close()
		return Upload{}, domain.NewValidationError(fmt.Sprintf("File must be under %d MB", maxBytes>>20))
	}
	ct := header.Header.Get("Content-Type")
	if !imageTypes[ct] {
		_ = file.Close()
		return Upload{}, domain.NewValidationError("File must be an image (png, jpeg, webp, gif)")
	}

	return Upload{
		File:   &storage.File{Name: header.Filename, ContentType: ct, Size: header.Size, Body: file},
		closer: file,
	}, nil
}
