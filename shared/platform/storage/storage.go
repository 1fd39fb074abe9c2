package storage

import (
	"context"
	"io"
)

// Uploader guarda un objeto bajo key y devuelve su URL pública.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// File es un fichero recibido en una petición, listo para subir.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}
