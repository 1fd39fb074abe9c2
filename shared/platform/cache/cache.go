package cache

import (
	"context"
)

// Cache es el puerto clave-valor que comparten la caché de cursos y los OTP.
// Los valores viajan como JSON; ttlSecs <= 0 usa el TTL por defecto del adaptador.
type Cache interface {
	// Get rellena dest (puntero) y devuelve true en un hit; false, nil en un miss.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, val interface{}, ttlSecs int) error
	Delete(ctx context.Context, key string) error
}
