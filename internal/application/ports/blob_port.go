package ports

import (
	"context"
	"time"
)

// BlobObject metadatos de un objeto almacenado.
type BlobObject struct {
	Path        string
	ContentType string
	SizeBytes   int64
	UpdatedAt   time.Time
}

// BlobStore define el puerto de salida hacia el almacenamiento de archivos,
// direccionado por ruta, con listado por prefijo y borrado individual.
type BlobStore interface {
	PutObject(ctx context.Context, path string, data []byte, contentType string, metadata map[string]string) error
	ListByPrefix(ctx context.Context, prefix string) ([]BlobObject, error)
	DeleteObject(ctx context.Context, path string) error
	// MakePublic expone el objeto y devuelve su URL pública.
	MakePublic(ctx context.Context, path string) (string, error)
}
