// Package blob implementa el puerto BlobStore sobre el sistema de archivos
// local: cada objeto vive bajo su ruta dentro del directorio raíz, con un
// sidecar JSON para content-type y metadatos.
package blob

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/Condominio-api/internal/application/ports"
	"github.com/jhoicas/Condominio-api/internal/domain"
)

var _ ports.BlobStore = (*FSStore)(nil)

const metaSuffix = ".meta.json"

// FSStore almacén de blobs en disco.
type FSStore struct {
	root          string
	publicBaseURL string
}

// NewFSStore crea el almacén bajo el directorio raíz dado.
func NewFSStore(root, publicBaseURL string) (*FSStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de blobs: %w", err)
	}
	return &FSStore{root: root, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}, nil
}

type objectMeta struct {
	ContentType string            `json:"content_type"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// PutObject escribe el objeto y su sidecar de metadatos.
func (s *FSStore) PutObject(ctx context.Context, path string, data []byte, contentType string, metadata map[string]string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("crear directorio: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("escribir objeto: %w", err)
	}
	meta, err := json.Marshal(objectMeta{ContentType: contentType, Metadata: metadata})
	if err != nil {
		return fmt.Errorf("serializar metadatos: %w", err)
	}
	if err := os.WriteFile(full+metaSuffix, meta, 0o644); err != nil {
		return fmt.Errorf("escribir metadatos: %w", err)
	}
	return nil
}

// GetObject lee el objeto y sus metadatos.
func (s *FSStore) GetObject(ctx context.Context, path string) ([]byte, *ports.BlobObject, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("leer objeto: %w", err)
	}
	info, err := os.Stat(full)
	if err != nil {
		return nil, nil, fmt.Errorf("stat objeto: %w", err)
	}
	obj := &ports.BlobObject{
		Path:      path,
		SizeBytes: info.Size(),
		UpdatedAt: info.ModTime(),
	}
	if raw, err := os.ReadFile(full + metaSuffix); err == nil {
		var meta objectMeta
		if json.Unmarshal(raw, &meta) == nil {
			obj.ContentType = meta.ContentType
		}
	}
	return data, obj, nil
}

// ListByPrefix lista los objetos cuya ruta empieza por el prefijo dado.
func (s *FSStore) ListByPrefix(ctx context.Context, prefix string) ([]ports.BlobObject, error) {
	var out []ports.BlobObject
	err := filepath.WalkDir(s.root, func(full string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || strings.HasSuffix(full, metaSuffix) {
			return nil
		}
		rel, err := filepath.Rel(s.root, full)
		if err != nil {
			return err
		}
		path := filepath.ToSlash(rel)
		if !strings.HasPrefix(path, prefix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		out = append(out, ports.BlobObject{
			Path:      path,
			SizeBytes: info.Size(),
			UpdatedAt: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listar por prefijo: %w", err)
	}
	return out, nil
}

// DeleteObject borra el objeto y su sidecar. Borrar lo inexistente no es error.
func (s *FSStore) DeleteObject(ctx context.Context, path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("borrar objeto: %w", err)
	}
	if err := os.Remove(full + metaSuffix); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("borrar metadatos: %w", err)
	}
	return nil
}

// MakePublic devuelve la URL pública del objeto. En disco todos los objetos
// se sirven bajo el mismo prefijo, así que solo se comprueba que exista.
func (s *FSStore) MakePublic(ctx context.Context, path string) (string, error) {
	full, err := s.resolve(path)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("stat objeto: %w", err)
	}
	return s.publicBaseURL + "/" + path, nil
}

// resolve traduce una ruta lógica a una ruta bajo root, rechazando escapes.
func (s *FSStore) resolve(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", domain.ErrInvalidInput
	}
	return filepath.Join(s.root, clean), nil
}
