package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/melisync/ventas-api/internal/application/venta"
)

var _ venta.AlmacenDocumentos = (*LocalStore)(nil)

// LocalStore guarda los PDF en disco bajo un directorio base. Es el fallback
// cuando no hay bucket configurado (desarrollo y despliegues de una sola
// máquina).
type LocalStore struct {
	base string
}

// NewLocalStore crea el directorio base si no existe.
func NewLocalStore(base string) (*LocalStore, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio %s: %w", base, err)
	}
	return &LocalStore{base: base}, nil
}

// Guardar escribe el contenido bajo la clave. La escritura es atómica: se
// escribe a un archivo temporal y se renombra.
func (s *LocalStore) Guardar(ctx context.Context, key string, contenido []byte) error {
	path, err := s.ruta(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("crear directorio: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, contenido, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renombrar %s: %w", key, err)
	}
	return nil
}

// Obtener lee el contenido de la clave.
func (s *LocalStore) Obtener(ctx context.Context, key string) ([]byte, error) {
	path, err := s.ruta(key)
	if err != nil {
		return nil, err
	}
	contenido, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", key, err)
	}
	return contenido, nil
}

// ruta resuelve la clave dentro del directorio base y rechaza claves que
// escapen de él.
func (s *LocalStore) ruta(key string) (string, error) {
	path := filepath.Join(s.base, filepath.FromSlash(key))
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	baseAbs, err := filepath.Abs(s.base)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(abs, baseAbs+string(filepath.Separator)) {
		return "", fmt.Errorf("clave inválida: %s", key)
	}
	return path, nil
}
