package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/amartinp/contenido-backend/config"
)

// SaveUpload guarda un fichero subido bajo UPLOAD_DIR/<subdir> y devuelve la
// ruta relativa que se persiste en BD ("uploads/<subdir>/<nombre>").
// El nombre se normaliza con slug y se prefija con un uuid para evitar
// colisiones entre subidas con el mismo nombre.
func SaveUpload(file *multipart.FileHeader, subdir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	base := strings.TrimSuffix(filepath.Base(file.Filename), filepath.Ext(file.Filename))
	name := fmt.Sprintf("%s-%s%s", uuid.New().String()[:8], slug.Make(base), ext)

	targetDir := filepath.Join(config.UploadDir(), subdir)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", fmt.Errorf("no se pudo crear el directorio de subida: %v", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dest := filepath.Join(targetDir, name)
	out, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", err
	}

	return fmt.Sprintf("uploads/%s/%s", subdir, name), nil
}

// PublicURL reescribe una referencia relativa de BD al prefijo público.
// Las URLs absolutas no se tocan.
func PublicURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(config.FileBaseURL(), "/") + "/" + strings.TrimLeft(path, "/")
}

// NormalizeImgPath deshace el prefijo público si el frontend devuelve la
// ruta completa ("http://.../files/uploads/img/x.jpg" -> "uploads/img/x.jpg").
func NormalizeImgPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		if idx := strings.Index(path, "/files/"); idx >= 0 {
			return strings.TrimLeft(path[idx+len("/files/"):], "/")
		}
		// URL externa: se guarda tal cual
		return path
	}
	if idx := strings.Index(path, "/files/"); idx >= 0 {
		path = path[idx+len("/files/"):]
	}
	return strings.TrimLeft(path, "/")
}
