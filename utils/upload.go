package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ValidateUpload comprueba extensión, content-type y tamaño de un fichero
// subido antes de escribir nada en disco.
func ValidateUpload(file *multipart.FileHeader, allowedExts map[string]bool, maxMB int, kind, expectedMimePrefix string) error {
	if file == nil {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExts[ext] {
		exts := make([]string, 0, len(allowedExts))
		for e := range allowedExts {
			exts = append(exts, e)
		}
		sort.Strings(exts)
		return fmt.Errorf("%s: extensión no permitida (%s). Permitidas: %v", kind, ext, exts)
	}

	ctype := strings.ToLower(file.Header.Get("Content-Type"))
	if !strings.HasPrefix(ctype, expectedMimePrefix) {
		return fmt.Errorf("%s: content-type inválido (%s)", kind, ctype)
	}

	maxBytes := int64(maxMB) * 1024 * 1024
	if file.Size > maxBytes {
		return fmt.Errorf("%s: tamaño %dMB supera %dMB", kind, file.Size/(1024*1024), maxMB)
	}

	return nil
}

// ParseIDList acepta campos repetidos de formulario o un único CSV
// ("1,2,3") y devuelve la lista de ids.
func ParseIDList(values []string) ([]uint, error) {
	if len(values) == 0 {
		return nil, nil
	}
	if len(values) == 1 && strings.Contains(values[0], ",") {
		values = strings.Split(values[0], ",")
	}

	var ids []uint
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("id no válido: %q (deben ser enteros)", v)
		}
		ids = append(ids, uint(n))
	}
	return ids, nil
}
