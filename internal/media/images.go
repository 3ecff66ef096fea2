package media

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// SaveBase64Image decodes a base64-encoded image (optionally carrying a
// "data:image/<ext>;base64," prefix) and writes it under dir with a
// generated filename. It returns the stored filename, which the recipe
// keeps as an opaque reference.
func SaveBase64Image(dir, encoded string) (string, error) {
	ext := "png"
	if strings.HasPrefix(encoded, "data:") {
		parts := strings.SplitN(encoded, ";base64,", 2)
		if len(parts) != 2 {
			return "", fmt.Errorf("malformed data URI")
		}
		if mediaType, ok := strings.CutPrefix(parts[0], "data:image/"); ok && mediaType != "" {
			ext = mediaType
		}
		encoded = parts[1]
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("invalid base64 image data: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s.%s", uuid.New().String(), ext)
	if err := os.WriteFile(filepath.Join(dir, filename), raw, 0o644); err != nil {
		return "", err
	}
	return filename, nil
}
