package photo

import (
	"path/filepath"
	"strings"
)

// DefaultExtensions are the photo extensions picked up when none are configured
var DefaultExtensions = []string{".jpg"}

// IsPhotoFile checks if the file extension is one of the given photo extensions.
// The comparison is case-insensitive; an empty list falls back to DefaultExtensions.
func IsPhotoFile(path string, extensions []string) bool {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}

	for _, v := range extensions {
		v = strings.ToLower(v)
		if !strings.HasPrefix(v, ".") {
			v = "." + v
		}
		if v == ext {
			return true
		}
	}
	return false
}
