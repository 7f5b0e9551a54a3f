package photo

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindPhotoFiles lists the photos directly inside directory (no recursion),
// in directory enumeration order
func FindPhotoFiles(directory string, extensions []string) ([]string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", directory, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !IsPhotoFile(entry.Name(), extensions) {
			continue
		}
		files = append(files, filepath.Join(directory, entry.Name()))
	}

	return files, nil
}
