package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Manager writes finished archives into the output directory
type Manager struct {
	outputDir string
}

// NewManager creates a storage manager, creating the output directory if needed
func NewManager(outputDir string) (*Manager, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Manager{outputDir: outputDir}, nil
}

// OutputDir returns the directory archives are written into
func (m *Manager) OutputDir() string {
	return m.outputDir
}

// ArchiveName derives the default archive file name from the search query
func ArchiveName(query string) string {
	return fmt.Sprintf("%s_images.zip", sanitize(query))
}

// SaveArchive writes the archive bytes to disk and returns the final path.
// Unless overwrite is set, an existing file gets a numeric suffix instead of
// being clobbered.
func (m *Manager) SaveArchive(name string, data []byte, overwrite bool) (string, error) {
	if name == "" {
		return "", fmt.Errorf("archive name must not be empty")
	}

	target := filepath.Join(m.outputDir, name)

	if !overwrite {
		base := strings.TrimSuffix(name, filepath.Ext(name))
		ext := filepath.Ext(name)
		for i := 2; exists(target); i++ {
			target = filepath.Join(m.outputDir, fmt.Sprintf("%s_%d%s", base, i, ext))
		}
	}

	if err := os.WriteFile(target, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write archive: %w", err)
	}

	return target, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// sanitize makes a query safe to use as a file name component
func sanitize(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return "pixfetch"
	}

	var b strings.Builder
	for _, r := range query {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "pixfetch"
	}
	return b.String()
}
