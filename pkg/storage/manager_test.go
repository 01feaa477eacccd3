package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "downloads")

	m, err := NewManager(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, m.OutputDir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestArchiveName(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"mountains", "mountains_images.zip"},
		{"northern lights", "northern_lights_images.zip"},
		{"  cats  ", "cats_images.zip"},
		{"sunset/beach", "sunsetbeach_images.zip"},
		{"snow-covered_peaks 2024", "snow-covered_peaks_2024_images.zip"},
		{"", "pixfetch_images.zip"},
		{"///", "pixfetch_images.zip"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, ArchiveName(tt.query))
		})
	}
}

func TestSaveArchive(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	data := []byte("zip bytes")
	path, err := m.SaveArchive("cats_images.zip", data, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(m.OutputDir(), "cats_images.zip"), path)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, written)
}

func TestSaveArchiveEmptyName(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	_, err = m.SaveArchive("", []byte("data"), false)
	assert.Error(t, err)
}

func TestSaveArchiveRenamesInsteadOfClobbering(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	first, err := m.SaveArchive("cats_images.zip", []byte("first"), false)
	require.NoError(t, err)

	second, err := m.SaveArchive("cats_images.zip", []byte("second"), false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(m.OutputDir(), "cats_images_2.zip"), second)

	third, err := m.SaveArchive("cats_images.zip", []byte("third"), false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(m.OutputDir(), "cats_images_3.zip"), third)

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), data)
}

func TestSaveArchiveOverwrite(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	_, err = m.SaveArchive("cats_images.zip", []byte("first"), true)
	require.NoError(t, err)

	path, err := m.SaveArchive("cats_images.zip", []byte("second"), true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(m.OutputDir(), "cats_images.zip"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}
