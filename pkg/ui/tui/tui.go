// Package tui implements the interactive result browser used by the
// fetch command when --tui is set. It renders the preview window of
// search results and lets the user confirm or cancel the archive
// download before any image bytes are fetched.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"pixfetch/pkg/media"
)

// Browse runs the result browser and blocks until the user decides.
// It returns true when the user confirmed the download.
func Browse(query string, resolution media.Resolution, descriptors []media.Descriptor, total int) (bool, error) {
	m := NewModel(query, resolution, descriptors, total)

	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("running result browser: %w", err)
	}

	fm, ok := final.(Model)
	if !ok {
		return false, fmt.Errorf("unexpected model type %T", final)
	}
	return fm.Confirmed(), nil
}
