package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pixfetch/pkg/media"
)

// browseState tracks where the user is in the preview flow.
type browseState int

const (
	StateBrowsing browseState = iota
	StateConfirmed
	StateCancelled
)

// Model drives the interactive result browser shown between search and
// archive build. It lists the preview window of descriptors and waits
// for the user to confirm or cancel the download.
type Model struct {
	query       string
	resolution  media.Resolution
	descriptors []media.Descriptor
	total       int

	cursor  int
	state   browseState
	spinner spinner.Model
	width   int
	height  int
}

// NewModel builds a browser over the given preview window. total is the
// full result count, which may exceed len(descriptors).
func NewModel(query string, resolution media.Resolution, descriptors []media.Descriptor, total int) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(accentCyan)

	return Model{
		query:       query,
		resolution:  resolution,
		descriptors: descriptors,
		total:       total,
		spinner:     s,
		state:       StateBrowsing,
	}
}

// Confirmed reports whether the user chose to proceed with the download.
func (m Model) Confirmed() bool {
	return m.state == StateConfirmed
}

// Selected returns the descriptor under the cursor.
func (m Model) Selected() media.Descriptor {
	if len(m.descriptors) == 0 {
		return media.Descriptor{}
	}
	return m.descriptors[m.cursor]
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}
