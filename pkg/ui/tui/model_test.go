package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"pixfetch/pkg/media"
)

func testDescriptors() []media.Descriptor {
	return []media.Descriptor{
		{ID: "1", Alt: "First photo", Photographer: "Alice", ThumbnailURL: "https://img/1-tiny.jpg"},
		{ID: "2", Alt: "Second photo", Photographer: "Bob", ThumbnailURL: "https://img/2-tiny.jpg"},
		{ID: "3", Alt: "Third photo", Photographer: "Carol", ThumbnailURL: "https://img/3-tiny.jpg"},
	}
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func TestModelNavigation(t *testing.T) {
	m := NewModel("cats", media.ResolutionOriginal, testDescriptors(), 3)
	assert.Equal(t, "1", m.Selected().ID)

	next, _ := m.Update(keyMsg("j"))
	m = next.(Model)
	assert.Equal(t, "2", m.Selected().ID)

	next, _ = m.Update(keyMsg("j"))
	m = next.(Model)
	next, _ = m.Update(keyMsg("j"))
	m = next.(Model)
	// Cursor stops at the last item
	assert.Equal(t, "3", m.Selected().ID)

	next, _ = m.Update(keyMsg("k"))
	m = next.(Model)
	assert.Equal(t, "2", m.Selected().ID)

	next, _ = m.Update(keyMsg("g"))
	m = next.(Model)
	assert.Equal(t, "1", m.Selected().ID)

	next, _ = m.Update(keyMsg("G"))
	m = next.(Model)
	assert.Equal(t, "3", m.Selected().ID)
}

func TestModelConfirm(t *testing.T) {
	m := NewModel("cats", media.ResolutionOriginal, testDescriptors(), 3)

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(Model)

	assert.True(t, m.Confirmed())
	assert.NotNil(t, cmd)
}

func TestModelCancel(t *testing.T) {
	for _, key := range []string{"q", "esc"} {
		m := NewModel("cats", media.ResolutionOriginal, testDescriptors(), 3)

		next, cmd := m.Update(keyMsg(key))
		m = next.(Model)

		assert.False(t, m.Confirmed(), "key %q should cancel", key)
		assert.NotNil(t, cmd)
	}
}

func TestModelEmptyResults(t *testing.T) {
	m := NewModel("cats", media.ResolutionOriginal, nil, 0)

	// Confirm is a no-op without results
	next, cmd := m.Update(keyMsg("enter"))
	m = next.(Model)
	assert.False(t, m.Confirmed())
	assert.Nil(t, cmd)

	assert.Contains(t, m.View(), "No results")
}

func TestModelView(t *testing.T) {
	m := NewModel("cats", media.ResolutionMedium, testDescriptors(), 40)
	view := m.View()

	assert.Contains(t, view, "cats")
	assert.Contains(t, view, "First photo")
	assert.Contains(t, view, "by Alice")
	assert.Contains(t, view, "Showing 3 of 40 results")
	assert.Contains(t, view, "medium")
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "(untitled)", describe("  "))
	assert.Equal(t, "short", describe("short"))

	long := strings.Repeat("x", 100)
	got := describe(long)
	assert.Len(t, got, 70)
	assert.True(t, strings.HasSuffix(got, "..."))
}
