package tui

import (
	"fmt"
	"strings"
)

func (m Model) View() string {
	var b strings.Builder

	header := fmt.Sprintf("pixfetch %s results for %q", m.spinner.View(), m.query)
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	if len(m.descriptors) == 0 {
		b.WriteString(itemStyle.Render("No results."))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}

	var list strings.Builder
	for i, d := range m.descriptors {
		prefix := "  "
		line := fmt.Sprintf("%2d. %s", i+1, describe(d.Alt))
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
			line = cursorStyle.Render(line)
		} else {
			line = itemStyle.Render(line)
		}
		list.WriteString(prefix)
		list.WriteString(line)
		list.WriteString("\n")

		if i == m.cursor {
			list.WriteString("     ")
			list.WriteString(attributionStyle.Render("by " + d.Photographer))
			list.WriteString("\n     ")
			list.WriteString(urlStyle.Render(d.ThumbnailURL))
			list.WriteString("\n")
		}
	}
	b.WriteString(panelStyle.Render(strings.TrimRight(list.String(), "\n")))
	b.WriteString("\n\n")

	b.WriteString(itemStyle.Render(fmt.Sprintf("Showing %d of %d results, resolution %s",
		len(m.descriptors), m.total, m.resolution)))
	b.WriteString("\n")

	switch m.state {
	case StateConfirmed:
		b.WriteString(confirmStyle.Render("Downloading archive..."))
	case StateCancelled:
		b.WriteString(cancelStyle.Render("Cancelled."))
	default:
		b.WriteString(helpStyle.Render("j/k move  enter download all  q quit"))
	}
	b.WriteString("\n")

	return b.String()
}

func describe(alt string) string {
	alt = strings.TrimSpace(alt)
	if alt == "" {
		return "(untitled)"
	}
	if len(alt) > 70 {
		return alt[:67] + "..."
	}
	return alt
}
