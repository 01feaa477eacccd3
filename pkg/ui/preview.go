package ui

import (
	"fmt"

	"pixfetch/pkg/media"
)

// PreviewRenderer is the display interface the core hands preview data to.
// The core never depends on a particular rendering; this keeps search and
// archive logic UI-toolkit free.
type PreviewRenderer interface {
	RenderPreview(descriptors []media.Descriptor, total int)
}

// TerminalPreview renders the preview as a plain numbered list of
// thumbnail URLs with attribution.
type TerminalPreview struct{}

// RenderPreview prints the capped preview list
func (TerminalPreview) RenderPreview(descriptors []media.Descriptor, total int) {
	if quietMode {
		return
	}

	for i, d := range descriptors {
		label := d.Alt
		if label == "" {
			label = "untitled"
		}
		fmt.Printf("  %2d. %s %s\n", i+1, Yellow(label), Dim("by "+d.Photographer))
		fmt.Printf("      %s\n", Cyan(d.ThumbnailURL))
	}

	fmt.Printf("\n%s\n", Dim(fmt.Sprintf("Showing %d of %d results", len(descriptors), total)))
}
