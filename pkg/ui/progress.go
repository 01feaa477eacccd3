package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

const (
	progressBarFull  = "█"
	progressBarEmpty = "░"
	progressBarWidth = 24
)

// ProgressDisplay shows a single-line progress bar for an archive job
type ProgressDisplay struct {
	total     int
	done      int
	failed    int
	startTime time.Time
	mu        sync.Mutex
}

// NewProgressDisplay creates a progress display for total items
func NewProgressDisplay(total int) *ProgressDisplay {
	return &ProgressDisplay{
		total:     total,
		startTime: time.Now(),
	}
}

// Update records one finished item and redraws the bar
func (p *ProgressDisplay) Update(success bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	if !success {
		p.failed++
	}
	p.draw()
}

// Complete finishes the bar and prints a summary line
func (p *ProgressDisplay) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if quietMode {
		return
	}

	elapsed := time.Since(p.startTime).Round(time.Millisecond)
	fmt.Printf("\n%s\n", Dim(fmt.Sprintf("%d fetched, %d skipped in %s", p.done-p.failed, p.failed, elapsed)))
}

func (p *ProgressDisplay) draw() {
	if quietMode {
		return
	}

	filled := 0
	if p.total > 0 {
		filled = p.done * progressBarWidth / p.total
	}
	if filled > progressBarWidth {
		filled = progressBarWidth
	}

	bar := strings.Repeat(progressBarFull, filled) +
		strings.Repeat(progressBarEmpty, progressBarWidth-filled)

	fmt.Printf("\r[%s] %d/%d", Green(bar), p.done, p.total)
}
