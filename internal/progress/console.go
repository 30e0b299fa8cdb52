package progress

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	styleDone    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleFailed  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleSkipped = lipgloss.NewStyle().Faint(true)
)

// Console renders terminal-phase events as single styled lines and
// keeps a running byte tally. It serializes internally, so it can be
// used directly as a Sink from concurrent workers.
type Console struct {
	mu    sync.Mutex
	w     io.Writer
	bytes map[string]int64
}

// NewConsole creates a console renderer writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{
		w:     w,
		bytes: make(map[string]int64),
	}
}

// Publish records byte advances and prints one line per artifact when
// it finishes, fails, or is skipped.
func (c *Console) Publish(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch e.Phase {
	case PhaseStarted:
		c.bytes[e.Artifact] = 0
	case PhaseAdvanced:
		c.bytes[e.Artifact] += e.Bytes
	case PhaseFinished:
		total := c.bytes[e.Artifact]
		delete(c.bytes, e.Artifact)
		fmt.Fprintln(c.w, styleDone.Render(fmt.Sprintf("✓ %s (%s)", e.Artifact, humanize.Bytes(uint64(total)))))
	case PhaseFailed:
		delete(c.bytes, e.Artifact)
		fmt.Fprintln(c.w, styleFailed.Render(fmt.Sprintf("✗ %s", e.Artifact)))
	case PhaseSkipped:
		delete(c.bytes, e.Artifact)
		fmt.Fprintln(c.w, styleSkipped.Render(fmt.Sprintf("= %s (cached)", e.Artifact)))
	}
}
