package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

const (
	barWidth       = 20
	redrawInterval = 100 * time.Millisecond
)

// Terminal returns a Factory drawing a bar on f when f is a terminal.
// Otherwise the display is unavailable and Disabled is returned.
func Terminal(f *os.File) Factory {
	if f == nil || !isTerminal(f) {
		return Disabled
	}

	return func(desc string, total int64) Sink {
		return NewBar(f, desc, total)
	}
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Bar draws a single-line progress bar, redrawn in place with a
// carriage return. Sizes are scaled with SI prefixes.
type Bar struct {
	mu       sync.Mutex
	w        io.Writer
	desc     string
	total    int64
	current  int64
	start    time.Time
	lastDraw time.Time
	finished bool
	now      func() time.Time
}

// NewBar returns a Bar writing to w. A negative total draws an
// indeterminate bar showing only the transferred size and rate.
func NewBar(w io.Writer, desc string, total int64) *Bar {
	b := &Bar{
		w:     w,
		desc:  desc,
		total: total,
		now:   time.Now,
	}
	b.start = b.now()

	return b
}

func (b *Bar) Advance(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.finished {
		return
	}

	b.current += int64(n)

	now := b.now()
	if now.Sub(b.lastDraw) >= redrawInterval || (b.total >= 0 && b.current >= b.total) {
		b.lastDraw = now
		b.draw(now)
	}
}

// Finish draws the final state and moves the cursor to a new line.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.finished {
		return
	}
	b.finished = true

	b.draw(b.now())
	fmt.Fprintln(b.w)
}

func (b *Bar) draw(now time.Time) {
	fmt.Fprint(b.w, "\r"+b.render(now.Sub(b.start)))
}

// render formats the bar for the given elapsed time. Rendering is kept
// free of I/O so the layout can be checked on its own.
func (b *Bar) render(elapsed time.Duration) string {
	var sb strings.Builder

	if b.desc != "" {
		sb.WriteString(b.desc)
		sb.WriteString(": ")
	}

	var rate float64
	if elapsed > 0 {
		rate = float64(b.current) / elapsed.Seconds()
	}

	rateStr := "?B/s"
	if rate > 0 {
		rateStr = formatSize(rate) + "/s"
	}

	if b.total < 0 {
		fmt.Fprintf(&sb, "%s [%s, %s]", formatSize(float64(b.current)), formatInterval(elapsed), rateStr)
		return sb.String()
	}

	frac := 1.0
	if b.total > 0 {
		frac = min(float64(b.current)/float64(b.total), 1)
	}
	filled := int(frac * barWidth)

	remaining := "?"
	if rate > 0 {
		left := float64(b.total-b.current) / rate
		remaining = formatInterval(time.Duration(max(left, 0) * float64(time.Second)))
	}

	fmt.Fprintf(&sb, "%3d%%|%s%s| %s/%s [%s<%s, %s]",
		int(frac*100),
		strings.Repeat("█", filled),
		strings.Repeat(" ", barWidth-filled),
		formatSize(float64(b.current)),
		formatSize(float64(b.total)),
		formatInterval(elapsed),
		remaining,
		rateStr,
	)

	return sb.String()
}
