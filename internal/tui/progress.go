package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/san-kum/reentry/internal/dynamo"
)

const (
	clearLine  = "\r\033[K"
	hideCursor = "\033[?25l"
	showCursor = "\033[?25h"
)

// Progress is a frame-limited single-line status Observer for terminals
// where the full-screen view is not wanted.
type Progress struct {
	w         io.Writer
	label     string
	frameRate int
	lastFrame time.Time
	frames    int
}

func NewProgress(w io.Writer, label string, frameRate int) *Progress {
	if frameRate <= 0 {
		frameRate = 20
	}
	return &Progress{w: w, label: label, frameRate: frameRate}
}

func (p *Progress) OnStep(s dynamo.Sample) {
	if time.Since(p.lastFrame) < time.Second/time.Duration(p.frameRate) {
		return
	}
	p.lastFrame = time.Now()
	p.render(s)
}

func (p *Progress) render(s dynamo.Sample) {
	p.frames++
	fmt.Fprintf(p.w, "%s  %s  step=%d t=%.1fs alt=%.2fkm v=%.3fkm/s T=%.0fK",
		clearLine, p.label, s.Step, s.Time, s.Altitude/1000, s.Velocity.Len()/1000, s.Temperature)
}

func (p *Progress) Frames() int { return p.frames }

func (p *Progress) Start() { fmt.Fprint(p.w, hideCursor) }

// Stop redraws the last sample, if any, and restores the cursor.
func (p *Progress) Stop(last *dynamo.Sample) {
	if last != nil {
		p.render(*last)
	}
	fmt.Fprint(p.w, "\n"+showCursor)
}
