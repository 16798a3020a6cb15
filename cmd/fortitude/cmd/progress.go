package cmd

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"charm.land/bubbles/v2/spinner"
	"github.com/gkampitakis/ciinfo"
	"github.com/mattn/go-isatty"
)

// progress draws a spinner line on stderr while files are checked. A nil
// *progress is valid and draws nothing.
type progress struct {
	w      io.Writer
	frames []string
	every  time.Duration
	total  int
	done   atomic.Int64

	stop     chan struct{}
	finished chan struct{}
	once     sync.Once
}

// startProgress starts drawing for the given progress-bar mode. It returns
// nil when the mode is off, stderr is not a terminal, or the run is in CI.
func startProgress(mode string, total int) *progress {
	if mode == "off" || mode == "" || total == 0 {
		return nil
	}
	if !isatty.IsTerminal(os.Stderr.Fd()) || ciinfo.IsCI {
		return nil
	}
	return newProgress(os.Stderr, mode, total).start()
}

func newProgress(w io.Writer, mode string, total int) *progress {
	sp := spinner.MiniDot
	if mode == "ascii" {
		sp = spinner.Line
	}
	frames := sp.Frames
	if len(frames) == 0 {
		frames = []string{"-"}
	}
	every := sp.FPS
	if every <= 0 {
		every = 120 * time.Millisecond
	}
	return &progress{
		w:        w,
		frames:   frames,
		every:    every,
		total:    total,
		stop:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

func (p *progress) start() *progress {
	go func() {
		ticker := time.NewTicker(p.every)
		defer ticker.Stop()

		frame := 0
		for {
			select {
			case <-p.stop:
				// Clear the line so the report starts cleanly.
				_, _ = fmt.Fprint(p.w, "\r\033[2K")
				close(p.finished)
				return
			case <-ticker.C:
				_, _ = fmt.Fprint(p.w, p.line(frame))
				frame++
			}
		}
	}()
	return p
}

func (p *progress) line(frame int) string {
	return fmt.Sprintf("\r%s Checking %d/%d files", p.frames[frame%len(p.frames)], p.done.Load(), p.total)
}

// Advance records one finished file. Safe for concurrent use.
func (p *progress) Advance() {
	if p == nil {
		return
	}
	p.done.Add(1)
}

// Stop clears the spinner line and waits for the drawing goroutine.
func (p *progress) Stop() {
	if p == nil {
		return
	}
	p.once.Do(func() {
		close(p.stop)
		<-p.finished
	})
}
