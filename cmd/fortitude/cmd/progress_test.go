package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressLine(t *testing.T) {
	t.Parallel()
	p := newProgress(&bytes.Buffer{}, "ascii", 3)
	p.Advance()
	p.Advance()

	if got, want := p.line(0), "\r| Checking 2/3 files"; got != want {
		t.Errorf("line(0) = %q, want %q", got, want)
	}
	if got := p.line(1); !strings.HasPrefix(got, "\r/ ") {
		t.Errorf("line(1) = %q, want the second frame", got)
	}
}

func TestProgressStopClearsLine(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	p := newProgress(&buf, "fancy", 1).start()
	p.Advance()
	p.Stop()
	p.Stop()

	if !strings.HasSuffix(buf.String(), "\r\033[2K") {
		t.Errorf("output %q should end with a line clear", buf.String())
	}
}

func TestProgressDisabled(t *testing.T) {
	t.Parallel()
	if p := startProgress("off", 10); p != nil {
		t.Errorf("startProgress(off) = %v, want nil", p)
	}
	if p := startProgress("fancy", 0); p != nil {
		t.Errorf("startProgress with no files = %v, want nil", p)
	}

	// A nil progress ignores every call.
	var p *progress
	p.Advance()
	p.Stop()
}
