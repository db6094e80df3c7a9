package cmd

import (
	"fmt"
	"os"
	"time"

	"charm.land/bubbles/v2/spinner"
	"github.com/mattn/go-isatty"
)

// startFixSpinner shows a progress spinner on stderr while fixes run.
// Returns a stop function; on a non-TTY it prints a single note
// instead.
func startFixSpinner(fileCount int) func() {
	if fileCount <= 1 {
		return func() {}
	}

	msg := fmt.Sprintf("applying fixes to %d files...", fileCount)
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		fmt.Fprintln(os.Stderr, msg)
		return func() {}
	}

	sp := spinner.Line
	frames := sp.Frames
	interval := sp.FPS
	if len(frames) == 0 {
		frames = []string{"-"}
	}
	if interval <= 0 {
		interval = 120 * time.Millisecond
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		frame := 0
		for {
			select {
			case <-stop:
				// Clear the line so subsequent output starts cleanly.
				fmt.Fprint(os.Stderr, "\r\033[2K")
				close(done)
				return
			case <-ticker.C:
				fmt.Fprintf(os.Stderr, "\r%s %s", frames[frame%len(frames)], msg)
				frame++
			}
		}
	}()

	return func() {
		close(stop)
		<-done
	}
}
