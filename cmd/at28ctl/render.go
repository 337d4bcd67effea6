package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/eeprom-tools/at28ctl/session"
)

// barLen is the number of slots in the progress bar.
const barLen = 20

// renderer turns session effects into terminal output. Progress bars
// are redrawn in place with carriage returns, so they are only drawn
// when the output is a real terminal; plain lines go out either way.
type renderer struct {
	out io.Writer
	tty bool
}

func newRenderer(out *os.File) *renderer {
	return &renderer{
		out: out,
		tty: term.IsTerminal(int(out.Fd())),
	}
}

func (r *renderer) render(effect session.Effect) {
	switch e := effect.(type) {
	case session.Print:
		fmt.Fprint(r.out, e.Text)

	case session.PrintLine:
		fmt.Fprintln(r.out, e.Text)

	case session.Progress:
		if r.tty {
			fmt.Fprintf(r.out, "\rProgress: [%s] %d%%", bar(e.Done, e.Total), percent(e.Done, e.Total))
		}

	case session.VerifyProgress:
		if r.tty {
			fmt.Fprintf(r.out, "\rProgress: [%s] %d%%, mismatches: %d",
				bar(e.Done, e.Total), percent(e.Done, e.Total), e.Mismatches)
		}

	case session.ProgressEnd:
		if r.tty {
			fmt.Fprintln(r.out)
		}
	}
}

func bar(done, total int) string {
	filled := barLen
	if total > 0 {
		filled = done * barLen / total
	}
	if filled > barLen {
		filled = barLen
	}

	b := make([]byte, barLen)
	for i := range b {
		if i < filled {
			b[i] = '#'
		} else {
			b[i] = '.'
		}
	}
	return string(b)
}

func percent(done, total int) int {
	if total == 0 {
		return 100
	}
	return done * 100 / total
}
