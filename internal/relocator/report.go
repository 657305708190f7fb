package relocator

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const (
	glyphOK   = "✓"
	glyphFail = "✗"
)

// report writes the console lines of one run.
type report struct {
	w    io.Writer
	ok   string
	fail string
}

func newReport(w io.Writer, colorize bool) *report {
	p := &report{w: w, ok: glyphOK, fail: glyphFail}
	if colorize {
		green := color.New(color.FgGreen)
		green.EnableColor()
		red := color.New(color.FgRed)
		red.EnableColor()
		p.ok = green.Sprint(glyphOK)
		p.fail = red.Sprint(glyphFail)
	}
	return p
}

func (p *report) header(n int) {
	fmt.Fprintf(p.w, "Found %d daily files to move:\n", n)
}

func (p *report) moved(name string) {
	fmt.Fprintf(p.w, "  %s Moved: %s\n", p.ok, name)
}

func (p *report) failed(name, reason string) {
	fmt.Fprintf(p.w, "  %s Failed to move %s: %s\n", p.fail, name, reason)
}

func (p *report) summary(moved, failed int) {
	fmt.Fprintf(p.w, "\nResults:\n")
	fmt.Fprintf(p.w, "  %s Successfully moved: %d files\n", p.ok, moved)
	fmt.Fprintf(p.w, "  %s Failed to move: %d files\n", p.fail, failed)
	if moved > 0 {
		fmt.Fprintf(p.w, "\n🎉 Daily files are now organized in the 'data' folder!\n")
	}
}

// ShouldColor resolves a color mode ("auto", "always", "never") for w.
// "auto" enables colour only when w is a terminal.
func ShouldColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
