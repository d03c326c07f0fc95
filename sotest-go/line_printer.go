package sotest_go

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

type LinePrinter struct {
	// Whether the output is an interactive terminal.
	smart_terminal_ bool

	// Whether we can use ISO 6429 (ANSI) color sequences.
	supports_color_ bool

	// Whether the caret is at the beginning of a blank line.
	have_blank_line_ bool

	out_ io.Writer
	mu_  sync.Mutex
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func NewLinePrinter(out io.Writer) *LinePrinter {
	ret := LinePrinter{}
	ret.out_ = out
	ret.have_blank_line_ = true
	term := os.Getenv("TERM")

	ret.smart_terminal_ = isTerminal(out) && term != "" && term != "dumb"
	ret.supports_color_ = ret.smart_terminal_

	if os.Getenv("NO_COLOR") != "" {
		ret.supports_color_ = false
	}
	if !ret.supports_color_ {
		clicolor_force := os.Getenv("CLICOLOR_FORCE")
		ret.supports_color_ = clicolor_force != "" && clicolor_force != "0"
	}
	return &ret
}

func (this *LinePrinter) is_smart_terminal() bool { return this.smart_terminal_ }

func (this *LinePrinter) supports_color() bool { return this.supports_color_ }

func (this *LinePrinter) set_supports_color(enabled bool) { this.supports_color_ = enabled }

// PrintOnNewLine prints a string on a new line, not overprinting previous
// output. Safe for use from the watchdog goroutine.
func (this *LinePrinter) PrintOnNewLine(to_print string) {
	this.mu_.Lock()
	defer this.mu_.Unlock()
	if !this.have_blank_line_ {
		io.WriteString(this.out_, "\n")
	}
	if to_print != "" {
		io.WriteString(this.out_, to_print)
	}
	this.have_blank_line_ = to_print == "" || to_print[len(to_print)-1] == '\n'
}
