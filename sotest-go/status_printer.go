package sotest_go

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// StatusPrinter implements Status on top of a pair of LinePrinters.
type StatusPrinter struct {
	out_ *LinePrinter
	err_ *LinePrinter

	warn_  *color.Color
	error_ *color.Color
	info_  *color.Color
}

func NewStatusPrinter(stdout, stderr io.Writer, config *Config) *StatusPrinter {
	ret := StatusPrinter{}
	ret.out_ = NewLinePrinter(stdout)
	ret.err_ = NewLinePrinter(stderr)
	switch config.Color {
	case ColorAlways:
		ret.out_.set_supports_color(true)
		ret.err_.set_supports_color(true)
	case ColorNever:
		ret.out_.set_supports_color(false)
		ret.err_.set_supports_color(false)
	}

	ret.warn_ = color.New(color.FgYellow, color.Bold)
	ret.error_ = color.New(color.FgRed, color.Bold)
	ret.info_ = color.New(color.FgCyan)
	if ret.err_.supports_color() {
		ret.warn_.EnableColor()
		ret.error_.EnableColor()
	} else {
		ret.warn_.DisableColor()
		ret.error_.DisableColor()
	}
	if ret.out_.supports_color() {
		ret.info_.EnableColor()
	} else {
		ret.info_.DisableColor()
	}
	return &ret
}

func (this *StatusPrinter) Info(msg string, args ...interface{}) {
	this.out_.PrintOnNewLine(this.info_.Sprint(kProgName+": ") + fmt.Sprintf(msg, args...) + "\n")
}

func (this *StatusPrinter) Warning(msg string, args ...interface{}) {
	this.err_.PrintOnNewLine(kProgName + ": " + this.warn_.Sprint("warning: ") + fmt.Sprintf(msg, args...) + "\n")
}

func (this *StatusPrinter) Error(msg string, args ...interface{}) {
	this.err_.PrintOnNewLine(kProgName + ": " + this.error_.Sprint("error: ") + fmt.Sprintf(msg, args...) + "\n")
}

// Plain writes an unprefixed line to stdout, used by the subtools and the
// interactive banner.
func (this *StatusPrinter) Plain(msg string, args ...interface{}) {
	this.out_.PrintOnNewLine(fmt.Sprintf(msg, args...) + "\n")
}

// Stdout is where Info and Plain messages go, for reports written directly.
func (this *StatusPrinter) Stdout() io.Writer { return this.out_.out_ }
