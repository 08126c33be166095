package cli

import (
	"fmt"
	"io"
	"os"
)

const (
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
	colorReset  = "\033[0m"
)

type Output struct {
	enableColors bool
	out          io.Writer
	errOut       io.Writer
}

func NewOutput() *Output {
	return &Output{
		enableColors: isTerminal() && os.Getenv("NO_COLOR") == "",
		out:          os.Stdout,
		errOut:       os.Stderr,
	}
}

// NewOutputTo writes plain text to out and errOut.
func NewOutputTo(out, errOut io.Writer) *Output {
	return &Output{out: out, errOut: errOut}
}

// Writers returns the destinations for regular and error output.
func (o *Output) Writers() (io.Writer, io.Writer) {
	return o.out, o.errOut
}

func (o *Output) DisableColors() {
	o.enableColors = false
}

func (o *Output) paint(color, text string) string {
	if !o.enableColors {
		return text
	}
	return color + text + colorReset
}

func (o *Output) Green(text string) string  { return o.paint(colorGreen, text) }
func (o *Output) Yellow(text string) string { return o.paint(colorYellow, text) }
func (o *Output) Red(text string) string    { return o.paint(colorRed, text) }
func (o *Output) Gray(text string) string   { return o.paint(colorGray, text) }

func (o *Output) PrintHeader(msg string) {
	fmt.Fprintln(o.out, msg)
	fmt.Fprintln(o.out)
}

func (o *Output) PrintStep(emoji, msg string, args ...any) {
	if emoji != "" {
		msg = emoji + " " + msg
	}
	fmt.Fprintf(o.out, "  "+msg+"\n", args...)
}

func (o *Output) PrintSuccess(msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(o.out, "  "+o.Green("✓ ")+"%s\n", formatted)
}

func (o *Output) PrintWarning(msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(o.out, "  "+o.Yellow("⚠ ")+"%s\n", formatted)
}

func (o *Output) PrintError(msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(o.errOut, "  "+o.Red("✗ ")+"%s\n", formatted)
}

func (o *Output) PrintFile(path string) {
	fmt.Fprintf(o.out, "    %s\n", path)
}

func (o *Output) PrintDone(msg string) {
	fmt.Fprintln(o.out, msg)
}

func isTerminal() bool {
	stat, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == os.ModeCharDevice
}
