// Package console formats terminal output for the lfd CLI.
//
// Colors are a closed set of codes passed explicitly to Printer.Text; the
// on/off switch lives on the Printer, so there is no process-wide state.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color is a named terminal formatting code.
type Color int

const (
	Plain Color = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	Gray
	Orange
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	Purple
	Teal
)

// 256-color codes are spelled as the 38;5;n sequence.
var attributes = map[Color][]color.Attribute{
	Red:           {color.FgRed},
	Green:         {color.FgGreen},
	Yellow:        {color.FgYellow},
	Blue:          {color.FgBlue},
	Magenta:       {color.FgMagenta},
	Cyan:          {color.FgCyan},
	White:         {color.FgWhite},
	Gray:          {color.FgHiBlack},
	Orange:        {38, 5, 214},
	BrightRed:     {color.FgHiRed},
	BrightGreen:   {color.FgHiGreen},
	BrightYellow:  {color.FgHiYellow},
	BrightBlue:    {color.FgHiBlue},
	BrightMagenta: {color.FgHiMagenta},
	BrightCyan:    {color.FgHiCyan},
	Purple:        {38, 5, 129},
	Teal:          {38, 5, 43},
}

// DefaultWidth is the divider width when the output is not a terminal.
const DefaultWidth = 80

// Printer writes optionally colored text to Out.
type Printer struct {
	Out     io.Writer
	Enabled bool
}

// NewPrinter returns a Printer writing to out. Colors are enabled only when
// enabled is true and out is a terminal.
func NewPrinter(out io.Writer, enabled bool) *Printer {
	return &Printer{Out: out, Enabled: enabled && isTerminal(out)}
}

// Text wraps s in the escape codes of c, or returns s unchanged when colors
// are disabled or c is Plain.
func (p *Printer) Text(s string, c Color) string {
	attrs, ok := attributes[c]
	if !p.Enabled || !ok {
		return s
	}
	col := color.New(attrs...)
	col.EnableColor()
	return col.Sprint(s)
}

// Println writes s in color c followed by a newline.
func (p *Printer) Println(s string, c Color) {
	fmt.Fprintln(p.Out, p.Text(s, c))
}

// Printf writes a formatted line in color c.
func (p *Printer) Printf(c Color, format string, args ...any) {
	fmt.Fprint(p.Out, p.Text(fmt.Sprintf(format, args...), c))
}

// Divider writes a line of char repeated to width columns. A width <= 0
// uses the terminal width, falling back to DefaultWidth.
func (p *Printer) Divider(char string, width int) {
	if width <= 0 {
		width = terminalWidth(p.Out)
	}
	p.Println(strings.Repeat(char, width), Cyan)
}

// ClearScreen moves the cursor home and clears the screen. It is a no-op
// when the output is not a terminal.
func (p *Printer) ClearScreen() {
	if !isTerminal(p.Out) {
		return
	}
	fmt.Fprint(p.Out, "\033[H\033[2J")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return DefaultWidth
}
