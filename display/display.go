// display.go
package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/malwaredetective/blood-sugar-console/libreview"
)

const (
	titleText     = "Blood Sugar Console"
	fallbackWidth = 80
)

// Renderer writes readings to a terminal. On a TTY it clears the screen and
// draws a centered figlet-style banner and value; otherwise it prints a single
// plain line so output stays pipe-friendly.
type Renderer struct {
	out   io.Writer
	tty   bool
	width func() int
}

func New(out *os.File) *Renderer {
	tty := isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())
	return &Renderer{
		out: out,
		tty: tty,
		width: func() int {
			w, _, err := term.GetSize(int(out.Fd()))
			if err != nil || w <= 0 {
				return fallbackWidth
			}
			return w
		},
	}
}

func (r *Renderer) Render(reading *libreview.Reading) {
	captured := reading.Timestamp.Local().Format("2006-01-02 03:04:05 PM MST")

	if !r.tty {
		fmt.Fprintf(r.out, "%s %s %s (captured %s)\n",
			formatValue(reading), reading.Unit, reading.Trend.Glyph(), captured)
		return
	}

	width := r.width()
	clr := bandColor(reading.ValueInMgPerDl)

	fmt.Fprint(r.out, "\033[2J\033[H")
	r.printCentered(figure.NewFigure(titleText, "small", true).String(), width, nil)
	fmt.Fprintln(r.out)
	r.printCentered(figure.NewFigure(formatValue(reading), "big", true).String(), width, clr)
	r.printCentered(fmt.Sprintf("%s %s", reading.Unit, reading.Trend.Glyph()), width, clr)
	fmt.Fprintln(r.out)
	r.printCentered(fmt.Sprintf("This reading was captured at: %s.", captured), width, nil)
}

// printCentered writes each line of text centered to the terminal width,
// optionally colored.
func (r *Renderer) printCentered(text string, width int, clr *color.Color) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		out := centerLine(line, width)
		if clr != nil {
			out = clr.Sprint(out)
		}
		fmt.Fprintln(r.out, out)
	}
}

func centerLine(line string, width int) string {
	pad := (width - len([]rune(line))) / 2
	if pad <= 0 {
		return line
	}
	return strings.Repeat(" ", pad) + line
}

// formatValue renders mg/dL values as whole numbers and mmol/L with one
// decimal, matching how meters display them.
func formatValue(reading *libreview.Reading) string {
	if reading.Unit == libreview.UnitMmolPerL {
		return fmt.Sprintf("%.1f", reading.Value)
	}
	return fmt.Sprintf("%.0f", reading.Value)
}

// bandColor classifies a reading by its mg/dL value. The bands follow the
// common clinical targets: 80-180 in range, the edges cautionary, beyond red.
func bandColor(mgdl float64) *color.Color {
	switch {
	case mgdl > 200:
		return color.New(color.FgRed)
	case mgdl > 180:
		return color.New(color.FgYellow)
	case mgdl >= 80:
		return color.New(color.FgGreen)
	case mgdl >= 70:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
