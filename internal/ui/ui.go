// ─────────────────────────────────────────────────────────────────────────────
//  picotools :: ui :: terminal output
//  Status lines, section headers, a spinner for long tool runs, boxed
//  panels for raw tool diagnostics, and the config table.
// ─────────────────────────────────────────────────────────────────────────────

package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Output streams. Tests swap these for buffers.
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Animate controls whether spinners draw frames. Off when stdout is not a
// terminal so piped output stays one line per step.
var Animate = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

// ── Color palette ─────────────────────────────────────────────────────────────

var (
	ColorTitle   = color.New(color.FgHiWhite, color.Bold)
	ColorKey     = color.New(color.FgHiCyan)
	ColorValue   = color.New(color.FgHiYellow)
	ColorString  = color.New(color.FgHiGreen)
	ColorNumber  = color.New(color.FgHiBlue)
	ColorBool    = color.New(color.FgHiMagenta)
	ColorNull    = color.New(color.FgHiBlack)
	ColorComment = color.New(color.FgHiBlack, color.Italic)

	// Status
	ColorSuccess = color.New(color.FgHiGreen, color.Bold)
	ColorError   = color.New(color.FgHiRed, color.Bold)
	ColorWarn    = color.New(color.FgHiYellow, color.Bold)
	ColorInfo    = color.New(color.FgHiCyan)
	ColorMuted   = color.New(color.FgHiBlack)

	// Diagnostics
	ColorTBBorder  = color.New(color.FgRed)
	ColorTBTitle   = color.New(color.FgHiRed, color.Bold)
	ColorTBErrType = color.New(color.FgHiRed, color.Bold)
	ColorTBErrMsg  = color.New(color.FgHiWhite)
)

// ── Box drawing ───────────────────────────────────────────────────────────────

func termWidth() int {
	return 100
}

func hline(width int, ch string) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat(ch, width)
}

// Box draws a bordered panel with a title to Stderr.
//
//	╭── Title ──────────────────────────────────╮
//	│  content...                               │
//	╰───────────────────────────────────────────╯
func Box(title, content string, titleColor *color.Color) {
	w := termWidth()
	inner := w - 2

	titleStr := " " + title + " "
	dashes := inner - len(titleStr) - 2
	left := dashes / 2
	right := dashes - left

	ColorTBBorder.Fprint(Stderr, "╭"+hline(left, "─"))
	if titleColor != nil {
		titleColor.Fprint(Stderr, titleStr)
	} else {
		fmt.Fprint(Stderr, titleStr)
	}
	ColorTBBorder.Fprintln(Stderr, hline(right, "─")+"╮")

	for _, line := range strings.Split(content, "\n") {
		pad := inner - len([]rune(stripANSI(line))) - 1
		if pad < 0 {
			pad = 0
		}
		ColorTBBorder.Fprint(Stderr, "│")
		fmt.Fprint(Stderr, " "+line+strings.Repeat(" ", pad))
		ColorTBBorder.Fprintln(Stderr, "│")
	}

	ColorTBBorder.Fprintln(Stderr, "╰"+hline(inner, "─")+"╯")
}

// stripANSI removes escape sequences for length calculation.
func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		if r == '\x1b' {
			inEsc = true
			continue
		}
		if inEsc {
			if r == 'm' {
				inEsc = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ── Tool diagnostics ──────────────────────────────────────────────────────────

// Diagnostic prints the raw output of a failed external tool inside a
// panel, followed by an "ErrType: message" line.
//
//	╭──────────────── cmake output ────────────────╮
//	│ CMake Error at CMakeLists.txt:4 (include):   │
//	│   include could not find requested file:     │
//	╰──────────────────────────────────────────────╯
//	ExternalToolFailure: Updating CMake failed
func Diagnostic(errType, errMsg, tool, output string) {
	output = strings.TrimRight(output, "\n")
	if output != "" {
		Box(tool+" output", output, ColorTBTitle)
	}
	ColorTBErrType.Fprint(Stderr, errType)
	fmt.Fprint(Stderr, ": ")
	ColorTBErrMsg.Fprintln(Stderr, errMsg)
}

// ── Config display ────────────────────────────────────────────────────────────

// ConfigEntry is one key/value row in the config display.
type ConfigEntry struct {
	Key     string
	Value   interface{}
	Comment string
}

// PrintConfig renders a styled config table. raw prints key = value lines.
func PrintConfig(title string, entries []ConfigEntry, raw bool) {
	if raw {
		for _, e := range entries {
			if e.Value == nil {
				fmt.Fprintf(Stdout, "%s = null\n", e.Key)
				continue
			}
			fmt.Fprintf(Stdout, "%s = %v\n", e.Key, e.Value)
		}
		return
	}

	keyWidth := 0
	for _, e := range entries {
		if len(e.Key) > keyWidth {
			keyWidth = len(e.Key)
		}
	}

	type renderedLine struct {
		display string // with ANSI colours
		plain   string // stripped, for width calculation
	}
	lines := make([]renderedLine, 0, len(entries))
	for _, e := range entries {
		keyStr := ColorKey.Sprint(fmt.Sprintf("%-*s", keyWidth, e.Key))
		sep := ColorMuted.Sprint("  =  ")
		display := keyStr + sep + formatConfigValue(e.Value)
		plain := stripANSI(display)
		if e.Comment != "" {
			comment := "  # " + e.Comment
			display += ColorComment.Sprint(comment)
			plain += comment
		}
		lines = append(lines, renderedLine{display: display, plain: plain})
	}

	minInner := len(title) + 6
	for _, l := range lines {
		if n := len(l.plain) + 2; n > minInner {
			minInner = n
		}
	}
	inner := termWidth() - 2
	if minInner > inner {
		inner = minInner
	}

	ColorTBBorder.Fprint(Stdout, "╭"+hline(2, "─"))
	ColorTitle.Fprint(Stdout, " "+title+" ")
	ColorTBBorder.Fprintln(Stdout, hline(inner-len(title)-4, "─")+"╮")

	for _, l := range lines {
		pad := inner - len(l.plain) - 1
		if pad < 0 {
			pad = 0
		}
		ColorTBBorder.Fprint(Stdout, "│")
		fmt.Fprint(Stdout, " "+l.display+strings.Repeat(" ", pad))
		ColorTBBorder.Fprintln(Stdout, "│")
	}

	ColorTBBorder.Fprintln(Stdout, "╰"+hline(inner, "─")+"╯")
}

func formatConfigValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return ColorString.Sprint(`"` + val + `"`)
	case bool:
		return ColorBool.Sprint(fmt.Sprintf("%v", val))
	case int, int64, float64:
		return ColorNumber.Sprint(fmt.Sprintf("%v", val))
	case nil:
		return ColorNull.Sprint("null")
	default:
		return ColorValue.Sprint(fmt.Sprintf("%v", val))
	}
}

// ── Status messages ───────────────────────────────────────────────────────────

func Success(msg string) {
	ColorSuccess.Fprint(Stdout, "  ✓ ")
	fmt.Fprintln(Stdout, msg)
}

func Fail(msg string) {
	ColorError.Fprint(Stderr, "  ✗ ")
	fmt.Fprintln(Stderr, msg)
}

func Info(msg string) {
	ColorInfo.Fprint(Stdout, "  • ")
	fmt.Fprintln(Stdout, msg)
}

func Warn(msg string) {
	ColorWarn.Fprint(Stdout, "  ⚠ ")
	fmt.Fprintln(Stdout, msg)
}

func Step(label, msg string) {
	ColorMuted.Fprint(Stdout, "  ")
	ColorTitle.Fprint(Stdout, label)
	ColorMuted.Fprint(Stdout, " → ")
	fmt.Fprintln(Stdout, msg)
}

// SectionTitle prints a section header.
func SectionTitle(title string) {
	pad := termWidth() - len(title) - 4
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintln(Stdout)
	ColorTitle.Fprint(Stdout, "  "+title+"  ")
	ColorMuted.Fprintln(Stdout, hline(pad, "─"))
}

// ── Spinner ───────────────────────────────────────────────────────────────────

type Spinner struct {
	msg     string
	frames  []string
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func NewSpinner(msg string) *Spinner {
	return &Spinner{
		msg:     msg,
		frames:  spinnerFrames,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

func (s *Spinner) Start() {
	if !Animate {
		close(s.stopped)
		return
	}
	go func() {
		defer close(s.stopped)
		i := 0
		for {
			select {
			case <-s.done:
				fmt.Fprintf(Stdout, "\r%-80s\r", "")
				return
			default:
				frame := ColorInfo.Sprint(s.frames[i%len(s.frames)])
				fmt.Fprintf(Stdout, "\r  %s  %s", frame, s.msg)
				time.Sleep(80 * time.Millisecond)
				i++
			}
		}
	}()
}

// Stop ends the animation and prints the final status line.
func (s *Spinner) Stop(ok bool, finalMsg string) {
	s.once.Do(func() { close(s.done) })
	<-s.stopped
	if ok {
		Success(finalMsg)
	} else {
		Fail(finalMsg)
	}
}
