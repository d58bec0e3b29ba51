package console

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

const (
	DefaultLines      = 16
	DefaultColumns    = 128
	DefaultForeground = "15"
	DefaultBackground = "0"
)

var ErrAlreadyInitialized = fmt.Errorf("console overlay is already initialized")

// Options configures an Overlay. Zero values select the defaults.
type Options struct {
	Lines   int
	Columns int

	// Foreground and Background are lipgloss colors (ANSI index or hex).
	Foreground string
	Background string

	// NoColor renders plain text regardless of the writer's capabilities.
	NoColor bool

	// Logger, when set, receives every printed line.
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Lines <= 0 {
		o.Lines = DefaultLines
	}
	if o.Columns <= 0 {
		o.Columns = DefaultColumns
	}
	if o.Foreground == "" {
		o.Foreground = DefaultForeground
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	return o
}

// Overlay is a scrolling text console drawn to a terminal.
type Overlay struct {
	mu sync.Mutex

	out     io.Writer
	options Options
	style   lipgloss.Style

	lines       []string
	initialized bool
}

func New(out io.Writer, options Options) *Overlay {
	options = options.withDefaults()

	renderer := lipgloss.NewRenderer(out)
	if options.NoColor {
		renderer.SetColorProfile(termenv.Ascii)
	}

	style := renderer.NewStyle().
		Foreground(lipgloss.Color(options.Foreground)).
		Background(lipgloss.Color(options.Background)).
		Width(options.Columns).
		Height(options.Lines)

	return &Overlay{
		out:     out,
		options: options,
		style:   style,
	}
}

// Initialize clears the buffer and makes the overlay accept lines.
func (o *Overlay) Initialize() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.initialized {
		return ErrAlreadyInitialized
	}
	o.lines = make([]string, 0, o.options.Lines)
	o.initialized = true
	return nil
}

// Print appends text to the buffer, one line per newline-separated segment. Lines wider than the overlay are
// truncated. Printing to an overlay that is not initialized does nothing.
func (o *Overlay) Print(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.initialized {
		return
	}

	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		line = ansi.Truncate(line, o.options.Columns, "")
		if len(o.lines) == o.options.Lines {
			copy(o.lines, o.lines[1:])
			o.lines = o.lines[:len(o.lines)-1]
		}
		o.lines = append(o.lines, line)

		if o.options.Logger != nil {
			o.options.Logger.Info("console", "line", line)
		}
	}
}

// Draw repaints the screen with the current buffer.
func (o *Overlay) Draw() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.initialized {
		return
	}

	var frame strings.Builder
	frame.WriteString(ansi.EraseEntireScreen)
	frame.WriteString(ansi.CursorHomePosition)
	frame.WriteString(o.style.Render(strings.Join(o.lines, "\n")))
	frame.WriteString("\n")

	if _, err := io.WriteString(o.out, frame.String()); err != nil && o.options.Logger != nil {
		o.options.Logger.Warn("drawing console failed", "error", err)
	}
}

// Release drops the buffer. The overlay may be initialized again afterwards.
func (o *Overlay) Release() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.initialized {
		return
	}
	o.lines = nil
	o.initialized = false
	io.WriteString(o.out, ansi.ResetStyle)
}

// Lines returns a copy of the buffered lines, oldest first.
func (o *Overlay) Lines() []string {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]string(nil), o.lines...)
}
