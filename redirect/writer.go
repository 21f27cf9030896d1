package redirect

import (
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Writer prints output lines to a pair of io.Writers, one line per write.
type Writer struct {
	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer

	prefix      string
	prefixStyle lipgloss.Style
	errStyle    lipgloss.Style
	bell        bool

	err error
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithPrefix starts every line with prefix, rendered faint on terminals.
func WithPrefix(prefix string) WriterOption {
	return func(w *Writer) { w.prefix = prefix }
}

// WithStderrStyle replaces the default red style of stderr lines.
func WithStderrStyle(style lipgloss.Style) WriterOption {
	return func(w *Writer) { w.errStyle = style }
}

// WithBell rings the terminal bell on stderr when attention is requested.
func WithBell() WriterOption {
	return func(w *Writer) { w.bell = true }
}

// NewWriter creates a Writer. Styles only take effect when the destination
// is a color terminal.
func NewWriter(stdout, stderr io.Writer, opts ...WriterOption) *Writer {
	errStyle := lipgloss.NewRenderer(stderr).NewStyle().
		Foreground(lipgloss.Color("9")).
		TabWidth(lipgloss.NoTabConversion)
	w := &Writer{
		stdout:      stdout,
		stderr:      stderr,
		prefixStyle: lipgloss.NewRenderer(stdout).NewStyle().Faint(true),
		errStyle:    errStyle,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteStdout prints line to stdout.
func (w *Writer) WriteStdout(line string) {
	w.write(w.stdout, line, false)
}

// WriteStderr prints line to stderr in the stderr style.
func (w *Writer) WriteStderr(line string) {
	w.write(w.stderr, line, true)
}

// RequestAttention rings the bell if WithBell was given.
func (w *Writer) RequestAttention() {
	if !w.bell {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.record(io.WriteString(w.stderr, "\a"))
}

// Err returns the first write error, if any. Lines after a failed write are
// still attempted.
func (w *Writer) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *Writer) write(dst io.Writer, line string, styled bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var text string
	if w.prefix != "" {
		text = w.prefixStyle.Render(w.prefix)
	}
	if styled {
		text += w.errStyle.Render(line)
	} else {
		text += line
	}
	w.record(io.WriteString(dst, text+"\n"))
}

func (w *Writer) record(_ int, err error) {
	if err != nil && w.err == nil {
		w.err = err
	}
}
