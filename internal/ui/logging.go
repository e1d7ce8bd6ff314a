package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	debugTag = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render("[DEBUG]")
	infoTag  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Render("[INFO]")
	warnTag  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Render("[WARN]")
	errorTag = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true).Render("[ERROR]")
)

type Logger struct {
	Debug bool

	mu  sync.Mutex
	out io.Writer
}

func NewLogger(debug bool) *Logger {
	return &Logger{Debug: debug, out: os.Stdout}
}

// SetOutput redirects all levels to w.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.out = w
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.Debug {
		l.printf(debugTag, format, args...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	l.printf(infoTag, format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.printf(warnTag, format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.printf(errorTag, format, args...)
}

func (l *Logger) printf(tag, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	_, _ = fmt.Fprint(l.out, tag+" "+msg)
}
