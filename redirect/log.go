package redirect

import (
	"github.com/rs/zerolog"

	"github.com/kbukum/procout/logger"
	"github.com/kbukum/procout/process"
)

// Log writes each output line as one log entry whose message is the line.
type Log struct {
	log         *logger.Logger
	stdoutLevel zerolog.Level
	stderrLevel zerolog.Level
}

// LogOption configures a Log.
type LogOption func(*Log)

// WithLevels sets the levels of stdout and stderr entries. The defaults are
// info and warn.
func WithLevels(stdout, stderr zerolog.Level) LogOption {
	return func(l *Log) {
		l.stdoutLevel = stdout
		l.stderrLevel = stderr
	}
}

// NewLog creates a Log on top of l.
func NewLog(l *logger.Logger, opts ...LogOption) *Log {
	r := &Log{
		log:         l,
		stdoutLevel: zerolog.InfoLevel,
		stderrLevel: zerolog.WarnLevel,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (l *Log) WriteStdout(line string) {
	l.log.Log(l.stdoutLevel, line, logger.Fields(logger.FieldStream, process.Stdout.String()))
}

func (l *Log) WriteStderr(line string) {
	l.log.Log(l.stderrLevel, line, logger.Fields(logger.FieldStream, process.Stderr.String()))
}

// RequestAttention logs a warning.
func (l *Log) RequestAttention() {
	l.log.Warn("process requested attention")
}
