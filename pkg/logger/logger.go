// Package logger configures the process-wide zerolog logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Output formats
const (
	FormatAuto = "auto"
	FormatJSON = "json"
	FormatText = "text"
)

// Logger holds logging options. It can be embedded into go-flags option
// structs or filled from cobra flags.
type Logger struct {
	Level  string `long:"log-level"  env:"LOG_LEVEL"  description:"Log level" choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"info" yaml:"level"`
	Format string `long:"log-format" env:"LOG_FORMAT" description:"Log format, auto picks text on a terminal" choice:"auto" choice:"json" choice:"text" default:"auto" yaml:"format"`
}

// Setup installs the global logger writing to stderr.
func (l Logger) Setup() {
	log.Logger = l.New(os.Stderr, isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()))

	level, err := l.level()
	if err != nil {
		log.Warn().Err(err).Msg("Falling back to info level")
	}
	zerolog.SetGlobalLevel(level)
}

// New builds a logger writing to w. terminal tells FormatAuto whether w is
// attached to a terminal.
func (l Logger) New(w io.Writer, terminal bool) zerolog.Logger {
	format := strings.ToLower(l.Format)
	if format == "" || format == FormatAuto {
		format = FormatJSON
		if terminal {
			format = FormatText
		}
	}

	if format == FormatText {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: !terminal}
	}

	level, _ := l.level()
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func (l Logger) level() (zerolog.Level, error) {
	if l.Level == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(l.Level))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel, fmt.Errorf("unknown log level %q", l.Level)
	}
	return level, nil
}
