package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger at the given level. Lines go to file when set,
// otherwise to stderr so command output on stdout stays clean. format is
// "json" or "console". The returned func closes the log file.
func New(level, format, file string) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}

	var writer io.Writer = os.Stderr
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return zerolog.Logger{}, closer, fmt.Errorf("create logs dir: %w", err)
		}
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, closer, err
		}
		closer = func() { _ = f.Close() }
		writer = f
	}

	return build(writer, lvl, format, file == ""), closer, nil
}

func build(w io.Writer, lvl zerolog.Level, format string, color bool) zerolog.Logger {
	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, NoColor: !color, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).
		With().
		Timestamp().
		Logger().
		Level(lvl)
}
