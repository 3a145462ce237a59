package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

func (config *baseConfiguration) initLogger() error {
	level, err := zerolog.ParseLevel(strings.ToLower(config.LogLevel))
	if err != nil {
		return err
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer
	switch strings.ToLower(config.LogFormat) {
	case "json":
		out = config.stderr
	case "console", "":
		out = zerolog.ConsoleWriter{Out: config.stderr, TimeFormat: time.RFC3339, NoColor: true}
	default:
		return fmt.Errorf("unknown log format %q", config.LogFormat)
	}
	config.log = zerolog.New(out).Level(level).With().Timestamp().Str("module", "memlink").Logger()
	return nil
}
