package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Options controls how the root logger is built
type Options struct {
	Level string
	// JSON switches to machine readable output, used in production
	JSON   bool
	Output io.Writer
}

// New builds the root logger and installs it as the hclog default.
// Unknown levels fall back to info.
func New(opts Options) hclog.Logger {
	level := hclog.LevelFromString(opts.Level)
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "opsvix-api",
		Level:      level,
		Output:     out,
		JSONFormat: opts.JSON,
	})
	hclog.SetDefault(logger)
	return logger
}
