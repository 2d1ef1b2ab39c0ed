// Package logging builds the zap logger used across the client. Logs go to
// stderr so they never interleave with the interactive interface on stdout.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the logger behavior.
type Options struct {
	// Verbose lowers the level to debug.
	Verbose bool
	// Quiet discards everything; used while the TUI owns the terminal.
	Quiet bool
}

// New constructs the process logger.
func New(opts Options) (*zap.Logger, error) {
	if opts.Quiet {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if opts.Verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
