// Package logging builds the zap logger used by the command line tool
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects the log encoding
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Options configures the logger
type Options struct {
	Format  Format
	Verbose bool
}

// New creates a logger writing to w. A nil writer logs to stderr.
func New(w io.Writer, opts Options) (*zap.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	level := zapcore.InfoLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder

	var encoder zapcore.Encoder
	switch opts.Format {
	case FormatJSON:
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	case FormatConsole, "":
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), level)
	return zap.New(core), nil
}
