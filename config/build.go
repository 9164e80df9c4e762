package config

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/logtree/formatter"
	"github.com/philipp01105/logtree/handler"
	"github.com/philipp01105/logtree/handler/consolehandler"
	"github.com/philipp01105/logtree/handler/filehandler"
	"github.com/philipp01105/logtree/handler/zaphandler"
	"github.com/philipp01105/logtree/handler/zerologhandler"
	"github.com/philipp01105/logtree/logger"
)

// Streams are the writers behind the stdout and stderr targets.
type Streams struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Build creates the root logger on the process streams. The returned
// function closes every output and must be called before exit.
func (c *Config) Build() (*logger.Logger, func() error, error) {
	return c.BuildTo(Streams{Stdout: os.Stdout, Stderr: os.Stderr})
}

// BuildTo creates the root logger writing stdout and stderr targets to
// the given streams. Handler errors are reported on streams.Stderr.
func (c *Config) BuildTo(streams Streams) (*logger.Logger, func() error, error) {
	if err := Validate(c); err != nil {
		return nil, nil, err
	}
	if streams.Stdout == nil {
		streams.Stdout = os.Stdout
	}
	if streams.Stderr == nil {
		streams.Stderr = os.Stderr
	}

	h, err := c.handler(streams)
	if err != nil {
		return nil, nil, err
	}

	onErr := func(err error) {
		fmt.Fprintf(streams.Stderr, "logtree: %v\n", err)
	}

	b := logger.NewBuilder().
		WithSink(handler.Sink(h, onErr)).
		WithName(c.Name)
	if c.Verbosity != nil {
		b = b.WithVerbosity(*c.Verbosity)
	}
	for k, v := range c.Values {
		b = b.WithFields(logger.String(k, v))
	}

	return b.Build(), h.Close, nil
}

// handler builds every output, fanning out when there is more than one,
// and wraps the result in an async queue when enabled.
func (c *Config) handler(streams Streams) (handler.Handler, error) {
	handlers := make([]handler.Handler, 0, len(c.Outputs))
	for i, out := range c.Outputs {
		h, err := c.output(out, streams)
		if err != nil {
			for _, built := range handlers {
				err = multierr.Append(err, built.Close())
			}
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		handlers = append(handlers, h)
	}

	var h handler.Handler
	if len(handlers) == 1 {
		h = handlers[0]
	} else {
		h = handler.NewMultiHandler(handlers...)
	}

	if !c.Async.Enabled {
		return h, nil
	}
	info, errPolicy, err := c.Async.policies()
	if err != nil {
		return nil, multierr.Append(err, h.Close())
	}
	asyncCfg := handler.DefaultAsyncConfig()
	asyncCfg.BufferSize = c.Async.BufferSize
	asyncCfg.InfoPolicy = info
	asyncCfg.ErrorPolicy = errPolicy
	return handler.NewAsyncHandler(h, asyncCfg), nil
}

func (c *Config) output(out Output, streams Streams) (handler.Handler, error) {
	w := streams.Stdout
	if out.Target == TargetStderr {
		w = streams.Stderr
	}

	switch out.Backend {
	case BackendConsole:
		return consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
			Writer:    w,
			Formatter: c.formatter(out.Format),
		}), nil
	case BackendFile:
		return filehandler.NewFileHandler(filehandler.FileConfig{
			Filename:       out.File.Path,
			Formatter:      c.formatter(out.Format),
			MaxSize:        out.File.MaxSize,
			MaxBackups:     out.File.MaxBackups,
			RotateInterval: out.File.RotateInterval,
		})
	case BackendZap:
		return zaphandler.New(newZapLogger(out.Format, w)), nil
	case BackendZerolog:
		return zerologhandler.NewWriter(w, out.Format == FormatText), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, out.Backend)
	}
}

func (c *Config) formatter(format string) formatter.Formatter {
	cfg := formatter.Config{DisableTimestamp: c.DisableTimestamp}
	if format == FormatJSON {
		return formatter.NewJSONFormatter(cfg)
	}
	return formatter.NewTextFormatter(cfg)
}

// newZapLogger builds a zap logger on the production encoder settings.
// Verbosity filtering happens in the tree, so the core accepts every level.
func newZapLogger(format string, w io.Writer) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if format == FormatJSON {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), zapcore.DebugLevel))
}
