package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/philipp01105/logtree/core"
	"github.com/philipp01105/logtree/handler"
)

// Backend names accepted in Output.Backend
const (
	BackendConsole = "console"
	BackendFile    = "file"
	BackendZap     = "zap"
	BackendZerolog = "zerolog"
)

// Formats accepted in Output.Format
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Targets accepted in Output.Target
const (
	TargetStdout = "stdout"
	TargetStderr = "stderr"
)

// DefaultBufferSize is the async queue size used when none is configured.
const DefaultBufferSize = 1000

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// ErrNoOutputs is returned when no output is configured.
	ErrNoOutputs = errors.New("at least one output must be configured")
	// ErrUnknownBackend is returned for backends other than the Backend* names.
	ErrUnknownBackend = errors.New("unknown backend")
	// ErrUnknownFormat is returned for formats other than text and json.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrUnknownTarget is returned for targets other than stdout and stderr.
	ErrUnknownTarget = errors.New("unknown target")
	// ErrFilePathRequired is returned for file outputs without a path.
	ErrFilePathRequired = errors.New("file output requires a path")
	// ErrUnknownPolicy is returned for unparseable overflow policies.
	ErrUnknownPolicy = errors.New("unknown overflow policy")
)

// Config describes a logger tree root and where its entries go.
type Config struct {
	// Name is the root logger name; empty keeps the root anonymous.
	Name string `yaml:"name"`
	// Verbosity is the root threshold. Unset means every level is logged.
	Verbosity *core.Level `yaml:"verbosity"`
	// Values are carried by every entry of the tree.
	Values map[string]string `yaml:"values"`
	// Outputs receive every accepted entry.
	Outputs []Output `yaml:"outputs"`
	// DisableTimestamp omits times from text and json output.
	DisableTimestamp bool `yaml:"disable_timestamp"`
	// Async moves output writes to a background goroutine.
	Async AsyncConfig `yaml:"async"`
}

// Output selects one backend.
type Output struct {
	// Backend is one of console, file, zap or zerolog.
	Backend string `yaml:"backend"`
	// Format is text or json. zap and zerolog use it to pick their
	// console or JSON encoders.
	Format string `yaml:"format"`
	// Target is stdout or stderr; ignored by file outputs.
	Target string `yaml:"target"`
	// File configures file outputs.
	File FileConfig `yaml:"file"`
}

// FileConfig configures rotation for file outputs.
type FileConfig struct {
	Path           string        `yaml:"path"`
	MaxSize        int64         `yaml:"max_size"`
	MaxBackups     int           `yaml:"max_backups"`
	RotateInterval time.Duration `yaml:"rotate_interval"`
}

// AsyncConfig configures the queue placed in front of the outputs.
type AsyncConfig struct {
	Enabled     bool   `yaml:"enabled"`
	BufferSize  int    `yaml:"buffer_size"`
	InfoPolicy  string `yaml:"info_policy"`
	ErrorPolicy string `yaml:"error_policy"`
}

// Default returns a configuration logging everything as text to stdout.
func Default() *Config {
	return &Config{
		Outputs: []Output{{
			Backend: BackendConsole,
			Format:  FormatText,
			Target:  TargetStdout,
		}},
	}
}

// Load reads configuration from path, fills defaults and validates it.
func Load(path string) (*Config, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(contents)
}

// Parse decodes YAML contents, fills defaults and validates the result.
func Parse(contents []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate fills empty fields with defaults and checks every output.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}
	if len(cfg.Outputs) == 0 {
		cfg.Outputs = Default().Outputs
	}

	for i := range cfg.Outputs {
		if err := validateOutput(&cfg.Outputs[i]); err != nil {
			return fmt.Errorf("output %d: %w", i, err)
		}
	}

	if cfg.Async.BufferSize <= 0 {
		cfg.Async.BufferSize = DefaultBufferSize
	}
	if _, _, err := cfg.Async.policies(); err != nil {
		return err
	}
	return nil
}

func validateOutput(out *Output) error {
	out.Backend = strings.ToLower(out.Backend)
	out.Format = strings.ToLower(out.Format)
	out.Target = strings.ToLower(out.Target)

	if out.Backend == "" {
		out.Backend = BackendConsole
	}
	if out.Format == "" {
		out.Format = FormatText
	}
	if out.Target == "" {
		out.Target = TargetStdout
	}

	switch out.Backend {
	case BackendConsole, BackendZap, BackendZerolog:
	case BackendFile:
		if out.File.Path == "" {
			return ErrFilePathRequired
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, out.Backend)
	}

	if out.Format != FormatText && out.Format != FormatJSON {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, out.Format)
	}
	if out.Target != TargetStdout && out.Target != TargetStderr {
		return fmt.Errorf("%w: %q", ErrUnknownTarget, out.Target)
	}
	return nil
}

// policies parses the configured overflow policies; empty strings keep
// the handler defaults.
func (a AsyncConfig) policies() (info, errPolicy handler.OverflowPolicy, err error) {
	def := handler.DefaultAsyncConfig()
	info, errPolicy = def.InfoPolicy, def.ErrorPolicy

	if a.InfoPolicy != "" {
		p, ok := handler.ParseOverflowPolicy(a.InfoPolicy)
		if !ok {
			return info, errPolicy, fmt.Errorf("%w: %q", ErrUnknownPolicy, a.InfoPolicy)
		}
		info = p
	}
	if a.ErrorPolicy != "" {
		p, ok := handler.ParseOverflowPolicy(a.ErrorPolicy)
		if !ok {
			return info, errPolicy, fmt.Errorf("%w: %q", ErrUnknownPolicy, a.ErrorPolicy)
		}
		errPolicy = p
	}
	return info, errPolicy, nil
}
