package sotest_go

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config holds everything that tunes a run without changing the script
// semantics. Interactive is fixed by the command line at startup.
type Config struct {
	Interactive bool `yaml:"-"`

	Verbose          bool          `yaml:"verbose"`
	Color            ColorMode     `yaml:"color"`
	Journal          string        `yaml:"journal"`
	StatsAddr        string        `yaml:"stats_addr"`
	ProgressInterval time.Duration `yaml:"progress_interval"`
	Debug            []string      `yaml:"debug"`

	DebugStats bool `yaml:"-"`
	DebugTrace bool `yaml:"-"`
}

func NewConfig() *Config {
	return &Config{Color: ColorAuto}
}

// LoadConfigFile merges the YAML file at path into config. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
func LoadConfigFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ResourceError{Op: "Error reading config file", Source: path, Err: err}
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return &ResourceError{Op: "Error parsing config file", Source: path, Err: err}
	}
	return config.validate()
}

func (this *Config) validate() error {
	switch this.Color {
	case "":
		this.Color = ColorAuto
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("unknown color mode '%s' (want auto, always or never)", this.Color)
	}
	if this.ProgressInterval < 0 {
		return fmt.Errorf("progress interval must not be negative")
	}
	for _, mode := range this.Debug {
		if !DebugEnable(mode, this) {
			return fmt.Errorf("unknown debug mode '%s'", mode)
		}
	}
	return nil
}

// ApplyEnvironment overrides file settings with SOTEST_* variables.
func ApplyEnvironment(config *Config) {
	if journal := os.Getenv("SOTEST_JOURNAL"); journal != "" {
		config.Journal = journal
	}
	if os.Getenv("NO_COLOR") != "" {
		config.Color = ColorNever
	}
}
