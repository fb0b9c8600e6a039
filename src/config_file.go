package sweatci

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Host configuration file locations
const (
	ConfigDirName  = ".sweatci"
	ConfigFileName = "config.toml"
	HistoryName    = "history"
)

// FileConfig is the host program's TOML configuration
type FileConfig struct {
	Prompt              string   `toml:"prompt" yaml:"prompt"`
	Tick                string   `toml:"tick" yaml:"tick"`
	History             string   `toml:"history" yaml:"history"`
	Autoexec            []string `toml:"autoexec" yaml:"autoexec"`
	Debug               bool     `toml:"debug" yaml:"debug"`
	DebugCategories     []string `toml:"debug_categories" yaml:"debug_categories"`
	MaxAliasDepth       int      `toml:"max_alias_depth" yaml:"max_alias_depth"`
	ReportAliasOverflow bool     `toml:"report_alias_overflow" yaml:"report_alias_overflow"`
	Watch               bool     `toml:"watch" yaml:"watch"`

	// Undecoded lists keys present in the file that are not understood
	Undecoded []string `toml:"-" yaml:"-"`
}

var fileConfigKeys = map[string]bool{
	"prompt": true, "tick": true, "history": true, "autoexec": true, "debug": true,
	"debug_categories": true, "max_alias_depth": true, "report_alias_overflow": true, "watch": true,
}

// DefaultFileConfig returns the settings used when no file exists
func DefaultFileConfig() *FileConfig {
	history := ""
	if dir := DefaultConfigDir(); dir != "" {
		history = filepath.Join(dir, HistoryName)
	}
	return &FileConfig{
		Prompt:        DefaultPrompt,
		Tick:          "0s",
		History:       history,
		MaxAliasDepth: DefaultMaxAliasDepth,
	}
}

// DefaultConfigDir returns ~/.sweatci, or "" when there is no home directory
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ConfigDirName)
}

// DefaultConfigPath returns ~/.sweatci/config.toml
func DefaultConfigPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, ConfigFileName)
}

// LoadFileConfig reads a config file over the defaults. Files ending in
// .yaml or .yml are YAML, anything else is TOML. A missing file is not an error.
func LoadFileConfig(path string) (*FileConfig, error) {
	fc := DefaultFileConfig()
	if path == "" {
		return fc, nil
	}

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		fc.Undecoded, err = decodeYAML(path, fc)
	default:
		fc.Undecoded, err = decodeTOML(path, fc)
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fc, nil
		}
		return nil, &ScriptError{
			Message:  fmt.Sprintf("invalid config: %v", err),
			Position: SourcePosition{Filename: path},
			Err:      err,
		}
	}

	fc.History = expandHome(fc.History)
	for i, p := range fc.Autoexec {
		fc.Autoexec[i] = expandHome(p)
	}

	if _, err := fc.TickInterval(); err != nil {
		return nil, &ScriptError{Message: err.Error(), Position: SourcePosition{Filename: path}, Err: err}
	}
	return fc, nil
}

func decodeTOML(path string, fc *FileConfig) ([]string, error) {
	md, err := toml.DecodeFile(path, fc)
	if err != nil {
		return nil, err
	}
	var undecoded []string
	for _, key := range md.Undecoded() {
		undecoded = append(undecoded, key.String())
	}
	return undecoded, nil
}

func decodeYAML(path string, fc *FileConfig) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, fc); err != nil {
		return nil, err
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	var undecoded []string
	for key := range raw {
		if !fileConfigKeys[key] {
			undecoded = append(undecoded, key)
		}
	}
	sort.Strings(undecoded)
	return undecoded, nil
}

// TickInterval parses Tick ("50ms", "0.1s"); a bare number means seconds
func (fc *FileConfig) TickInterval() (time.Duration, error) {
	return ParseTick(fc.Tick)
}

// ParseTick parses a tick interval. A bare number is taken as seconds.
func ParseTick(text string) (time.Duration, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	if seconds, err := parseNumber(text); err == nil {
		if seconds < 0 {
			return 0, fmt.Errorf("tick %q is negative: %w", text, ErrInvalidValue)
		}
		return time.Duration(seconds * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(text)
	if err != nil {
		return 0, fmt.Errorf("tick %q: %w", text, ErrInvalidValue)
	}
	if d < 0 {
		return 0, fmt.Errorf("tick %q is negative: %w", text, ErrInvalidValue)
	}
	return d, nil
}

// InterpreterConfig builds the engine configuration described by the file
func (fc *FileConfig) InterpreterConfig(out Printer) (*Config, error) {
	config := DefaultConfig()
	config.Debug = fc.Debug
	config.ReportAliasOverflow = fc.ReportAliasOverflow
	config.Output = out
	if fc.MaxAliasDepth > 0 {
		config.MaxAliasDepth = fc.MaxAliasDepth
	}
	for _, name := range fc.DebugCategories {
		cat, ok := ParseLogCategory(name)
		if !ok {
			return nil, fmt.Errorf("unknown debug category %q: %w", name, ErrInvalidValue)
		}
		config.DebugCategories = append(config.DebugCategories, cat)
	}
	return config, nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
