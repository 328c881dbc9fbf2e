package config

import (
	"fmt"
	"os"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"
)

// OptionType represents the expected type of a configuration option value.
type OptionType string

const (
	// TypeString is a plain string value (the default for all config values).
	TypeString OptionType = "string"
	// TypeBool is a boolean value (true/false/yes/no/1/0/on/off).
	TypeBool OptionType = "bool"
	// TypeInt is an integer value.
	TypeInt OptionType = "int"
	// TypeDuration is a Go time.Duration value (e.g. "30s", "5m", "1h").
	TypeDuration OptionType = "duration"
)

// ConfigOption declares a single configuration option with its type, default,
// documentation, and environment variable override.
type ConfigOption struct {
	// Key is the option name as it appears in the config file.
	Key string
	// Type is the expected value type for validation.
	Type OptionType
	// Default is the default value as a string, or "" for no default.
	Default string
	// Description is a human-readable description of the option.
	Description string
	// Section is "" for global options, or a section name.
	Section string
	// EnvVar is the environment variable that overrides this option, or "".
	EnvVar string
	// Choices, if set, restricts a string option to these values.
	Choices []string
}

// ConfigSchema declares the expected configuration options.
// It is used for validation, documentation, typed resolution, and env var
// mapping.
type ConfigSchema struct {
	options   []*ConfigOption
	byKey     map[string]*ConfigOption
	bySection map[string]map[string]*ConfigOption
}

// NewSchema creates a new empty ConfigSchema.
func NewSchema() *ConfigSchema {
	return &ConfigSchema{
		byKey:     make(map[string]*ConfigOption),
		bySection: make(map[string]map[string]*ConfigOption),
	}
}

// Register adds a ConfigOption to the schema. The last registration of a key
// within a section wins.
func (s *ConfigSchema) Register(opt ConfigOption) {
	ref := new(ConfigOption)
	*ref = opt
	s.options = append(s.options, ref)
	if opt.Section == "" {
		s.byKey[opt.Key] = ref
		return
	}
	if s.bySection[opt.Section] == nil {
		s.bySection[opt.Section] = make(map[string]*ConfigOption)
	}
	s.bySection[opt.Section][opt.Key] = ref
}

// RegisterAll adds multiple ConfigOptions to the schema.
func (s *ConfigSchema) RegisterAll(opts []ConfigOption) {
	for _, opt := range opts {
		s.Register(opt)
	}
}

// Lookup returns the ConfigOption for a key in a given section ("" for global).
// Returns nil if the key is not registered.
func (s *ConfigSchema) Lookup(section, key string) *ConfigOption {
	if section == "" {
		return s.byKey[key]
	}
	if sec, ok := s.bySection[section]; ok {
		return sec[key]
	}
	return nil
}

// IsKnown reports whether key may appear in section. Global keys may appear
// in any section, where they override the global value.
func (s *ConfigSchema) IsKnown(section, key string) bool {
	if s.Lookup(section, key) != nil {
		return true
	}
	return s.byKey[key] != nil
}

// GlobalOptions returns all registered global options.
func (s *ConfigSchema) GlobalOptions() []ConfigOption {
	return s.SectionOptions("")
}

// SectionOptions returns all registered options for a specific section.
func (s *ConfigSchema) SectionOptions(section string) []ConfigOption {
	var out []ConfigOption
	for _, o := range s.options {
		if o.Section == section {
			out = append(out, *o)
		}
	}
	return out
}

// Sections returns a sorted list of all registered non-empty section names.
func (s *ConfigSchema) Sections() []string {
	out := make([]string, 0, len(s.bySection))
	for sec := range s.bySection {
		out = append(out, sec)
	}
	sort.Strings(out)
	return out
}

// Resolve returns the effective value for a global key by checking, in
// order: the environment variable declared for the key, the config value,
// and the schema default.
func (s *ConfigSchema) Resolve(c *Config, key string) string {
	return s.ResolveSection(c, "", key)
}

// ResolveSection is Resolve for an option that may be set in a section. The
// section value wins over the global value of the same key.
func (s *ConfigSchema) ResolveSection(c *Config, section, key string) string {
	opt := s.Lookup(section, key)
	if opt == nil {
		opt = s.Lookup("", key)
	}
	if opt != nil && opt.EnvVar != "" {
		if v, ok := os.LookupEnv(opt.EnvVar); ok {
			return v
		}
	}
	if section != "" {
		if v, ok := c.GetSectionOption(section, key); ok {
			return v
		}
	} else if v, ok := c.GetGlobalOption(key); ok {
		return v
	}
	if opt != nil {
		return opt.Default
	}
	return ""
}

// ResolveDuration resolves a global key and parses it as a duration.
func (s *ConfigSchema) ResolveDuration(c *Config, key string) (time.Duration, error) {
	v := s.Resolve(c, key)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("option %q: expected duration, got %q", key, v)
	}
	return d, nil
}

// ResolveInt resolves a global key and parses it as an integer.
func (s *ConfigSchema) ResolveInt(c *Config, key string) (int, error) {
	v := s.Resolve(c, key)
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("option %q: expected int, got %q", key, v)
	}
	return i, nil
}

// ResolveBool resolves a key in section ("" for global) and parses it as a
// boolean.
func (s *ConfigSchema) ResolveBool(c *Config, section, key string) (bool, error) {
	v := s.ResolveSection(c, section, key)
	b, err := parseBool(v)
	if err != nil {
		return false, fmt.Errorf("option %q: expected bool, got %q", key, v)
	}
	return b, nil
}

// ValidateConfig checks a loaded Config against the schema and returns a list
// of human-readable issues (empty if the config is valid): unknown options
// and values that do not match the declared type.
func ValidateConfig(c *Config, s *ConfigSchema) []string {
	var issues []string

	for key, value := range c.Global {
		opt := s.Lookup("", key)
		if opt == nil {
			issues = append(issues, fmt.Sprintf("unknown global option: %q (value: %q)", key, value))
			continue
		}
		if err := validateValue(opt, value); err != nil {
			issues = append(issues, fmt.Sprintf("global option %q: %v", key, err))
		}
	}

	for section, opts := range c.Sections {
		for key, value := range opts {
			if !s.IsKnown(section, key) {
				issues = append(issues, fmt.Sprintf("unknown option in [%s]: %q (value: %q)", section, key, value))
				continue
			}
			opt := s.Lookup(section, key)
			if opt == nil {
				opt = s.Lookup("", key)
			}
			if err := validateValue(opt, value); err != nil {
				issues = append(issues, fmt.Sprintf("option %q in [%s]: %v", key, section, err))
			}
		}
	}

	sort.Strings(issues)
	return issues
}

func validateValue(opt *ConfigOption, value string) error {
	switch opt.Type {
	case TypeString, "":
		if len(opt.Choices) > 0 && !slices.Contains(opt.Choices, value) {
			return fmt.Errorf("expected one of %s, got %q", strings.Join(opt.Choices, "|"), value)
		}
	case TypeBool:
		if _, err := parseBool(value); err != nil {
			return fmt.Errorf("expected bool, got %q", value)
		}
	case TypeInt:
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("expected int, got %q", value)
		}
	case TypeDuration:
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("expected duration, got %q", value)
		}
	default:
		return fmt.Errorf("unknown option type %q", opt.Type)
	}
	return nil
}

// FormatHelp returns a formatted, human-readable reference of all registered
// options in the schema, grouped by section.
func (s *ConfigSchema) FormatHelp() string {
	var b strings.Builder

	if globals := s.GlobalOptions(); len(globals) > 0 {
		b.WriteString("Global Options:\n")
		for _, o := range globals {
			writeOptionHelp(&b, o)
		}
	}

	for _, sec := range s.Sections() {
		opts := s.SectionOptions(sec)
		if len(opts) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n[%s] Options:\n", sec)
		for _, o := range opts {
			writeOptionHelp(&b, o)
		}
	}

	return b.String()
}

func writeOptionHelp(b *strings.Builder, o ConfigOption) {
	fmt.Fprintf(b, "  %-24s %s", o.Key, o.Description)
	parts := make([]string, 0, 4)
	if o.Type != "" && o.Type != TypeString {
		parts = append(parts, fmt.Sprintf("type: %s", o.Type))
	}
	if len(o.Choices) > 0 {
		parts = append(parts, fmt.Sprintf("one of: %s", strings.Join(o.Choices, "|")))
	}
	if o.Default != "" {
		parts = append(parts, fmt.Sprintf("default: %s", o.Default))
	}
	if o.EnvVar != "" {
		parts = append(parts, fmt.Sprintf("env: %s", o.EnvVar))
	}
	if len(parts) > 0 {
		fmt.Fprintf(b, " (%s)", strings.Join(parts, ", "))
	}
	b.WriteString("\n")
}

// DefaultSchema returns the schema declaring every hudcheck option. This is
// the single source of truth for option names, types, defaults,
// descriptions, and environment variable overrides.
func DefaultSchema() *ConfigSchema {
	s := NewSchema()
	s.RegisterAll(defaultGlobalOptions())
	s.RegisterAll(defaultSectionOptions())
	return s
}

func defaultGlobalOptions() []ConfigOption {
	return []ConfigOption{
		// Waiting
		{Key: "eventually.timeout", Type: TypeDuration, Default: "10s", Description: "How long an Eventually assertion re-samples before failing", EnvVar: "HUDCHECK_TIMEOUT"},
		{Key: "eventually.interval", Type: TypeDuration, Default: "100ms", Description: "Pause between Eventually samples"},

		// Input
		{Key: "touch.tap-delay", Type: TypeDuration, Default: "30ms", Description: "Hold time between press and release of a tap"},
		{Key: "touch.drag-steps", Type: TypeInt, Default: "10", Description: "Move events emitted by a drag"},

		// Shell under test
		{Key: "backend", Type: TypeString, Default: "sim", Description: "Shell backend", EnvVar: "HUDCHECK_BACKEND", Choices: []string{"sim", "pty"}},
		{Key: "shell.animation", Type: TypeDuration, Default: "250ms", Description: "Duration of shell animations"},
		{Key: "shellsim.path", Type: TypeString, Default: "", Description: "Path to the shellsim binary for the pty backend", EnvVar: "HUDCHECK_SHELLSIM"},

		// Device matrix
		{Key: "scenario.file", Type: TypeString, Default: "", Description: "YAML file of extra or overriding devices", EnvVar: "HUDCHECK_SCENARIO_FILE"},
		{Key: "scenario.filter", Type: TypeString, Default: "", Description: "Expression selecting devices, e.g. gridUnit > 8", EnvVar: "HUDCHECK_SCENARIO_FILTER"},

		// Output
		{Key: "color", Type: TypeString, Default: "auto", Description: "Color mode", Choices: []string{"auto", "always", "never"}},

		// Logging
		{Key: "log.file", Type: TypeString, Default: "", Description: "Log file path (JSON output)", EnvVar: "HUDCHECK_LOG_FILE"},
		{Key: "log.level", Type: TypeString, Default: "info", Description: "Log level", EnvVar: "HUDCHECK_LOG_LEVEL", Choices: []string{"debug", "info", "warn", "error"}},
		{Key: "log.max-size-mb", Type: TypeInt, Default: "10", Description: "Max log file size in MB before rotation"},
		{Key: "log.max-files", Type: TypeInt, Default: "5", Description: "Max number of rotated log backup files"},
	}
}

func defaultSectionOptions() []ConfigOption {
	return []ConfigOption{
		// [run] section
		{Key: "fail-fast", Section: "run", Type: TypeBool, Default: "false", Description: "Stop after the first failing test"},
		{Key: "cases", Section: "run", Type: TypeString, Default: "", Description: "Comma separated test cases to run (default all)"},
	}
}
