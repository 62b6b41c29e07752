package logger

import (
	"log/slog"
	"strings"
)

// Config selects the slog handler and the attributes stamped on every record
type Config struct {
	Level       string
	Format      string
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// ForEnvironment returns the preset for a deployment environment. Unknown
// environments get the development preset.
func ForEnvironment(environment, version string) Config {
	var c Config
	switch strings.ToLower(environment) {
	case EnvironmentProduction, EnvironmentProductionLong:
		c = ProductionConfig()
	case EnvironmentStaging:
		c = ProductionConfig()
		c.Level = LogLevelDebug
	case EnvironmentTest:
		c = TestConfig()
	case EnvironmentCLI:
		c = CLIConfig(false)
	default:
		c = DevelopmentConfig()
	}
	c.Environment = strings.ToLower(environment)
	if version != "" {
		c.Version = version
	}
	return c
}

// WithOverrides replaces the preset level and format with explicit
// settings; empty values keep the preset
func (c Config) WithOverrides(level, format string) Config {
	if level != "" {
		c.Level = level
	}
	if format != "" {
		c.Format = format
	}
	return c
}

// ProductionConfig is JSON at info level without source locations
func ProductionConfig() Config {
	return Config{
		Level:       LogLevelInfo,
		Format:      LogFormatJSON,
		ServiceName: DefaultServiceName,
		Version:     ProductionVersion,
		Environment: EnvironmentProduction,
	}
}

// DevelopmentConfig is debug-level text with source locations
func DevelopmentConfig() Config {
	return Config{
		Level:       LogLevelDebug,
		Format:      LogFormatText,
		ServiceName: DefaultServiceName,
		Version:     DefaultVersion,
		Environment: EnvironmentDev,
		AddSource:   true,
	}
}

// TestConfig captures everything as plain text so tests can assert on
// debug records without source paths changing the output
func TestConfig() Config {
	return Config{
		Level:       LogLevelDebug,
		Format:      LogFormatText,
		ServiceName: DefaultServiceName,
		Version:     DefaultVersion,
		Environment: EnvironmentTest,
	}
}

// CLIConfig keeps operator commands quiet on stderr unless verbose is set
func CLIConfig(verbose bool) Config {
	level := LogLevelWarn
	if verbose {
		level = LogLevelDebug
	}
	return Config{
		Level:       level,
		Format:      LogFormatText,
		ServiceName: DefaultServiceName,
		Version:     DefaultVersion,
		Environment: EnvironmentCLI,
	}
}

// LogLevel parses Level, accepting "warning" and offsets such as "debug+2".
// Anything unparseable is info.
func (c Config) LogLevel() slog.Level {
	text := strings.ToLower(strings.TrimSpace(c.Level))
	if text == LogLevelWarning {
		text = LogLevelWarn
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(text)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// IsJSON returns true if format is JSON
func (c Config) IsJSON() bool {
	return strings.ToLower(c.Format) == LogFormatJSON
}

// BaseAttributes returns common attributes to add to all logs
func (c Config) BaseAttributes() []slog.Attr {
	return []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
}
