package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	
	config := Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "test-service",
		Version:     "1.0.0",
		Environment: "test",
		AddSource:   false,
	}
	
	InitLoggerWithWriter(config, &buf)
	
	// Log a test message
	Info("test message", "key", "value", "number", 42)
	
	// Parse JSON output
	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}
	
	// Verify base attributes
	if logEntry["service"] != "test-service" {
		t.Errorf("Expected service=test-service, got %v", logEntry["service"])
	}
	
	if logEntry["version"] != "1.0.0" {
		t.Errorf("Expected version=1.0.0, got %v", logEntry["version"])
	}
	
	if logEntry["environment"] != "test" {
		t.Errorf("Expected environment=test, got %v", logEntry["environment"])
	}
	
	// Verify message
	if logEntry["msg"] != "test message" {
		t.Errorf("Expected msg='test message', got %v", logEntry["msg"])
	}
	
	// Verify level
	if logEntry["level"] != "INFO" {
		t.Errorf("Expected level=INFO, got %v", logEntry["level"])
	}
	
	// Verify custom attributes
	if logEntry["key"] != "value" {
		t.Errorf("Expected key=value, got %v", logEntry["key"])
	}
	
	if logEntry["number"] != float64(42) {
		t.Errorf("Expected number=42, got %v", logEntry["number"])
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "test-req-123")
	
	requestID := GetRequestID(ctx)
	if requestID != "test-req-123" {
		t.Errorf("Expected request_id=test-req-123, got %s", requestID)
	}
	
	// Test with logger
	log := FromContext(ctx)
	if log == nil {
		t.Error("Expected non-nil logger")
	}
}

func TestForEnvironment(t *testing.T) {
	cases := []struct {
		env    string
		format string
		level  string
	}{
		{"prod", "json", "info"},
		{"production", "json", "info"},
		{"staging", "json", "debug"},
		{"test", "text", "debug"},
		{"cli", "text", "warn"},
		{"dev", "text", "debug"},
		{"somewhere", "text", "debug"},
	}
	for _, tc := range cases {
		config := ForEnvironment(tc.env, "1.2.3")
		if config.Format != tc.format || config.Level != tc.level {
			t.Errorf("ForEnvironment(%q) = %s/%s, want %s/%s", tc.env, config.Format, config.Level, tc.format, tc.level)
		}
		if config.Environment != tc.env {
			t.Errorf("ForEnvironment(%q) environment = %s", tc.env, config.Environment)
		}
		if config.Version != "1.2.3" {
			t.Errorf("ForEnvironment(%q) version = %s", tc.env, config.Version)
		}
	}

	if v := ForEnvironment("prod", "").Version; v != ProductionVersion {
		t.Errorf("Expected preset version when none given, got %s", v)
	}
}

func TestWithOverrides(t *testing.T) {
	config := ProductionConfig().WithOverrides("warn", "")
	if config.Level != "warn" {
		t.Errorf("Expected level override, got %s", config.Level)
	}
	if config.Format != "json" {
		t.Errorf("Expected preset format to survive an empty override, got %s", config.Format)
	}
}

func TestTestConfig(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(TestConfig(), &buf)
	Debug("visible in tests", "k", "v")

	out := buf.String()
	if !strings.Contains(out, "visible in tests") {
		t.Errorf("Expected debug record in test output, got %q", out)
	}
	if !strings.Contains(out, "environment=test") {
		t.Errorf("Expected environment attribute, got %q", out)
	}
	if strings.Contains(out, "source=") {
		t.Errorf("Expected no source locations, got %q", out)
	}
}

func TestCLIConfig(t *testing.T) {
	if got := CLIConfig(false).LogLevel(); got != slog.LevelWarn {
		t.Errorf("Expected quiet CLI at warn, got %s", got)
	}
	if got := CLIConfig(true).LogLevel(); got != slog.LevelDebug {
		t.Errorf("Expected verbose CLI at debug, got %s", got)
	}
}

func TestProductionConfig(t *testing.T) {
	config := ProductionConfig()
	
	if config.Format != "json" {
		t.Errorf("Expected JSON format in prod, got %s", config.Format)
	}
	
	if config.Level != "info" {
		t.Errorf("Expected info level in prod, got %s", config.Level)
	}
	
	if config.Environment != "prod" {
		t.Errorf("Expected prod environment, got %s", config.Environment)
	}
	
	if config.AddSource {
		t.Error("Expected AddSource=false in production")
	}
}

func TestDevelopmentConfig(t *testing.T) {
	config := DevelopmentConfig()
	
	if config.Format != "text" {
		t.Errorf("Expected text format in dev, got %s", config.Format)
	}
	
	if config.Level != "debug" {
		t.Errorf("Expected debug level in dev, got %s", config.Level)
	}
	
	if !config.AddSource {
		t.Error("Expected AddSource=true in development")
	}
}

func TestFromContextAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerWithWriter(Config{Level: "debug", Format: "json", ServiceName: "svc"}, &buf)

	ctx := WithRequestID(context.Background(), "req-42")
	FromContext(ctx).Info("scoped")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}
	if logEntry["request_id"] != "req-42" {
		t.Errorf("Expected request_id=req-42, got %v", logEntry["request_id"])
	}
}

func TestLogLevelParsing(t *testing.T) {
	cases := map[string]string{
		"debug":   "DEBUG",
		"WARNING": "WARN",
		"error":   "ERROR",
		"bogus":   "INFO",
		"info+2":  "INFO+2",
	}
	for in, want := range cases {
		if got := (Config{Level: in}).LogLevel().String(); got != want {
			t.Errorf("LogLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
