package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := &Config{
		Level:  "invalid-level",
		Format: "json",
		Output: "stdout",
	}
	l := New(cfg, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "debug", Format: "json"}, "svc", &buf)

	l.WithComponent("di").Info("binding registered", Fields(FieldKey, "app.Repo", FieldLifecycle, "singleton"))

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected a JSON log line, got %q: %v", buf.String(), err)
	}
	if line["message"] != "binding registered" {
		t.Errorf("expected message, got %v", line["message"])
	}
	if line[FieldComponent] != "di" {
		t.Errorf("expected component=di, got %v", line[FieldComponent])
	}
	if line[FieldKey] != "app.Repo" {
		t.Errorf("expected key=app.Repo, got %v", line[FieldKey])
	}
}

func TestNewWithWriterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "warn", Format: "json"}, "svc", &buf)

	l.Debug("hidden")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}
	l.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected warn line, got %q", buf.String())
	}
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Error("nothing", Fields("a", 1))
	l.WithComponent("x").WithError(errors.New("e")).Info("nothing")
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "json"}, "svc", &buf)
	ctx := ContextWithRequestID(context.Background(), "req-1")

	l.WithContext(ctx).Info("hello")
	if !strings.Contains(buf.String(), `"request_id":"req-1"`) {
		t.Errorf("expected request id in output, got %q", buf.String())
	}
}

func TestWithFields(t *testing.T) {
	l := NewDefault("test")
	fl := l.WithFields(map[string]interface{}{"key": "value"})
	if fl == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestSetGlobalLogger(t *testing.T) {
	l := NewDefault("custom")
	SetGlobalLogger(l)
	if GetGlobalLogger() != l {
		t.Error("expected SetGlobalLogger to set the global logger")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("expected output 'stdout', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"valid console", Config{Level: "debug", Format: "console"}, false},
		{"invalid level", Config{Level: "bad", Format: "json"}, true},
		{"invalid format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestRegisterAndGet(t *testing.T) {
	l := NewDefault("custom-component")
	Register("my-component", l)
	t.Cleanup(func() { unregister("my-component") })

	if Get("my-component") != l {
		t.Error("expected Get to return the registered logger")
	}
}

func TestGetUnregistered(t *testing.T) {
	var buf bytes.Buffer
	SetGlobalLogger(NewWithWriter(&Config{Level: "info", Format: "json"}, "svc", &buf))
	t.Cleanup(func() { SetGlobalLogger(nil) })

	Get("unregistered-component").Info("hello")
	if !strings.Contains(buf.String(), `"component":"unregistered-component"`) {
		t.Errorf("expected the global logger tagged with the component, got %q", buf.String())
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		name     string
		input    []interface{}
		expected map[string]interface{}
	}{
		{"key-value pairs", []interface{}{"op", "save", "id", 42}, map[string]interface{}{"op": "save", "id": 42}},
		{"odd trailing key dropped", []interface{}{"a", 1, "b"}, map[string]interface{}{"a": 1}},
		{"non-string key skipped", []interface{}{1, "x", "k", "v"}, map[string]interface{}{"k": "v"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Fields(tc.input...)
			if len(got) != len(tc.expected) {
				t.Fatalf("expected %d fields, got %d (%v)", len(tc.expected), len(got), got)
			}
			for k, v := range tc.expected {
				if got[k] != v {
					t.Errorf("expected %s=%v, got %v", k, v, got[k])
				}
			}
		})
	}
}

func TestMergeWithDuration(t *testing.T) {
	merged := MergeWithDuration(Fields(FieldKey, "app.Repo"), 1500*time.Millisecond)
	if merged[FieldDuration] != int64(1500) || merged[FieldKey] != "app.Repo" {
		t.Errorf("unexpected fields %v", merged)
	}
	if MergeWithDuration(nil, time.Second)[FieldDuration] != int64(1000) {
		t.Error("expected a map to be created for nil fields")
	}
}

func unregister(name string) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	delete(registry.loggers, name)
}
