package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cratis/cratis-core/internal/config"
)

const sampleConfig = `
client: {id: "c1", name: "laptop"}
backup: {mode: full, watch_directories: ["/home/user/docs", "/etc"]}
server: {address: "backup.example.com:9000", auth_token: "secret123"}
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestRunValidate(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	var out bytes.Buffer

	if err := run([]string{"--config", path, "--log-level", "error", "validate"}, &out, config.NewHolder()); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if !strings.Contains(out.String(), "configuration is valid") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRunShowMasksSecret(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	var out bytes.Buffer

	if err := run([]string{"-c", path, "--log-level", "error", "show"}, &out, config.NewHolder()); err != nil {
		t.Fatalf("run returned error: %v", err)
	}

	text := out.String()
	if strings.Contains(text, "secret123") {
		t.Fatalf("show output leaks auth token:\n%s", text)
	}
	for _, want := range []string{"name: laptop", "mode: full", "- /home/user/docs", "- /etc", "[REDACTED]"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output:\n%s", want, text)
		}
	}
	if strings.Contains(text, "advanced") {
		t.Fatalf("absent advanced block should not be printed:\n%s", text)
	}
}

func TestRunReportsLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "absent.yaml")
		err := run([]string{"--config", missing, "--log-level", "error", "validate"}, &bytes.Buffer{}, config.NewHolder())
		if !errors.Is(err, config.ErrFileRead) {
			t.Fatalf("expected ErrFileRead, got %v", err)
		}
	})

	t.Run("invalid mode", func(t *testing.T) {
		path := writeConfig(t, strings.Replace(sampleConfig, "mode: full", "mode: weekly", 1))
		err := run([]string{"--config", path, "--log-level", "error", "validate"}, &bytes.Buffer{}, config.NewHolder())
		if !errors.Is(err, config.ErrParse) {
			t.Fatalf("expected ErrParse, got %v", err)
		}
	})
}

func TestRunRejectsUnknownCommand(t *testing.T) {
	if err := run([]string{"restore"}, &bytes.Buffer{}, config.NewHolder()); err == nil {
		t.Fatalf("expected error for unknown command")
	}
}
