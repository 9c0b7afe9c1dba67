package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/diogo/chatboot/internal/config"
)

func TestConfigCommand_MasksPassword(t *testing.T) {
	env := newTestEnv(t, "")
	path := env.writeConfig(t, map[string]any{
		"url":      "https://models.example.com/api/chat",
		"username": "ana",
		"password": "supersecreto",
	})

	if err := env.run("--config", path, "config"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	out := env.stdout.String()
	if strings.Contains(out, "supersecreto") {
		t.Error("password must not be printed")
	}
	for _, want := range []string{path, "https://models.example.com/api/chat", "\"username\": \"ana\""} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if env.stderr.Len() != 0 {
		t.Errorf("no warnings expected, got %q", env.stderr.String())
	}
	if env.builds != 0 {
		t.Error("config should not build a client")
	}
}

func TestConfigCommand_Warnings(t *testing.T) {
	tests := []struct {
		name string
		cfg  map[string]any
		want string
	}{
		{"missing url", map[string]any{"username": "ana", "password": "x"}, "url"},
		{"plain http to remote host", map[string]any{"url": "http://models.example.com/api/chat", "username": "ana", "password": "x"}, "unencrypted"},
		{"no credentials", map[string]any{"url": "http://localhost:11434/api/chat"}, "no username or password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, "")
			path := env.writeConfig(t, tt.cfg)

			if err := env.run("--config", path, "config"); err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if !strings.Contains(env.stderr.String(), tt.want) {
				t.Errorf("stderr = %q, want %q", env.stderr.String(), tt.want)
			}
		})
	}
}

func TestConfigInit(t *testing.T) {
	env := newTestEnv(t, "")
	path := filepath.Join(env.dir, "nested", "config.json")

	if err := env.run("--config", path, "config", "init"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("mode = %o, want 600", perm)
	}

	cfg, err := config.LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.Model != config.DefaultConfig().Model {
		t.Errorf("Model = %q", cfg.Model)
	}

	// A second init refuses to overwrite
	if err := env.run("--config", path, "config", "init"); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected overwrite refusal, got %v", err)
	}
	if err := env.run("--config", path, "config", "init", "--force"); err != nil {
		t.Errorf("--force should overwrite: %v", err)
	}
}

func TestConfigInit_DefaultPath(t *testing.T) {
	env := newTestEnv(t, "")

	if err := env.run("config", "init"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.dir, ".chatboot", "config.json")); err != nil {
		t.Errorf("default config not written: %v", err)
	}
}
