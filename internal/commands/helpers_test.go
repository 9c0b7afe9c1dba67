package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/diogo/chatboot/internal/api"
	"github.com/diogo/chatboot/internal/chat"
	"github.com/diogo/chatboot/internal/config"
	"github.com/diogo/chatboot/internal/tui"
)

// testEnv isolates a command run from the real home directory and environment
type testEnv struct {
	deps   *Dependencies
	mock   *api.MockClient
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	dir    string

	mu      sync.Mutex
	lastCfg config.Config
	builds  int
}

func newTestEnv(t *testing.T, reply string) *testEnv {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("GLAMOUR_STYLE", "")
	for _, key := range []string{
		"CHATBOOT_URL", "CHATBOOT_USERNAME", "CHATBOOT_PASSWORD", "CHATBOOT_MODEL",
		"VITE_REACT_APP_URL", "VITE_REACT_APP_USERNAME", "VITE_REACT_APP_PASSWORD",
	} {
		t.Setenv(key, "")
	}

	env := &testEnv{
		mock:   api.NewMockClient(reply),
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		dir:    dir,
	}
	env.deps = &Dependencies{
		NewClient: func(cfg config.Config, logger *zap.Logger) (api.ChatClientInterface, error) {
			env.mu.Lock()
			defer env.mu.Unlock()
			env.lastCfg = cfg
			env.builds++
			return env.mock, nil
		},
		TUI:           &fakeTUI{},
		Stdin:         strings.NewReader(""),
		Stdout:        env.stdout,
		Stderr:        env.stderr,
		StdinPiped:    func() bool { return false },
		StdoutTTY:     func() bool { return false },
		TerminalWidth: func() int { return 80 },
	}
	return env
}

func (e *testEnv) run(args ...string) error {
	cmd := NewRootCmd(e.deps)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func (e *testEnv) lastConfig() config.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastCfg
}

// writeConfig stores cfg as JSON in the test directory and returns its path
func (e *testEnv) writeConfig(t *testing.T, cfg map[string]any) string {
	t.Helper()
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(e.dir, "config.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// fakeTUI records how the chat view was started
type fakeTUI struct {
	called   bool
	session  *chat.Session
	settings tui.Settings
	run      func(session *chat.Session) error
}

func (f *fakeTUI) RunChat(session *chat.Session, settings tui.Settings) error {
	f.called = true
	f.session = session
	f.settings = settings
	if f.run != nil {
		return f.run(session)
	}
	return nil
}
