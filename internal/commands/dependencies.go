package commands

import (
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/diogo/chatboot/internal/api"
	"github.com/diogo/chatboot/internal/chat"
	"github.com/diogo/chatboot/internal/config"
	"github.com/diogo/chatboot/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(session *chat.Session, settings tui.Settings) error
}

// ClientFactory builds the inference client for a configuration
type ClientFactory func(cfg config.Config, logger *zap.Logger) (api.ChatClientInterface, error)

// Dependencies holds the external dependencies for the commands.
// Tests replace them to run commands without a network or terminal.
type Dependencies struct {
	NewClient ClientFactory
	TUI       TUIInterface

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// StdinPiped reports whether input is being piped in
	StdinPiped func() bool
	// StdoutTTY reports whether output goes to a terminal
	StdoutTTY func() bool
	// TerminalWidth returns the output width in columns
	TerminalWidth func() int
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(session *chat.Session, settings tui.Settings) error {
	return tui.RunChat(session, settings)
}

func newAPIClient(cfg config.Config, logger *zap.Logger) (api.ChatClientInterface, error) {
	client, err := api.NewClientFromConfig(cfg, logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewClient: newAPIClient,
		TUI:       &DefaultTUI{},
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		StdinPiped: func() bool {
			stat, err := os.Stdin.Stat()
			return err == nil && (stat.Mode()&os.ModeCharDevice) == 0
		},
		StdoutTTY: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
		TerminalWidth: func() int {
			width, _, err := term.GetSize(int(os.Stdout.Fd()))
			if err != nil || width <= 0 {
				return 80
			}
			return width
		},
	}
}
