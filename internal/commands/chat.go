package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/chatboot/internal/chat"
	"github.com/diogo/chatboot/internal/logging"
	"github.com/diogo/chatboot/internal/render"
	"github.com/diogo/chatboot/internal/tui"
)

func newChatCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start the interactive chat.

Every question is sent on its own together with the system prompt; earlier
messages stay on screen but are not sent back to the model.

Press Enter to send, Ctrl+Y to copy the last reply, Esc or Ctrl+C to quit.
Logs are written to ~/.chatboot/chatboot.log.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(deps, flags)
		},
	}
}

func runChat(deps *Dependencies, flags *globalFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	logger := logging.ForChat(cfg)
	defer func() { _ = logger.Sync() }()
	logger.Info("starting chat", logging.EndpointFields(cfg)...)

	client, err := deps.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	if !render.UsePalette(cfg.TUITheme) {
		logger.Warn("unknown theme, using default",
			zap.String("theme", cfg.TUITheme),
			zap.Strings("available", render.PaletteNames()))
	}
	tui.UpdateTheme()

	session := chat.NewSession(client, chat.WithLogger(logger))
	defer session.Close()

	err = deps.TUI.RunChat(session, tui.Settings{
		ModelName:  client.GetModel(),
		ShowErrors: cfg.ShowErrors,
		Render:     render.OptionsFromConfig(cfg),
		Logger:     logger,
	})
	logger.Info("chat ended", zap.Int("messages", session.Len()))
	return err
}
