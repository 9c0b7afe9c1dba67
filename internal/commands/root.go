// Package commands provides CLI commands for chatboot.
package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/chatboot/internal/config"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// globalFlags are shared by every subcommand
type globalFlags struct {
	model      string
	url        string
	configPath string
	verbose    bool
}

// queryFlags belong to the one-shot root command
type queryFlags struct {
	output string
	file   string
}

// NewRootCmd builds the command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	if deps == nil {
		deps = NewDependencies()
	}
	flags := &globalFlags{}
	qf := &queryFlags{}

	cmd := &cobra.Command{
		Use:   "chatboot [prompt]",
		Short: "Terminal chat for an Ollama-compatible model endpoint",
		Long: `chatboot sends your questions to a language model served behind an
Ollama-compatible /api/chat endpoint protected by Basic authentication.

The endpoint and credentials come from CHATBOOT_URL, CHATBOOT_USERNAME and
CHATBOOT_PASSWORD, or from ~/.chatboot/config.json.

Examples:
  chatboot chat                          Start the interactive chat
  chatboot "¿Cómo invierto una lista?"   Send a single question
  chatboot -f pregunta.md                Read the question from a file
  cat pregunta.md | chatboot             Read the question from stdin
  chatboot "Hola" -o respuesta.md        Save the reply to a file
  chatboot config                        Show the effective configuration`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Stdout, "chatboot %s (built %s)\n", Version, BuildTime)
				return nil
			}

			prompt, ok, err := readPrompt(deps, qf, args)
			if err != nil {
				return err
			}
			if !ok {
				return cmd.Help()
			}

			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			return runQuery(cmd.Context(), deps, cfg, qf, prompt)
		},
	}

	cmd.SetIn(deps.Stdin)
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)

	cmd.PersistentFlags().StringVarP(&flags.model, "model", "m", "", "Model to use (e.g., gemma3:4b)")
	cmd.PersistentFlags().StringVar(&flags.url, "url", "", "Inference endpoint URL (overrides CHATBOOT_URL)")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to the config file")
	cmd.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "Enable debug logging")
	cmd.Flags().StringVarP(&qf.output, "output", "o", "", "Save response to file")
	cmd.Flags().StringVarP(&qf.file, "file", "f", "", "Read prompt from file")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(newChatCmd(deps, flags))
	cmd.AddCommand(newConfigCmd(deps, flags))

	return cmd
}

// readPrompt resolves the prompt from -f, piped stdin, or the argument, in
// that order. ok is false when there is no input at all.
func readPrompt(deps *Dependencies, qf *queryFlags, args []string) (prompt string, ok bool, err error) {
	if qf.file != "" {
		data, err := os.ReadFile(qf.file)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), true, nil
	}

	if deps.StdinPiped != nil && deps.StdinPiped() {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		if strings.TrimSpace(string(data)) != "" {
			return string(data), true, nil
		}
	}

	if len(args) > 0 {
		return args[0], true, nil
	}

	return "", false, nil
}

// loadConfig reads the config file and environment, then applies flags
func loadConfig(flags *globalFlags) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if flags.configPath != "" {
		cfg, err = config.LoadConfigFrom(flags.configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return cfg, err
	}

	if flags.model != "" {
		cfg.Model = flags.model
	}
	if flags.url != "" {
		cleanURL, user, pass := config.SplitUserInfo(flags.url)
		cfg.URL = cleanURL
		if user != "" {
			cfg.Username = user
		}
		if pass != "" {
			cfg.Password = pass
		}
	}
	if flags.verbose {
		cfg.Verbose = true
	}

	return cfg, nil
}

// Execute runs the root command
func Execute() {
	deps := NewDependencies()
	if err := NewRootCmd(deps).Execute(); err != nil {
		fmt.Fprintln(deps.Stderr, formatErrorMessage(err, "Error"))
		os.Exit(1)
	}
}
