package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/chatboot/internal/config"
)

func newConfigCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration chatboot would use, after applying the config
file, CHATBOOT_* environment variables and flags. The password is masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(deps, flags)
		},
	}

	cmd.AddCommand(newConfigInitCmd(deps, flags))
	return cmd
}

func newConfigInitCmd(deps *Dependencies, flags *globalFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(flags)
			if err != nil {
				return err
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			if err := config.SaveConfigTo(config.DefaultConfig(), path); err != nil {
				return err
			}
			fmt.Fprintf(deps.Stdout, "Wrote %s\n", path)
			fmt.Fprintln(deps.Stdout, "Set \"url\", \"username\" and \"password\", or export CHATBOOT_URL, CHATBOOT_USERNAME and CHATBOOT_PASSWORD.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func configPath(flags *globalFlags) (string, error) {
	if flags.configPath != "" {
		return flags.configPath, nil
	}
	return config.GetConfigPath()
}

func showConfig(deps *Dependencies, flags *globalFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	path, err := configPath(flags)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg.Redacted(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	fmt.Fprintf(deps.Stdout, "# %s\n", path)
	fmt.Fprintln(deps.Stdout, string(data))

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "warning: %v\n", err)
	}
	if cfg.HasCredentials() && cfg.IsInsecureTransport() {
		fmt.Fprintln(deps.Stderr, "warning: Basic credentials will be sent unencrypted; use https for remote endpoints")
	}
	if !cfg.HasCredentials() {
		fmt.Fprintln(deps.Stderr, "warning: no username or password configured")
	}

	return nil
}
