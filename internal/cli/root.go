package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// Execute runs the CLI. Without a subcommand it serves HTTP.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	var port string
	serve := NewServeCmd(&configPath, &port)

	cmd := &cobra.Command{
		Use:           "memo_coach",
		Short:         "Recitation coach backend: lessons, AI feedback, parent reports",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          serve.RunE,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config (optional)")
	cmd.PersistentFlags().StringVar(&port, "port", "", "port to listen on, overrides config")
	cmd.AddCommand(serve)
	cmd.AddCommand(NewExtractCmd(&configPath))
	cmd.AddCommand(NewPCM2WAVCmd())
	return cmd
}
