package cli

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/Vovarama1992/memo_coach/internal/config"
)

// NewExtractCmd runs document extraction on a local file and prints the JSON.
func NewExtractCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract a lesson passage from a PDF or Word file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			gen, err := newProvider(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			contentType := mime.TypeByExtension(filepath.Ext(args[0]))
			result, err := newExtractor(gen, cfg).Extract(cmd.Context(), data, contentType, filepath.Base(args[0]))
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
