package cli

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Vovarama1992/memo_coach/internal/speech"
)

// NewPCM2WAVCmd wraps raw 16-bit mono PCM in a WAV header.
func NewPCM2WAVCmd() *cobra.Command {
	var rate int

	cmd := &cobra.Command{
		Use:   "pcm2wav <in.pcm> <out.wav>",
		Short: "Wrap raw 16-bit mono PCM into a playable WAV file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rate <= 0 {
				return fmt.Errorf("--rate must be positive")
			}
			pcm, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			wav := speech.PCMToWAV(pcm, rate)
			if err := os.WriteFile(args[1], wav, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s, %d Hz)\n", args[1], humanize.Bytes(uint64(len(wav))), rate)
			return nil
		},
	}
	cmd.Flags().IntVar(&rate, "rate", speech.DefaultSampleRate, "sample rate in Hz")
	return cmd
}
