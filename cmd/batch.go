package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Rorical/ezframe/internal/engine"
)

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Decode a file of frames, one per line",
	Long: `Decode every frame in file (or stdin when file is "-" or omitted) and print
one JSON object per frame. Only the first token of each line is used and blank
lines are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readBatchInput(cmd, args)
		if err != nil {
			return err
		}

		rt, logger, err := newCLIRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		results := engine.DecodeBatch(cmd.Context(), rt.Engine, text)
		enc := json.NewEncoder(cmd.OutOrStdout())
		failed := 0
		for _, r := range results {
			if r.Error != "" {
				failed++
			}
			if err := enc.Encode(r); err != nil {
				return fmt.Errorf("write result: %w", err)
			}
		}
		logger.Info().Int("frames", len(results)).Int("failed", failed).Msg("batch finished")

		if failed > 0 {
			return fmt.Errorf("%d of %d frames failed to decode", failed, len(results))
		}
		return nil
	},
}

func readBatchInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}
