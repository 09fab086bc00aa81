package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Rorical/ezframe/ui/components"
	"github.com/Rorical/ezframe/ui/styles"
)

var decodeTree bool

var decodeCmd = &cobra.Command{
	Use:   "decode [frame...]",
	Short: "Decode frames and print the results",
	Long:  `Decode each frame with the configured decode command and print the result as JSON, or as a tree with --tree.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, _, err := newCLIRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		out := cmd.OutOrStdout()
		theme := styles.ForMode(rt.Prefs.DarkMode())
		failed := 0
		for _, frame := range args {
			rt.Coordinator.Run(cmd.Context(), frame)
			snap := rt.Coordinator.Snapshot()

			if len(args) > 1 {
				fmt.Fprintf(out, "# %s\n", frame)
			}
			if snap.HasError() {
				failed++
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", frame, snap.Error)
				continue
			}
			if decodeTree {
				fmt.Fprint(out, components.RenderTree(theme, snap.Result))
			} else {
				fmt.Fprintln(out, components.RenderJSON(snap.Result))
			}
		}

		if failed > 0 {
			return errors.New(pluralFailures(failed, len(args)))
		}
		return nil
	},
}

func pluralFailures(failed, total int) string {
	if total == 1 {
		return "decode failed"
	}
	return fmt.Sprintf("%d of %d frames failed to decode", failed, total)
}

func init() {
	decodeCmd.Flags().BoolVar(&decodeTree, "tree", false, "print results as a tree")
}
