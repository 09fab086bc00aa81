package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show and change persisted preferences",
}

var showPrefsCmd = &cobra.Command{
	Use:   "show",
	Short: "Show preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, _, err := newCLIRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		p := rt.Prefs.Snapshot()
		spec := p.SpecFilePath
		if spec == "" {
			spec = "(not set)"
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Advanced mode: %t\n", p.AdvancedMode)
		fmt.Fprintf(out, "Dark mode:     %t\n", p.DarkMode)
		fmt.Fprintf(out, "Spec file:     %s\n", spec)
		return nil
	},
}

var togglePrefsCmd = &cobra.Command{
	Use:       "toggle [advanced|dark]",
	Short:     "Flip a boolean preference",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"advanced", "dark"},
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, _, err := newCLIRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		var value bool
		switch args[0] {
		case "advanced":
			value, err = rt.Prefs.ToggleAdvancedMode()
		case "dark":
			value, err = rt.Prefs.ToggleDarkMode()
		default:
			return fmt.Errorf("unknown preference %q, want advanced or dark", args[0])
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %t\n", args[0], value)
		return nil
	},
}

var clearSpecPath bool

var specPathCmd = &cobra.Command{
	Use:   "spec-path [path]",
	Short: "Set the spec file passed to the decode command",
	Long:  `Set the spec file passed to the decode command. Without a path you are prompted for one; --clear removes it.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, _, err := newCLIRuntime()
		if err != nil {
			return err
		}
		defer rt.Close()

		if clearSpecPath {
			if err := rt.Prefs.SetSpecFilePath(""); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Spec file cleared")
			return nil
		}

		var path string
		if len(args) == 1 {
			path = args[0]
		} else {
			current, _ := rt.Prefs.SpecFilePath()
			prompt := promptui.Prompt{
				Label:    "Spec file",
				Default:  current,
				Validate: validateSpecPath,
			}
			path, err = prompt.Run()
			if err != nil {
				return fmt.Errorf("prompt failed: %w", err)
			}
		}

		if err := validateSpecPath(path); err != nil {
			return err
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		if err := rt.Prefs.SetSpecFilePath(abs); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Spec file set to %s\n", abs)
		return nil
	},
}

func validateSpecPath(path string) error {
	if path == "" {
		return errors.New("path cannot be empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

func init() {
	specPathCmd.Flags().BoolVar(&clearSpecPath, "clear", false, "remove the stored spec file")

	prefsCmd.AddCommand(showPrefsCmd, togglePrefsCmd, specPathCmd)
}
