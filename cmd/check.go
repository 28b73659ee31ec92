package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"docs-whitelabel/internal/config"
	"docs-whitelabel/internal/render"
)

var (
	checkPaths   []string
	checkExts    []string
	checkProfile string
	checkConfig  string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report placeholders left unrendered in whitelabeled output",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(checkPaths) == 0 {
			return fmt.Errorf("at least one path is required")
		}

		registry, err := config.LoadRegistry(checkConfig)
		if err != nil {
			return err
		}
		profile, err := registry.Get(checkProfile)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		total := 0
		for _, root := range checkPaths {
			findings, err := render.Scan(appFs, root, checkExts, profile.Tokens)
			if err != nil {
				return err
			}
			for _, f := range findings {
				fmt.Fprintln(out, f)
			}
			total += len(findings)
		}

		if total > 0 {
			return &ExitError{Code: 1, Message: fmt.Sprintf("%d unresolved placeholder(s) found", total)}
		}
		fmt.Fprintf(out, "Done! No placeholders left in %s\n", strings.Join(checkPaths, ", "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	defineCheckFlags()
}

func defineCheckFlags() {
	checkCmd.Flags().StringSliceVar(&checkPaths, "paths", []string{}, "Rendered output folder(s) (comma-separated)")
	checkCmd.Flags().StringSliceVar(&checkExts, "exts", []string{"json", "yaml", "mdx", "md"}, "File extensions to scan")
	addProfileFlag(checkCmd.Flags(), &checkProfile)
	addConfigFlag(checkCmd.Flags(), &checkConfig)
}
