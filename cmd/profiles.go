package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"docs-whitelabel/internal/config"
)

var profilesConfig string

var profilesCmd = &cobra.Command{
	Use:   "profiles [name]",
	Short: "List whitelabel profiles or show one profile's targets",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry(profilesConfig)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			p, err := registry.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: %s\n", p.Name, p.Description)
			fmt.Fprintf(out, "tokens: %s\n", joinTokens(p.Tokens))
			for _, f := range p.Files {
				line := fmt.Sprintf("file    %s -> %s", f.From, f.To)
				if f.Validate {
					line += " (openapi)"
				}
				fmt.Fprintln(out, line)
			}
			for _, t := range p.Trees {
				fmt.Fprintf(out, "%-7s %s/ -> %s/\n", t.Mode, t.From, t.To)
			}
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTOKENS\tDESCRIPTION")
		for _, name := range registry.Names() {
			p, _ := registry.Get(name)
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, joinTokens(p.Tokens), p.Description)
		}
		return w.Flush()
	},
}

func joinTokens(tokens []config.Token) string {
	names := make([]string, len(tokens))
	for i, t := range tokens {
		names[i] = string(t)
	}
	return strings.Join(names, ",")
}

func init() {
	rootCmd.AddCommand(profilesCmd)
	defineProfilesFlags()
}

func defineProfilesFlags() {
	addConfigFlag(profilesCmd.Flags(), &profilesConfig)
}
