package cmd

import (
	"github.com/spf13/pflag"

	"docs-whitelabel/internal/config"
)

func addConfigFlag(flags *pflag.FlagSet, p *string) {
	flags.StringVar(p, "config", "", "YAML file with additional profiles")
}

func addProfileFlag(flags *pflag.FlagSet, p *string) {
	flags.StringVarP(p, "profile", "p", config.DefaultProfile, "Profile whose tokens are checked")
}
