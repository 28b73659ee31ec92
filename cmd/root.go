package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"docs-whitelabel/internal/config"
	"docs-whitelabel/internal/ctxlog"
	"docs-whitelabel/internal/whitelabel"
)

// appFs is the filesystem every command reads templates from and writes to.
var appFs afero.Fs = afero.NewOsFs()

// ExitError ends the process with Code. Message, when set, is printed to
// stderr; an empty Message means the failure was already reported.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Message
}

var rootCmd = &cobra.Command{
	Use:   "whitelabel",
	Short: "Whitelabel API documentation templates",
	Long: `Whitelabel renders API documentation templates for a company.

It substitutes {{COMPANY_NAME}}, {{API_ENDPOINT}} and {{COMPANY_SLUG}} in the
template files of a profile and writes the results into the docs tree.

Usage:
  whitelabel --company='[name]' --endpoint=[domain] [--key=value ...]

Keys:
  --company, --c      company name (required)
  --endpoint, --e     API endpoint domain (required)
  --profile, --p      profile to run (default "templates")
  --root, --r         whitelabel project root (default ".")
  --config            YAML file with additional profiles
  --log-level         debug, info, warn or error (default "warn")
  --log-format        text, json or auto (default "auto")
  --validate          check rendered OpenAPI documents with kin-openapi`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceErrors:      true,
	SilenceUsage:       true,
	CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
	RunE: func(cmd *cobra.Command, args []string) error {
		parsed := config.ParseArgs(args)
		if parsed.Has("help", "h", "-h") {
			return cmd.Help()
		}

		opts, err := config.Resolve(parsed)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), config.Usage)
			return &ExitError{Code: 1}
		}
		if err := validateLogOptions(opts.LogLevel, opts.LogFormat); err != nil {
			return err
		}

		logger := newLogger(opts.LogLevel, opts.LogFormat, cmd.ErrOrStderr())
		ctx := ctxlog.WithLogger(cmd.Context(), logger)
		if err := runProfile(ctx, opts); err != nil {
			logger.Error("whitelabel failed", "err", err)
			return &ExitError{Code: 1}
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Doc whitelabeled successfully!")
		return nil
	},
}

func runProfile(ctx context.Context, opts config.Options) error {
	registry, err := config.LoadRegistry(opts.ConfigPath)
	if err != nil {
		return err
	}
	profile, err := registry.Get(opts.Profile)
	if err != nil {
		return err
	}
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return fmt.Errorf("resolve root %s: %w", opts.Root, err)
	}

	_, err = whitelabel.Run(ctx, appFs, whitelabel.Request{
		Root:     root,
		Profile:  profile,
		Values:   opts.Values,
		Validate: opts.Validate,
	})
	return err
}

// Execute runs the command line and exits with its status.
func Execute() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Message != "" {
			fmt.Fprintln(stderr, exitErr.Message)
		}
		return exitErr.Code
	}
	fmt.Fprintln(stderr, err)
	return 1
}
