// k3s-ansible-lint checks the Ansible assets of the k3s cluster bootstrap:
// playbooks, roles, inventory and group variables.
//
// Usage:
//
//	k3s-ansible-lint [--root DIR] [-v] [--format text|json]
//
// The exit code is 0 when no check failed and 1 otherwise.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var errChecksFailed = errors.New("one or more checks failed")

var validFormats = []string{"text", "json"}

type rootOptions struct {
	Root     string
	Verbose  bool
	Format   string
	LogLevel string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, errChecksFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "k3s-ansible-lint",
		Short:         "Validate the Ansible assets of the k3s bootstrap",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !lo.Contains(validFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, validFormats)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Root, "root", "", "infrastructure root (default <repo>/infrastructure/ansible)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "list every check and log at debug level")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "output format (text|json)")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", defaultLogLevel, "log level written to stderr")

	return cmd
}

func runLint(cmd *cobra.Command, opts *rootOptions) error {
	root := opts.Root
	if root == "" {
		root = defaultInfrastructureRoot()
	}

	level := opts.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	logger := newLogger(cmd.ErrOrStderr(), level)

	if _, err := os.Stat(root); err != nil {
		logger.Warn().Err(err).Str("root", root).Msg("Infrastructure root is not accessible")
	}

	report := NewHarness(os.DirFS(root), WithLogger(logger)).Run(".")
	report.Root = root

	var err error
	switch opts.Format {
	case "json":
		err = report.WriteJSON(cmd.OutOrStdout())
	default:
		err = report.WriteText(cmd.OutOrStdout(), opts.Verbose)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if !report.OK() {
		return errChecksFailed
	}
	return nil
}

// defaultInfrastructureRoot resolves infrastructure/ansible next to this
// source file.
func defaultInfrastructureRoot() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return filepath.Join("infrastructure", "ansible")
	}
	return filepath.Join(filepath.Dir(filename), "infrastructure", "ansible")
}
