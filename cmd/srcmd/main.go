// Package main provides the entry point for the srcmd CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/calebws/srcmd/internal/config"
	"github.com/calebws/srcmd/internal/envfile"
	"github.com/calebws/srcmd/internal/output"
)

// Build info set via ldflags at build time.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// defaultOutput is the document path when --output is not given.
const defaultOutput = "worker_sources.md"

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the srcmd CLI.
// The root command runs the bundle operation directly; scan and serve
// are subcommands.
func newRootCmd() *cobra.Command {
	opts := &bundleOptions{}

	cmd := &cobra.Command{
		Use:   "srcmd",
		Short: "Bundle project source files into one Markdown document",
		Long: `srcmd collects selected source files from a project and concatenates
them into a single Markdown document with fenced code blocks, for
documentation or review.

By default it gathers .ts and .tsx files under worker/src plus the root
wrangler.toml and vitest.config.ts; a .srcmd.yaml manifest at the root
can override the layout.

Exit codes: 0 success, 1 user error, 2 no candidate files, 3 write failure.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBundle(cmd, opts)
		},
	}

	// Load .env.local (then .env) so SRCMD_* defaults can live per-repo.
	// Environment variables always take precedence over file values.
	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loadEnvFiles()
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	addDiscoveryFlags(cmd, opts)
	cmd.Flags().StringVar(&opts.outPath, "output", defaultOutput, "Output Markdown file path")

	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// addDiscoveryFlags registers the flags shared by bundle and scan.
func addDiscoveryFlags(cmd *cobra.Command, opts *bundleOptions) {
	cmd.Flags().StringVar(&opts.root, "root", ".", "Project root to scan")
	cmd.Flags().BoolVar(&opts.includeDotTypes, "include-dot-types", false, "Include .d.ts declaration files")

	// Historical spelling: always-true and not toggleable, so it changes
	// nothing. Kept hidden so old invocations keep parsing.
	cmd.Flags().Bool("skip-dot-types", true, "Skip .d.ts declaration files (always on; see --include-dot-types)")
	_ = cmd.Flags().MarkHidden("skip-dot-types")
}

// applyEnvDefaults overrides unset flags from SRCMD_ROOT and SRCMD_OUTPUT.
func applyEnvDefaults(cmd *cobra.Command, opts *bundleOptions) {
	if !cmd.Flags().Changed("root") {
		if env := os.Getenv("SRCMD_ROOT"); env != "" {
			opts.root = env
		}
	}
	if flag := cmd.Flags().Lookup("output"); flag != nil && !flag.Changed {
		if env := os.Getenv("SRCMD_OUTPUT"); env != "" {
			opts.outPath = env
		}
	}
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins; environment variables already set always take precedence.
//
// Resolution order:
//  1. $CWD/.env.local   (per-repo override, gitignored)
//  2. $CWD/.env         (per-repo)
//  3. <configdir>/env   (global fallback)
func loadEnvFiles() {
	paths := []string{".env.local", ".env"}
	if dir := config.Dir(); dir != "" {
		paths = append(paths, filepath.Join(dir, "env"))
	}
	_ = envfile.Load(paths...)
}
