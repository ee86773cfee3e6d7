package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/reposniff/reposniff/internal/models"
	"github.com/reposniff/reposniff/internal/reporter"
	"github.com/reposniff/reposniff/internal/sniffer"
)

var (
	flagOutput      string
	flagFormat      string
	flagEnrich      bool
	flagDeep        bool
	flagNoCache     bool
	flagTimeout     int
	flagConcurrency int
	flagVerbose     bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "reposniff [path]",
	Short: "Analyze a repository's dependencies, workspace structure, and git remotes",
	Long: `reposniff inspects a source tree and reports which package managers it
uses, what it depends on, and how the repository is hosted.

It supports multiple ecosystems:
  - Rust: Cargo.toml, Cargo.lock
  - Node.js: package.json with npm, pnpm, yarn, or bun lockfiles
  - Python: pyproject.toml, requirements.txt with pip, poetry, pdm, or uv
  - Ruby: Gemfile, Gemfile.lock
  - PHP: composer.json, composer.lock
  - JVM: pom.xml, build.gradle
  - Go: go.mod

Monorepo tooling (cargo workspaces, npm/pnpm/yarn workspaces, nx,
turborepo, lerna, go workspaces) is detected alongside.

Examples:
  # Analyze current directory
  reposniff

  # Analyze a specific path
  reposniff ./service

  # Query registries for latest versions and security advisories
  reposniff --enrich

  # Also contact git remotes for branch listings
  reposniff --enrich --deep

  # Output as JSON
  reposniff --format json --output report.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSniff,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().StringVarP(&flagFormat, "format", "f", "terminal", "Output format: terminal, json")
	rootCmd.Flags().BoolVar(&flagEnrich, "enrich", false, "Query registries for latest versions and advisories")
	rootCmd.Flags().BoolVar(&flagDeep, "deep", false, "Contact git remotes for branch listings")
	rootCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Disable registry response caching")
	rootCmd.Flags().IntVar(&flagTimeout, "timeout", 15, "Registry request timeout in seconds")
	rootCmd.Flags().IntVar(&flagConcurrency, "concurrency", 8, "Maximum concurrent registry requests")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

func runSniff(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	config := models.DefaultConfig()
	config.Root = root
	config.OutputFormat = flagFormat
	config.OutputFile = flagOutput
	config.Enrich = flagEnrich
	config.DeepGit = flagDeep
	config.NoCache = flagNoCache
	config.Timeout = time.Duration(flagTimeout) * time.Second
	config.MaxConcurrent = flagConcurrency

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := sniffer.New(config, logger)
	result, err := s.Run(ctx)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	rep := reporter.Get(config.OutputFormat)
	output, err := rep.Report(result)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	if config.OutputFile != "" {
		if err := os.WriteFile(config.OutputFile, output, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", config.OutputFile)
	} else {
		fmt.Print(string(output))
	}
	return nil
}
