package cmd

import (
	"fmt"
	"os"

	"github.com/doriginvision/hanzi-tidy/internal/config"
	"github.com/doriginvision/hanzi-tidy/internal/core"
	"github.com/doriginvision/hanzi-tidy/internal/log"
	"github.com/doriginvision/hanzi-tidy/internal/source"
	"github.com/doriginvision/hanzi-tidy/internal/tui/planner"
	"github.com/doriginvision/hanzi-tidy/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// rootOptions holds the flags of the root command.
type rootOptions struct {
	instant bool
	preview bool
}

// runProgram starts the interactive planner. Tests replace it.
var runProgram = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "hanzi-tidy [dir]",
		Short: "Prefix images with the Chinese characters of their folder name",
		Long: `hanzi-tidy walks a directory tree and finds JPEG and PNG images whose parent
folder name contains Chinese characters but whose own name does not. Each one is
renamed to "<characters>_<name>" inside the same folder, so that 北京/IMG_001.jpg
becomes 北京/北京_IMG_001.jpg.

Without a directory argument the configured default root (or your home directory)
is used. Renames cannot be undone; every batch is recorded in the operation log.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args, opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.instant, "instant", "i", false, "Apply renames immediately without interactive preview")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "Print the planned renames and exit without renaming")
	cmd.MarkFlagsMutuallyExclusive("instant", "preview")
	cmd.AddCommand(newHistoryCmd())
	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string, opts *rootOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log.Initialize(cfg.EnableLogging, cfg.LogRetentionDays)

	root, err := resolveRoot(args, cfg)
	if err != nil {
		return err
	}

	session := core.NewSession(root,
		core.WithSessionMaxDepth(cfg.MaxDepth),
		core.WithCommandArgs(os.Args[1:]),
		core.WithStderr(cmd.ErrOrStderr()),
	)

	switch {
	case opts.preview:
		return runPreview(cmd, session)
	case opts.instant:
		return runInstant(cmd, session)
	}
	return runProgram(planner.New(session, theme.Default()))
}

// resolveRoot picks the directory to scan. An explicit argument must be a
// directory; otherwise the configured default is tried before the home
// directory.
func resolveRoot(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return source.Static(args[0]).Directory()
	}
	configured, err := cfg.RootDir()
	if err != nil {
		return "", err
	}
	return source.First(source.Static(configured), source.Home()).Directory()
}
