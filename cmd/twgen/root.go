package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "twgen",
		Short: "Utility-first CSS generator",
		Long: `Scan template files for utility classes and generate a stylesheet that
contains only the utilities in use, plus the safelist and the keyframes
their animations reference.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(cmd)
		},
		// Default behavior: build when no subcommand is given
		RunE:          runBuild,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flags (inherited by all subcommands)
	f := root.PersistentFlags()
	f.StringSlice("config", nil, "Configuration file, repeatable; later files layer over earlier ones (default: discover in --root)")
	f.String("root", ".", "Project root that content globs are relative to")
	f.StringP("input", "i", "", "Input stylesheet with @tailwind directives")
	f.StringP("output", "o", "", "Output stylesheet (default: stdout)")
	f.Bool("minify", false, "Write compact CSS")
	f.String("format", "text", "Report format: text|json (lint also accepts issues|summary|full)")
	f.BoolP("verbose", "v", false, "Enable verbose logging")
	f.Bool("quiet", false, "Suppress all output (exit code only)")
	f.Bool("color", false, "Force color output")
	f.String("settings", defaultSettingsFile, "Tool settings file")

	root.AddCommand(
		newBuildCmd(),
		newWatchCmd(),
		newLintCmd(),
		newCheckCmd(),
		newResolveCmd(),
		newInitCmd(),
		newVersionCmd(),
		newCompletionCmd(root),
	)
	return root
}
