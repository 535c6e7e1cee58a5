package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yacobolo/twgen"
)

func newLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Report malformed and unknown classes in templates",
		Long: `Check class attributes in content files. Tokens that are not valid class
names are errors; tokens that match no utility, safelist entry or class in
the input stylesheet are warnings. Only errors fail unless --strict is set.`,
		RunE: runLint,
	}

	f := cmd.Flags()
	f.Bool("strict", false, "Exit 1 on any issue (CI mode)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (twlint) suffix on issues")
	return cmd
}

func runLint(cmd *cobra.Command, _ []string) error {
	lintConfig := buildLintConfig()

	result, err := twgen.Lint(cmd.Context(), lintConfig)
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}

	quiet := k.Bool("quiet")
	format := twgen.DetermineOutputFormat(k.String("format"), quiet)

	if !quiet {
		if err := twgen.WriteOutput(cmd.OutOrStdout(), result, format, lintConfig); err != nil {
			return err
		}
	}

	// Soft gate: only errors fail unless strict
	if lintConfig.Strict && len(result.Issues)+result.TruncatedCount > 0 {
		return exitError{code: 1}
	}
	if result.ErrorCount > 0 {
		return exitError{code: 1}
	}
	return nil
}
