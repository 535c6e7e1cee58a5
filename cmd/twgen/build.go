package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yacobolo/twgen"
)

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "build",
		Aliases: []string{"generate", "gen"},
		Short:   "Generate the stylesheet once",
		Long: `Scan the content files named by the configuration, resolve every class
candidate against the theme and write the stylesheet. Nothing is written
when the configuration has errors.`,
		RunE: runBuild,
	}
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg := buildConfig()

	result, err := twgen.Build(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	toStdout := cfg.Output == "" || cfg.Output == "-"
	if toStdout {
		if _, err := cmd.OutOrStdout().Write(result.CSS); err != nil {
			return fmt.Errorf("writing stylesheet: %w", err)
		}
	}

	if k.Bool("quiet") {
		return nil
	}

	// Reports go to stderr when the stylesheet itself is on stdout
	report := cmd.OutOrStdout()
	if toStdout {
		report = cmd.ErrOrStderr()
	}

	if k.String("format") == "json" {
		return twgen.WriteBuildJSON(report, result)
	}

	useColors := twgen.ShouldUseColors(k.Bool("color"), os.Stderr)
	if k.Bool("verbose") {
		twgen.WriteBuildSummary(report, result, useColors)
		return nil
	}
	printBuildLine(report, result, useColors)
	return nil
}

// printBuildLine prints the one-line build report.
func printBuildLine(w io.Writer, result *twgen.BuildResult, useColors bool) {
	target := result.Output
	if target == "" {
		target = "stdout"
	}
	fmt.Fprintf(w, "%s %s: %d utilities, %d keyframes, %d bytes in %s\n",
		twgen.RenderStyle(twgen.StyleGreen, "✓", useColors),
		target,
		len(result.Retained),
		len(result.Keyframes),
		len(result.CSS),
		result.Duration.Round(time.Millisecond),
	)
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "  %s %s\n", twgen.RenderStyle(twgen.StyleYellow, "warning:", useColors), warning)
	}
}
