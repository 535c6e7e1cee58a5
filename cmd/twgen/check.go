package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/twgen"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration without building",
		Long: `Load the configuration, merge the theme, validate the safelist,
animations and keyframes, and expand the content globs. Every problem is
reported at once.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := twgen.Check(buildConfig())
			if err != nil {
				return err
			}
			if k.Bool("quiet") {
				return nil
			}

			useColors := twgen.ShouldUseColors(k.Bool("color"), os.Stdout)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s: %d content files, %d safelisted classes, %d animations\n",
				twgen.RenderStyle(twgen.StyleGreen, "✓", useColors),
				result.Descriptor.Source(),
				len(result.Files),
				len(result.Descriptor.Safelist),
				len(result.Theme.Animation),
			)
			for _, warning := range result.Warnings {
				fmt.Fprintf(out, "  %s %s\n", twgen.RenderStyle(twgen.StyleYellow, "warning:", useColors), warning)
			}
			return nil
		},
	}
}
