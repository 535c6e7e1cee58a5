package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/twgen"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the stylesheet whenever project files change",
		Long: `Build once, then watch the project root and rebuild after content,
configuration or input stylesheet changes. A failed rebuild is reported and
the previous output is kept. Stops on Ctrl-C.`,
		RunE: runWatch,
	}
	cmd.Flags().Duration("debounce", twgen.DefaultDebounce, "Quiet period after the last change before rebuilding")
	return cmd
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg := buildConfig()
	if cfg.Output == "" || cfg.Output == "-" {
		return errors.New("watch needs an output file (--output)")
	}

	wait, err := debounce()
	if err != nil {
		return err
	}

	quiet := k.Bool("quiet")
	useColors := twgen.ShouldUseColors(k.Bool("color"), os.Stderr)
	stderr := cmd.ErrOrStderr()

	return twgen.Watch(cmd.Context(), cfg, twgen.WatchOptions{
		Debounce: wait,
		OnBuild: func(result *twgen.BuildResult, err error) {
			if err != nil {
				twgen.PrintError(stderr, err, useColors)
				return
			}
			if !quiet {
				printBuildLine(stderr, result, useColors)
			}
		},
	})
}
