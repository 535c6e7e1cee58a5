package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter twgen.config.yaml",
		Long: `Create twgen.config.yaml in the project root with content globs, a
safelist and a toast progress animation. With --with-settings a default
.twgen.yaml tool settings file is written as well.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")
			withSettings, _ := cmd.Flags().GetBool("with-settings")
			root := k.String("root")

			files := []struct{ name, content string }{{"twgen.config.yaml", defaultConfig}}
			if withSettings {
				files = append(files, struct{ name, content string }{defaultSettingsFile, defaultSettings})
			}

			for _, f := range files {
				path := filepath.Join(root, f.name)
				if _, err := os.Stat(path); err == nil && !force {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
				if err := os.WriteFile(path, []byte(f.content), 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite existing files")
	cmd.Flags().Bool("with-settings", false, "Also write "+defaultSettingsFile)
	return cmd
}

const defaultConfig = `# twgen project configuration
content:
  - ./app/templates/**/*.html

# Classes emitted even when no template uses them
safelist:
  - text-white
  - text-red-600
  - text-red-500
  - bg-red-600
  - bg-red-500
  - "text-[10px]"
  - font-bold
  - rounded-full

theme:
  extend:
    animation:
      toast-progress: shrinkProgress 10s linear forwards
    keyframes:
      shrinkProgress:
        "0%":
          width: "100%"
        "100%":
          width: "0%"

plugins: []
`

const defaultSettings = `# twgen tool settings
output: dist/app.css
# input: src/app.css
minify: false
verbose: false

watch:
  debounce: 100ms

lint:
  strict: false
  max-same-issues: 0   # 0 = unlimited
  print-lines: true
  print-linter-name: true
`
