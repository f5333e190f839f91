package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const configHeader = `# zigtags configuration. Every key can also be set with a ZIGTAGS_*
# environment variable (log.level -> ZIGTAGS_LOG_LEVEL) or a flag.
`

func newInitCmd() *cobra.Command {
	var dryRun, force bool

	cmd := &cobra.Command{
		Use:   "init [path-to-" + configFileName + "]",
		Short: "Write a " + configFileName + " with the default settings",
		Long: `Write a config file holding every zigtags setting at its default value.
The path defaults to ./` + configFileName + `, where zigtags looks for it. An
existing file is only replaced with --force.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configFileName
			if len(args) > 0 {
				path = args[0]
			}
			return runInit(path, dryRun, force, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print what would be written without creating the file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")
	return cmd
}

func runInit(path string, dryRun, force bool, stdout, stderr io.Writer) error {
	content, err := generateConfig()
	if err != nil {
		return err
	}

	if dryRun {
		_, _ = fmt.Fprint(stdout, content)
		return nil
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("checking %s: %w", path, err)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	_, _ = fmt.Fprintf(stderr, "wrote zigtags config to %s\n", path)
	return nil
}

// generateConfig renders the default settings as commented YAML.
func generateConfig() (string, error) {
	data, err := yaml.Marshal(defaultConfig())
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	return configHeader + string(data), nil
}
