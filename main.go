// zigtags generates an extended-ctags tag index for a single Zig (or C)
// source file.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/viant/afs"

	"github.com/phobologic/zigtags/internal/ctags"
	"github.com/phobologic/zigtags/internal/lang"
	"github.com/phobologic/zigtags/internal/model"
)

var version = "dev"

const programName = "zigtags"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	return cmd.Execute()
}

const rootLongDescription = `zigtags writes one tag line per declaration of a source file in the
extended ctags format:

  name<TAB>path<TAB>/^line$/;"<TAB>kind[<TAB>container:Outer.Inner]

Kinds: f function, v variable, s struct, u union, e enum, r error set,
m member. Members of named containers carry the container keyword and the
dotted path of container names as their scope.

Settings are read from flags, ZIGTAGS_* environment variables and an
optional zigtags.yaml in the working directory (see "zigtags init").`

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := newViper()
	var configPath string

	cmd := &cobra.Command{
		Use:           programName + " [flags] <file>",
		Short:         "Generate a ctags index for a Zig source file",
		Long:          rootLongDescription,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Usage()
			}
			if err := readConfigFile(v, configPath); err != nil {
				return err
			}
			return generate(cmd.Context(), loadConfig(v), args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate(programName + " {{.Version}}\n")

	cobra.CheckErr(configureRootFlags(cmd, v, &configPath))
	cmd.AddCommand(newInitCmd())
	return cmd
}

func configureRootFlags(cmd *cobra.Command, v *viper.Viper, configPath *string) error {
	flags := cmd.Flags()
	flags.StringP(outputKey, "o", "", "write tags to this file instead of stdout")
	flags.StringP(formatKey, "f", "", "output format: "+strings.Join(ctags.Formats, ", "))
	flags.String(kindsKey, "", "only write these kinds (letters from "+model.Kinds+")")
	flags.Bool(headerKey, false, "write !_TAG_ pseudo-tags before the tags")
	flags.StringP(languageKey, "l", "", "force the source language: "+strings.Join(lang.Names(), ", "))
	flags.StringVar(configPath, "config", "", "config file (default ./"+configFileName+")")
	flags.BoolP("verbose", "v", false, "log debug output")
	flags.String("log-file", "", "write logs to this rotating file instead of stderr")

	bindings := map[string]string{
		outputKey:   outputKey,
		formatKey:   formatKey,
		kindsKey:    kindsKey,
		headerKey:   headerKey,
		languageKey: languageKey,
		"verbose":   logVerboseKey,
		"log-file":  logFileKey,
	}
	for name, key := range bindings {
		if err := bindFlag(v, flags.Lookup(name), key); err != nil {
			return err
		}
	}
	return nil
}

// generate reads path, parses it and writes its tags.
func generate(ctx context.Context, cfg fileConfig, path string, stdout, stderr io.Writer) (err error) {
	logger, closeLog := newLogger(stderr, cfg.Log)
	defer func() { _ = closeLog() }()
	ctx = logger.WithContext(ctx)

	if cfg.Format != "" && !slices.Contains(ctags.Formats, cfg.Format) {
		return fmt.Errorf("unsupported format %q (valid formats: %s)", cfg.Format, strings.Join(ctags.Formats, ", "))
	}
	kinds, err := model.ParseKinds(cfg.Kinds)
	if err != nil {
		return err
	}
	l, err := selectLanguage(cfg.Language, path)
	if err != nil {
		return err
	}
	logger.Debug().Str("file", path).Str("language", l.Name).Msg("generating tags")

	source, err := afs.New().DownloadWithURL(ctx, path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	tree, err := l.Parse(ctx, source)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	out := stdout
	if cfg.Output != "" && cfg.Output != "-" {
		f, cerr := os.Create(cfg.Output)
		if cerr != nil {
			return fmt.Errorf("creating %s: %w", cfg.Output, cerr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = &ctags.WriteError{Name: cfg.Output, Err: cerr}
			}
		}()
		out = f
	}

	w, err := ctags.NewWriter(cfg.Format, out)
	if err != nil {
		return err
	}
	if cfg.Header {
		if err := w.WriteHeader(programName, version); err != nil {
			return &ctags.WriteError{Name: "!_TAG_FILE_FORMAT", Err: err}
		}
	}
	return ctags.Generate(tree, path, w,
		ctags.WithKinds(kinds),
		ctags.WithLogger(logger),
	)
}

func selectLanguage(name, path string) (*lang.Language, error) {
	if name == "" {
		return lang.ForPath(path), nil
	}
	l, ok := lang.Languages[name]
	if !ok {
		return nil, fmt.Errorf("unsupported language %q (valid languages: %s)", name, strings.Join(lang.Names(), ", "))
	}
	return l, nil
}
