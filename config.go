package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configBaseName = "zigtags"
	configFileName = configBaseName + ".yaml"
	configFolder   = "."
	envPrefix      = "ZIGTAGS"

	formatKey   = "format"
	kindsKey    = "kinds"
	headerKey   = "header"
	languageKey = "language"
	outputKey   = "output"

	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logFileKey       = "log.file"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"
)

// fileConfig mirrors the keys of zigtags.yaml. defaultConfig seeds both
// viper and the `init` skeleton.
type fileConfig struct {
	Format   string    `yaml:"format"`
	Kinds    string    `yaml:"kinds"`
	Header   bool      `yaml:"header"`
	Language string    `yaml:"language"`
	Output   string    `yaml:"output"`
	Log      logConfig `yaml:"log"`
}

type logConfig struct {
	Level      string `yaml:"level"`
	Verbose    bool   `yaml:"verbose"`
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

func defaultConfig() fileConfig {
	return fileConfig{
		Format: "ctags",
		Log: logConfig{
			Level:      "warn",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		},
	}
}

// newViper returns a config registry with defaults and ZIGTAGS_* environment
// overrides. Flags are bound later by bindFlag.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	d := defaultConfig()
	v.SetDefault(formatKey, d.Format)
	v.SetDefault(kindsKey, d.Kinds)
	v.SetDefault(headerKey, d.Header)
	v.SetDefault(languageKey, d.Language)
	v.SetDefault(outputKey, d.Output)
	v.SetDefault(logLevelKey, d.Log.Level)
	v.SetDefault(logVerboseKey, d.Log.Verbose)
	v.SetDefault(logFileKey, d.Log.File)
	v.SetDefault(logMaxSizeKey, d.Log.MaxSize)
	v.SetDefault(logMaxBackupsKey, d.Log.MaxBackups)
	v.SetDefault(logMaxAgeKey, d.Log.MaxAge)
	v.SetDefault(logCompressKey, d.Log.Compress)
	return v
}

// readConfigFile loads path, or zigtags.yaml from the working directory when
// path is empty. Only an explicitly named file is required to exist.
func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName(configBaseName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configFolder)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", configFileName, err)
	}
	return nil
}

// bindFlag wires a flag to a viper key so config/env values feed the flag.
func bindFlag(v *viper.Viper, flag *pflag.Flag, key string) error {
	if flag == nil {
		return fmt.Errorf("flag for config key %q not found", key)
	}
	return v.BindPFlag(key, flag)
}

func loadConfig(v *viper.Viper) fileConfig {
	return fileConfig{
		Format:   v.GetString(formatKey),
		Kinds:    v.GetString(kindsKey),
		Header:   v.GetBool(headerKey),
		Language: v.GetString(languageKey),
		Output:   v.GetString(outputKey),
		Log: logConfig{
			Level:      v.GetString(logLevelKey),
			Verbose:    v.GetBool(logVerboseKey),
			File:       v.GetString(logFileKey),
			MaxSize:    v.GetInt(logMaxSizeKey),
			MaxBackups: v.GetInt(logMaxBackupsKey),
			MaxAge:     v.GetInt(logMaxAgeKey),
			Compress:   v.GetBool(logCompressKey),
		},
	}
}

// newLogger builds the run's logger. Without a log file it writes
// human-readable lines to stderr; with one it writes JSON lines to a
// rotating file. The returned func closes the file.
func newLogger(stderr io.Writer, c logConfig) (zerolog.Logger, func() error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(c.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.WarnLevel
	}
	if c.Verbose {
		level = zerolog.DebugLevel
	}

	if c.File == "" {
		w := zerolog.ConsoleWriter{Out: stderr, NoColor: true, TimeFormat: time.TimeOnly}
		return zerolog.New(w).Level(level).With().Timestamp().Logger(), func() error { return nil }
	}

	lj := &lumberjack.Logger{
		Filename:   c.File,
		MaxSize:    c.MaxSize,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAge,
		Compress:   c.Compress,
	}
	return zerolog.New(lj).Level(level).With().Timestamp().Logger(), lj.Close
}
