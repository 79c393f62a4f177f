package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	outputText = "text"
	outputYAML = "yaml"
)

type config struct {
	Workers  int    `mapstructure:"workers"`
	Parallel bool   `mapstructure:"parallel"`
	Output   string `mapstructure:"output"`
}

// loadConfig merges, by increasing precedence, the config file, the
// ALMANAC_* environment and the command line flags.
func loadConfig(v *viper.Viper, cmd *cobra.Command) (config, error) {
	var cfg config

	v.SetEnvPrefix("almanac")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, name := range []string{"workers", "parallel", "output"} {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return cfg, err
		}
	}

	if file, _ := cmd.Flags().GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	switch cfg.Output {
	case outputText, outputYAML:
	default:
		return cfg, fmt.Errorf("unknown output format %q", cfg.Output)
	}
	return cfg, nil
}
