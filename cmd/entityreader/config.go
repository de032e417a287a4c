package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	configFileName = "entityreader"
	configFileType = "yaml"
	envPrefix      = "ENTITYREADER"

	cfgKeySchema   = "schema"
	cfgKeyFormat   = "format"
	cfgKeyNoColor  = "no_color"
	cfgKeyVerbose  = "verbose"
	cfgKeyLastWins = "last_wins"
	cfgKeyWorkers  = "workers"

	defaultSchema = "schema.yaml"
	defaultFormat = "table"
)

// loadConfig reads entityreader.yaml from the working directory, or the
// file given by --config, and overlays ENTITYREADER_* environment
// variables. A missing default config file is not an error.
func loadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeySchema, defaultSchema)
	v.SetDefault(cfgKeyFormat, defaultFormat)
	v.SetDefault(cfgKeyWorkers, 4)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}
