// Package config defines the application configuration and its loading from
// a YAML file via viper.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"github.com/wessmexura1/subscription-calculator/pkg/constants"
	"github.com/wessmexura1/subscription-calculator/pkg/exchange"
	"github.com/wessmexura1/subscription-calculator/pkg/validation"
)

// Configuration holds all configuration for subscription-calculator.
type Configuration struct {
	Storage StorageConfig      `mapstructure:"storage"`
	Display DisplayConfig      `mapstructure:"display"`
	Rates   map[string]float64 `mapstructure:"rates"`
	Logging LoggingConfig      `mapstructure:"logging"`
	Output  OutputConfig       `mapstructure:"output"`
	Server  ServerConfig       `mapstructure:"server"`
}

// StorageConfig locates the subscription data file.
type StorageConfig struct {
	DataFile string `mapstructure:"dataFile"`
}

// DisplayConfig selects the currency used when rendering amounts. Internal
// computation always stays in the base currency.
type DisplayConfig struct {
	Currency string `mapstructure:"currency"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level"`      // debug, info, warn, error
	Format     string `mapstructure:"format"`     // json, console
	OutputFile string `mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format"` // pretty, csv, xlsx
}

// ServerConfig holds the HTTP API options.
type ServerConfig struct {
	Address        string `mapstructure:"address"`
	MaxUploadBytes int64  `mapstructure:"maxUploadBytes"`
	ExposeMetrics  bool   `mapstructure:"exposeMetrics"`
}

// Default returns the configuration used when no config file exists.
func Default() *Configuration {
	conf := &Configuration{}
	conf.applyDefaults()
	return conf
}

func (conf *Configuration) applyDefaults() {
	if conf.Storage.DataFile == "" {
		conf.Storage.DataFile = constants.DefaultDataFile
	}
	if conf.Display.Currency == "" {
		conf.Display.Currency = constants.BaseCurrency
	}
	if conf.Output.Format == "" {
		conf.Output.Format = constants.OutputFormatPretty
	}
	if conf.Server.Address == "" {
		conf.Server.Address = constants.DefaultServerAddress
	}
	if conf.Server.MaxUploadBytes <= 0 {
		conf.Server.MaxUploadBytes = constants.DefaultMaxUploadSizeBytes
	}
}

// LoadConfiguration reads the YAML configuration at configPath. A missing
// file yields the defaults rather than an error so the tool works without
// any setup.
func LoadConfiguration(configPath string) (*Configuration, error) {
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.SetEnvPrefix("SUBTRACK")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var conf Configuration
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	conf.applyDefaults()

	return &conf, nil
}

// Validate checks the settings that have constrained values.
func (conf *Configuration) Validate() error {
	if err := validation.ValidateOutputFormat(conf.Output.Format); err != nil {
		return err
	}
	if err := validation.ValidateCurrency(conf.Display.Currency); err != nil {
		return err
	}
	for code, rate := range conf.Rates {
		if rate <= 0 {
			return fmt.Errorf("rate for %s must be positive, got %v", code, rate)
		}
	}
	return nil
}

// RateTable returns the configured exchange-rate overrides merged over the
// defaults, so a partial override leaves the remaining currencies intact.
func (conf *Configuration) RateTable() exchange.RateTable {
	rates := exchange.DefaultRates()
	for code, rate := range conf.Rates {
		rates[code] = rate
	}
	return rates
}
