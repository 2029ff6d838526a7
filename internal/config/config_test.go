package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wessmexura1/subscription-calculator/pkg/constants"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigurationMissingFileUsesDefaults(t *testing.T) {
	conf, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Storage.DataFile != constants.DefaultDataFile {
		t.Errorf("DataFile = %s, expected %s", conf.Storage.DataFile, constants.DefaultDataFile)
	}
	if conf.Display.Currency != constants.BaseCurrency {
		t.Errorf("Currency = %s, expected %s", conf.Display.Currency, constants.BaseCurrency)
	}
	if conf.Output.Format != constants.OutputFormatPretty {
		t.Errorf("Format = %s, expected %s", conf.Output.Format, constants.OutputFormatPretty)
	}
	if conf.Server.Address != constants.DefaultServerAddress {
		t.Errorf("Address = %s, expected %s", conf.Server.Address, constants.DefaultServerAddress)
	}
	if err := conf.Validate(); err != nil {
		t.Errorf("default configuration does not validate: %v", err)
	}
}

func TestLoadConfigurationParsesFile(t *testing.T) {
	path := writeConfig(t, `
storage:
  dataFile: /tmp/subs.json
display:
  currency: USD
rates:
  USD: 100
logging:
  level: debug
  format: console
output:
  format: csv
server:
  address: ":9090"
  maxUploadBytes: 1024
  exposeMetrics: true
`)

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Storage.DataFile != "/tmp/subs.json" {
		t.Errorf("DataFile = %s", conf.Storage.DataFile)
	}
	if conf.Display.Currency != "USD" {
		t.Errorf("Currency = %s, expected USD", conf.Display.Currency)
	}
	if conf.Logging.Level != "debug" || conf.Logging.Format != "console" {
		t.Errorf("Logging = %+v", conf.Logging)
	}
	if conf.Output.Format != "csv" {
		t.Errorf("Format = %s, expected csv", conf.Output.Format)
	}
	if conf.Server.Address != ":9090" || conf.Server.MaxUploadBytes != 1024 || !conf.Server.ExposeMetrics {
		t.Errorf("Server = %+v", conf.Server)
	}
	if err := conf.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestRateTableMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
rates:
  USD: 100
`)
	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	rates := conf.RateTable()
	if rates["USD"] != 100 {
		t.Errorf("USD override = %v, expected 100", rates["USD"])
	}
	if rates["EUR"] != 105 {
		t.Errorf("EUR default = %v, expected 105", rates["EUR"])
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "Bad output format",
			content: `
output:
  format: table
`,
		},
		{
			name: "Bad display currency",
			content: `
display:
  currency: XBT
`,
		},
		{
			name: "Non-positive rate",
			content: `
rates:
  USD: 0
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, err := LoadConfiguration(writeConfig(t, tt.content))
			if err != nil {
				t.Fatalf("LoadConfiguration() error = %v", err)
			}
			if err := conf.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
