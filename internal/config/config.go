package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/fintrack/internal/export"
	"github.com/cleared-dev/fintrack/internal/importer"
	"github.com/cleared-dev/fintrack/internal/render"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "fintrack.yaml"

// Config represents the top-level fintrack.yaml configuration.
type Config struct {
	Import  ImportConfig  `yaml:"import"`
	Display DisplayConfig `yaml:"display"`
	Export  ExportConfig  `yaml:"export"`
	Log     LogConfig     `yaml:"log"`
}

// ImportConfig names the worksheet columns read during import.
type ImportConfig struct {
	DateColumn       string `yaml:"date_column"`
	NarrationColumn  string `yaml:"narration_column"`
	WithdrawalColumn string `yaml:"withdrawal_column"`
	DepositColumn    string `yaml:"deposit_column"`
}

// DisplayConfig controls the transaction table.
type DisplayConfig struct {
	CurrencySymbol string `yaml:"currency_symbol"`
}

// ExportConfig sets the file names exports are saved under.
type ExportConfig struct {
	CSVFile  string `yaml:"csv_file"`
	JSONFile string `yaml:"json_file"`
}

// LogConfig sets the zerolog level name (debug, info, warn, error).
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a fintrack.yaml file from disk. Keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config matching a typical bank statement export.
func Default() *Config {
	cols := importer.DefaultColumns()
	return &Config{
		Import: ImportConfig{
			DateColumn:       cols.Date,
			NarrationColumn:  cols.Narration,
			WithdrawalColumn: cols.Withdrawal,
			DepositColumn:    cols.Deposit,
		},
		Display: DisplayConfig{
			CurrencySymbol: render.DefaultSymbol,
		},
		Export: ExportConfig{
			CSVFile:  export.DefaultCSVName,
			JSONFile: export.DefaultJSONName,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Columns converts the import section to importer column names.
func (c *Config) Columns() importer.Columns {
	return importer.Columns{
		Date:       c.Import.DateColumn,
		Narration:  c.Import.NarrationColumn,
		Withdrawal: c.Import.WithdrawalColumn,
		Deposit:    c.Import.DepositColumn,
	}
}
