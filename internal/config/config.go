package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/freight-recon/internal/cost"
)

// Config holds the full application configuration.
type Config struct {
	Paths   PathsConfig  `yaml:"paths" mapstructure:"paths"`
	Sources SourceFiles  `yaml:"sources" mapstructure:"sources"`
	Tables  TableFiles   `yaml:"tables" mapstructure:"tables"`
	Rates   cost.Rates   `yaml:"rates" mapstructure:"rates"`
	Tariff  TariffConfig `yaml:"tariff" mapstructure:"tariff"`
	Log     LogConfig    `yaml:"log" mapstructure:"log"`
}

// PathsConfig locates the input, table and output directories.
type PathsConfig struct {
	SampleDir string `yaml:"sample_dir" mapstructure:"sample_dir"`
	DataDir   string `yaml:"data_dir" mapstructure:"data_dir"`
	Output    string `yaml:"output" mapstructure:"output"`
}

// SourceFiles names the spreadsheet exports inside the sample directory.
type SourceFiles struct {
	Operation  string `yaml:"operation" mapstructure:"operation"`
	Carrier    string `yaml:"carrier" mapstructure:"carrier"`
	CBM        string `yaml:"cbm" mapstructure:"cbm"`
	Tariff     string `yaml:"tariff" mapstructure:"tariff"`
	AddressRaw string `yaml:"address_raw" mapstructure:"address_raw"`
}

// TableFiles names the converted lookup tables inside the data directory.
type TableFiles struct {
	Materials     string `yaml:"materials" mapstructure:"materials"`
	Tariffs       string `yaml:"tariffs" mapstructure:"tariffs"`
	Remaps        string `yaml:"remaps" mapstructure:"remaps"`
	Distances     string `yaml:"distances" mapstructure:"distances"`
	Fees          string `yaml:"fees" mapstructure:"fees"`
	CarrierStatus string `yaml:"carrier_status" mapstructure:"carrier_status"`
}

// TariffConfig describes the tariff appendix layout.
type TariffConfig struct {
	TruckTypes   []string `yaml:"truck_types" mapstructure:"truck_types"`
	CBMTiers     []string `yaml:"cbm_tiers" mapstructure:"cbm_tiers"`
	HeaderOffset int      `yaml:"header_offset" mapstructure:"header_offset"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// SourcePath joins a source file name onto the sample directory.
func (c *Config) SourcePath(name string) string {
	return filepath.Join(c.Paths.SampleDir, name)
}

// TablePath joins a table file name onto the data directory.
func (c *Config) TablePath(name string) string {
	return filepath.Join(c.Paths.DataDir, name)
}

// Load reads configuration from file and environment. Variables in an
// optional .env file never override the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, eris.Wrap(err, "config: read .env")
	}

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FREIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	rates := cost.DefaultRates()
	v.SetDefault("paths.sample_dir", "sample")
	v.SetDefault("paths.data_dir", "data")
	v.SetDefault("paths.output", "output/result.xlsx")
	v.SetDefault("sources.operation", "Operation-sample.xlsx")
	v.SetDefault("sources.carrier", "tms.xlsx")
	v.SetDefault("sources.cbm", "CBM.xlsx")
	v.SetDefault("sources.tariff", "appendix-price.xlsx")
	v.SetDefault("sources.address_raw", "address_raw.txt")
	v.SetDefault("tables.materials", "cbm.json")
	v.SetDefault("tables.tariffs", "appendix-price.json")
	v.SetDefault("tables.remaps", "address-mock.json")
	v.SetDefault("tables.distances", "address-distance.json")
	v.SetDefault("tables.fees", "manual-fees.yaml")
	v.SetDefault("tables.carrier_status", "carrier-status.json")
	v.SetDefault("rates.loading_per_cbm", rates.LoadingPerCBM)
	v.SetDefault("rates.adding_point", rates.AddingPoint)
	v.SetDefault("tariff.truck_types", []string{"2.5T", "3.5T", "5T", "7T", "8T", "11T", "15T"})
	v.SetDefault("tariff.cbm_tiers", []string{"2cbm", "4cbm", "6bm"})
	v.SetDefault("tariff.header_offset", 2)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the values a run depends on.
func (c *Config) Validate() error {
	var errs []string

	if c.Paths.Output == "" {
		errs = append(errs, "paths.output is required")
	}
	if c.Sources.Operation == "" {
		errs = append(errs, "sources.operation is required")
	}
	if c.Tables.Materials == "" || c.Tables.Tariffs == "" {
		errs = append(errs, "tables.materials and tables.tariffs are required")
	}
	if c.Rates.LoadingPerCBM < 0 || c.Rates.AddingPoint < 0 {
		errs = append(errs, "rates must be >= 0")
	}
	if c.Tariff.HeaderOffset < 1 {
		errs = append(errs, fmt.Sprintf("tariff.header_offset must be >= 1, got %d", c.Tariff.HeaderOffset))
	}
	if len(c.Tariff.TruckTypes) == 0 {
		errs = append(errs, "tariff.truck_types must not be empty")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
