package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Input   InputConfig   `yaml:"input" mapstructure:"input"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Leads   LeadsConfig   `yaml:"leads" mapstructure:"leads"`
	Dealers DealersConfig `yaml:"dealers" mapstructure:"dealers"`
	Fill    FillConfig    `yaml:"fill" mapstructure:"fill"`
	Report  ReportConfig  `yaml:"report" mapstructure:"report"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// InputConfig locates the two source tables. The sheet names apply to
// .xlsx inputs only; empty selects the first sheet.
type InputConfig struct {
	LeadsPath    string `yaml:"leads_path" mapstructure:"leads_path"`
	LeadsSheet   string `yaml:"leads_sheet" mapstructure:"leads_sheet"`
	DealersPath  string `yaml:"dealers_path" mapstructure:"dealers_path"`
	DealersSheet string `yaml:"dealers_sheet" mapstructure:"dealers_sheet"`
}

// OutputConfig locates the cleaned export.
type OutputConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LeadsConfig names the lead export columns.
type LeadsConfig struct {
	TimestampColumn string `yaml:"timestamp_column" mapstructure:"timestamp_column"`
	EmailColumn     string `yaml:"email_column" mapstructure:"email_column"`
	ZipColumn       string `yaml:"zip_column" mapstructure:"zip_column"`
	RouteColumn     string `yaml:"route_column" mapstructure:"route_column"`
	FirstNameColumn string `yaml:"first_name_column" mapstructure:"first_name_column"`
	LastNameColumn  string `yaml:"last_name_column" mapstructure:"last_name_column"`
}

// DealersConfig names the dealer territory columns.
type DealersConfig struct {
	ZipColumn    string `yaml:"zip_column" mapstructure:"zip_column"`
	DealerColumn string `yaml:"dealer_column" mapstructure:"dealer_column"`
}

// FillConfig selects which leads get dealers and where they are written.
type FillConfig struct {
	Route        string `yaml:"route" mapstructure:"route"`
	DealerColumn string `yaml:"dealer_column" mapstructure:"dealer_column"`
}

// ReportConfig controls console output.
type ReportConfig struct {
	MaxUpdates    int      `yaml:"max_updates" mapstructure:"max_updates"`
	MaxUnresolved int      `yaml:"max_unresolved" mapstructure:"max_unresolved"`
	Charset       string   `yaml:"charset" mapstructure:"charset"`
	SummaryRoutes []string `yaml:"summary_routes" mapstructure:"summary_routes"`
}

// StoreConfig configures the run ledger. An empty driver disables it.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADFILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("input.leads_path", "Struxure Website Leads - Sheet1.csv")
	v.SetDefault("input.leads_sheet", "")
	v.SetDefault("input.dealers_path", "Deepwater Zips V2 - V20.csv")
	v.SetDefault("input.dealers_sheet", "")
	v.SetDefault("output.path", "Struxure_Leads_Cleaned_Fixed.csv")
	v.SetDefault("leads.timestamp_column", "Timestamp")
	v.SetDefault("leads.email_column", "Email")
	v.SetDefault("leads.zip_column", "Zip")
	v.SetDefault("leads.route_column", "Route To")
	v.SetDefault("leads.first_name_column", "First Name")
	v.SetDefault("leads.last_name_column", "Last Name")
	v.SetDefault("dealers.zip_column", "zip")
	v.SetDefault("dealers.dealer_column", "Assigned Dealer Account")
	v.SetDefault("fill.route", "Deep Water")
	v.SetDefault("fill.dealer_column", "Deepwater Dealer")
	v.SetDefault("report.max_updates", 10)
	v.SetDefault("report.max_unresolved", 20)
	v.SetDefault("report.charset", "utf-8")
	v.SetDefault("report.summary_routes", []string{"Struxure", "Deep Water"})
	v.SetDefault("store.driver", "")
	v.SetDefault("store.database_url", "leadfill.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

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
