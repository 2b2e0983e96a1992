package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/username/hourly-report/internal/calendar"
	"github.com/username/hourly-report/internal/report"
	"go.uber.org/zap"
)

// Config represents the report configuration file
type Config struct {
	Year         int            `mapstructure:"year"`
	Month        int            `mapstructure:"month"`
	WorkingHours []int          `mapstructure:"working hours"`
	Worker       WorkerConfig   `mapstructure:"worker"`
	Company      CompanyConfig  `mapstructure:"company"`
	DatesOff     DatesOffConfig `mapstructure:"dates off"`

	HolidaysFile string `mapstructure:"holidays_file"` // Optional YYYY-MM-DD holiday list merged into dates off
	LogFile      string `mapstructure:"log_file"`
	LogLevel     string `mapstructure:"log_level"`
}

// WorkerConfig represents the worker section
type WorkerConfig struct {
	Name string   `mapstructure:"name"`
	DNI  string   `mapstructure:"dni"`
	SSN  []string `mapstructure:"ss_n"`
}

// CompanyConfig represents the company section
type CompanyConfig struct {
	Name      string   `mapstructure:"name"`
	Workplace string   `mapstructure:"workplace"`
	CIF       string   `mapstructure:"cif"`
	CCC       []string `mapstructure:"ccc"`
}

// DatesOffConfig represents the dates off section. Both lists are optional.
type DatesOffConfig struct {
	Weekdays []int `mapstructure:"weekdays"`
	Holidays []int `mapstructure:"holidays"`
}

// EnvPrefix namespaces the environment variables that override config keys
const EnvPrefix = "HOURLY_REPORT"

var requiredKeys = []string{"year", "month", "working hours", "worker", "company"}

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("example")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.hourly-report")
	}

	v.SetDefault("log_level", "info")

	// Environment overrides need the prefix, e.g. HOURLY_REPORT_LOG_LEVEL
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", " ", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	for _, key := range requiredKeys {
		if !v.IsSet(key) {
			return nil, fmt.Errorf("invalid config: %q is required", key)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate checks the fields viper cannot: presence of the nested values.
// Document formats and ranges are checked when the report is built.
func (c *Config) Validate() error {
	if c.Worker.Name == "" {
		return fmt.Errorf("worker.name is required")
	}
	if c.Worker.DNI == "" {
		return fmt.Errorf("worker.dni is required")
	}
	if c.Company.Name == "" {
		return fmt.Errorf("company.name is required")
	}
	if c.Company.CIF == "" {
		return fmt.Errorf("company.cif is required")
	}

	return nil
}

// Build constructs the report data. Holidays from HolidaysFile that fall in
// the report month are appended to the configured holidays.
func (c *Config) Build(logger *zap.Logger) (*report.Data, error) {
	worker, err := report.NewWorker(c.Worker.Name, c.Worker.DNI, c.Worker.SSN)
	if err != nil {
		return nil, fmt.Errorf("invalid worker: %w", err)
	}

	company, err := report.NewCompany(c.Company.Name, c.Company.Workplace, c.Company.CIF, c.Company.CCC)
	if err != nil {
		return nil, fmt.Errorf("invalid company: %w", err)
	}

	holidays := append([]int{}, c.DatesOff.Holidays...)
	if c.HolidaysFile != "" {
		hf := calendar.NewHolidayFile(c.HolidaysFile, logger)
		if err := hf.Load(); err != nil {
			return nil, fmt.Errorf("failed to load holidays: %w", err)
		}
		for _, h := range hf.Holidays(c.Year, c.Month) {
			logger.Info("Holiday from file",
				zap.String("date", h.Date.Format("2006-01-02")),
				zap.String("note", h.Note))
		}
		extra := hf.HolidaysFor(c.Year, c.Month)
		logger.Info("Merging holidays from file",
			zap.String("file", c.HolidaysFile),
			zap.Ints("days", extra))
		holidays = append(holidays, extra...)
	}

	datesOff, err := report.NewDatesOff(c.DatesOff.Weekdays, holidays)
	if err != nil {
		return nil, fmt.Errorf("invalid dates off: %w", err)
	}

	data, err := report.New(c.Year, c.Month, c.WorkingHours, worker, company, datesOff)
	if err != nil {
		return nil, fmt.Errorf("invalid report data: %w", err)
	}

	logger.Debug("Report data built",
		zap.Int("year", data.Year()),
		zap.Int("month", data.Month()),
		zap.Int("days_in_month", data.DaysInMonth()),
		zap.Int("total_hours", data.TotalWorkingHours()))

	return data, nil
}

// LoadReport reads the config file and builds the report data
func LoadReport(configPath string, logger *zap.Logger) (*report.Data, error) {
	cfg, err := Load(configPath)
	if err != nil {
		return nil, err
	}
	return cfg.Build(logger)
}

// ReportLoader adapts LoadReport to a loader with a bound logger
type ReportLoader struct {
	logger *zap.Logger
}

// NewReportLoader creates a new ReportLoader
func NewReportLoader(logger *zap.Logger) *ReportLoader {
	return &ReportLoader{logger: logger}
}

// Load reads the config file and builds the report data
func (l *ReportLoader) Load(configPath string) (*report.Data, error) {
	return LoadReport(configPath, l.logger)
}
