package portal

import (
	_ "embed"
	"time"

	"portal/datatable"
	nt "portal/entity"
	"portal/util"
)

const (
	DefaultProviderTimeout = 10 * time.Second
	DefaultLoginDelay      = 1500 * time.Millisecond
)

//go:embed sample.yaml
var SampleConfig []byte

type Config struct {
	Table           datatable.Config `yaml:",inline"`
	ProviderTimeout time.Duration    `yaml:"provider_timeout"`
	LoginDelay      time.Duration    `yaml:"login_delay"`
	DbPath          string           `yaml:"db_path"`
	LogFile         string           `yaml:"log_file"`
	Seed            int              `yaml:"seed"`
}

// LoadConfig reads path and fills in defaults.
func LoadConfig(path string) (cfg Config, err error) {

	err = util.LoadConfig(&cfg, path)
	if err != nil {
		return
	}

	cfg = cfg.withDefaults()
	return
}

// DefaultConfig is the config used when there is no file.
func DefaultConfig() Config {
	return Config{Seed: 42}.withDefaults()
}

// withDefaults fills unset durations, page size and columns
func (cfg Config) withDefaults() Config {

	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = DefaultProviderTimeout
	}
	if cfg.LoginDelay <= 0 {
		cfg.LoginDelay = DefaultLoginDelay
	}
	if cfg.Table.PageSize <= 0 {
		cfg.Table.PageSize = 10
	}
	if len(cfg.Table.Columns) == 0 {
		cfg.Table.Columns = nt.DefaultColumns()
	}
	if cfg.LogFile == "" {
		cfg.LogFile = "portal.log"
	}

	return cfg
}

// Fields returns the form fields, derived from columns when not configured.
func (cfg Config) Fields() []nt.Field {

	if len(cfg.Table.Fields) > 0 {
		return cfg.Table.Fields
	}
	return nt.FieldsFromColumns(cfg.Table.Columns)
}

// columnKey returns the row field a column id reads
func (cfg Config) columnKey(id string) string {

	for _, col := range cfg.Table.Columns {
		if col.Id == id {
			return col.Key()
		}
	}
	return id
}
