package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
		LogFile  string `mapstructure:"log_file"`
		Mode     string
	} `mapstructure:"app"`

	Auth struct {
		TokenURL string `mapstructure:"token_url"`
		Username string
		Password string
		ClientID string `mapstructure:"client_id"`
		Timeout  time.Duration
	} `mapstructure:"auth"`

	WMS struct {
		URL         string
		RequesterID string `mapstructure:"requester_id"`
		Category    int
		SubCategory int `mapstructure:"sub_category"`
		Timeout     time.Duration
	} `mapstructure:"wms"`

	Messaging struct {
		URL           string
		Recipients    []string
		SubjectPrefix string `mapstructure:"subject_prefix"`
		Timeout       time.Duration
	} `mapstructure:"messaging"`

	Files struct {
		BaseDir      string `mapstructure:"base_dir"`
		Input        string
		Backlog      string
		DetailPrefix string `mapstructure:"detail_prefix"`
		TempDir      string `mapstructure:"temp_dir"`
	} `mapstructure:"files"`

	Batch struct {
		MaxItems int `mapstructure:"max_items"`
	} `mapstructure:"batch"`

	Report struct {
		DayLabels []string `mapstructure:"day_labels"`
	} `mapstructure:"report"`

	Postgres struct {
		DSN string
	} `mapstructure:"postgres"`

	Telegram struct {
		Token       string
		AdminChatID int64 `mapstructure:"admin_chat_id"`
	} `mapstructure:"telegram"`

	Metrics struct {
		Textfile string
	} `mapstructure:"metrics"`
}

// InputPath is tomorrow's replenishment spreadsheet.
func (c Config) InputPath() string { return filepath.Join(c.Files.BaseDir, c.Files.Input) }

// BacklogPath is the weekly backlog workbook.
func (c Config) BacklogPath() string { return filepath.Join(c.Files.BaseDir, c.Files.Backlog) }

// Location resolves App.Timezone, falling back to the local zone. Validate
// rejects names that do not resolve.
func (c Config) Location() *time.Location {
	if c.App.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// DefaultLogFile is the run log used when app.log_file is unset.
const DefaultLogFile = "restock.log"

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.log_file", DefaultLogFile)

	v.SetDefault("auth.token_url", "https://sso.mottu.cloud/realms/Internal/protocol/openid-connect/token")
	v.SetDefault("auth.timeout", 30*time.Second)

	v.SetDefault("wms.url", "https://warehouse-inventory.mottu.cloud/Order/file")
	v.SetDefault("wms.category", 3)
	v.SetDefault("wms.sub_category", 15)
	v.SetDefault("wms.timeout", 60*time.Second)

	v.SetDefault("messaging.url", "https://message-integration.mottu.cloud/api/v1/messages")
	v.SetDefault("messaging.subject_prefix", "Replenishment automation: report for")
	v.SetDefault("messaging.timeout", 30*time.Second)

	v.SetDefault("files.base_dir", ".")
	v.SetDefault("files.input", "separacaoAmanha.xlsx")
	v.SetDefault("files.backlog", "backlog_cards_semana.xlsx")
	v.SetDefault("files.detail_prefix", "Relatorio_Abastecimento_Detalhado")

	v.SetDefault("batch.max_items", 30)
	v.SetDefault("report.day_labels", []string{
		"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY",
	})
}

// Load reads the config file at path (optional when empty), a sibling .env
// file, APP_* environment overrides and, when flags is not nil, the --mode flag.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	var c Config

	envFile := ".env"
	if path != "" {
		envFile = filepath.Join(filepath.Dir(path), ".env")
	}
	if err := gotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return c, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only covers keys viper already knows about.
	for _, k := range []string{"auth.username", "auth.password", "auth.client_id", "wms.requester_id",
		"postgres.dsn", "telegram.token", "telegram.admin_chat_id", "metrics.textfile",
		"messaging.recipients", "files.temp_dir", "app.timezone", "app.mode"} {
		_ = v.BindEnv(k)
	}

	if flags != nil {
		if f := flags.Lookup("mode"); f != nil {
			if err := v.BindPFlag("app.mode", f); err != nil {
				return c, err
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return c, err
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}

// Validate reports every missing credential or invalid setting at once.
func (c Config) Validate() error {
	var missing []string
	if c.Auth.Username == "" {
		missing = append(missing, "auth.username")
	}
	if c.Auth.Password == "" {
		missing = append(missing, "auth.password")
	}
	if c.Auth.ClientID == "" {
		missing = append(missing, "auth.client_id")
	}
	if c.WMS.RequesterID == "" {
		missing = append(missing, "wms.requester_id")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	if c.App.Timezone != "" {
		if _, err := time.LoadLocation(c.App.Timezone); err != nil {
			return fmt.Errorf("app.timezone %q: %w", c.App.Timezone, err)
		}
	}
	if c.Batch.MaxItems <= 0 {
		return fmt.Errorf("batch.max_items must be > 0, got %d", c.Batch.MaxItems)
	}
	if len(c.Report.DayLabels) != 7 {
		return fmt.Errorf("report.day_labels must list 7 days, got %d", len(c.Report.DayLabels))
	}
	seen := make(map[string]bool, 7)
	for _, l := range c.Report.DayLabels {
		k := strings.ToUpper(strings.TrimSpace(l))
		if k == "" || seen[k] {
			return fmt.Errorf("report.day_labels must be distinct and non-empty: %v", c.Report.DayLabels)
		}
		seen[k] = true
	}
	return nil
}
