package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

type SystemConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	Debug    bool   `yaml:"debug"`
}

type WebConfig struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	Secret string `yaml:"secret"`
}

type DatabaseConfig struct {
	Type     string `yaml:"type"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Passwd   string `yaml:"passwd"`
	MaxConn  int    `yaml:"max_conn"`
	IdleConn int    `yaml:"idle_conn"`
	Debug    bool   `yaml:"debug"`
}

type StoreConfig struct {
	UploadDir        string `yaml:"upload_dir"`
	PlaceholderImage string `yaml:"placeholder_image"`
	CartTTLMinutes   int    `yaml:"cart_ttl_minutes"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode"`
	Filename   string `yaml:"filename"`
	FileEnable bool   `yaml:"file_enable"`
}

type AppConfig struct {
	System   SystemConfig   `yaml:"system"`
	Web      WebConfig      `yaml:"web"`
	Database DatabaseConfig `yaml:"database"`
	Store    StoreConfig    `yaml:"store"`
	Logger   LoggerConfig   `yaml:"logger"`
}

func DefaultConfig() *AppConfig {
	return &AppConfig{
		System: SystemConfig{
			Appid:    "catering",
			Location: "Asia/Manila",
			Workdir:  "/var/catering",
			Debug:    false,
		},
		Web: WebConfig{
			Host:   "0.0.0.0",
			Port:   1810,
			Secret: "9b6de5cc-catering-0000-0000-secret",
		},
		Database: DatabaseConfig{
			Type:     "postgres",
			Host:     "127.0.0.1",
			Port:     5432,
			Name:     "catering",
			User:     "postgres",
			Passwd:   "",
			MaxConn:  100,
			IdleConn: 10,
		},
		Store: StoreConfig{
			UploadDir:        "food_uploads",
			PlaceholderImage: "default_food.jpg",
			CartTTLMinutes:   120,
		},
		Logger: LoggerConfig{
			Mode:       "development",
			Filename:   "catering.log",
			FileEnable: false,
		},
	}
}

// LoadConfig reads the YAML file at path over the defaults and then applies
// CATERING_* environment overrides. A missing file is not an error.
func LoadConfig(path string) *AppConfig {
	cfg := DefaultConfig()
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("CATERING_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("CATERING_SYSTEM_DEBUG", func(v string) { cfg.System.Debug = cast.ToBool(v) })
	setEnvValue("CATERING_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvValue("CATERING_WEB_PORT", func(v string) { cfg.Web.Port = cast.ToInt(v) })
	setEnvValue("CATERING_WEB_SECRET", func(v string) { cfg.Web.Secret = v })
	setEnvValue("CATERING_DB_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvValue("CATERING_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvValue("CATERING_DB_PORT", func(v string) { cfg.Database.Port = cast.ToInt(v) })
	setEnvValue("CATERING_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("CATERING_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("CATERING_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvValue("CATERING_UPLOAD_DIR", func(v string) { cfg.Store.UploadDir = v })
	setEnvValue("CATERING_CART_TTL_MINUTES", func(v string) { cfg.Store.CartTTLMinutes = cast.ToInt(v) })
	setEnvValue("CATERING_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })

	if !filepath.IsAbs(cfg.Store.UploadDir) {
		cfg.Store.UploadDir = filepath.Join(cfg.System.Workdir, cfg.Store.UploadDir)
	}
	return cfg
}

func setEnvValue(name string, f func(v string)) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		f(v)
	}
}
