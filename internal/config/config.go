// Package config loads and validates application configuration via viper.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Language  string          `mapstructure:"language" validate:"required"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Trie      TrieConfig      `mapstructure:"trie"`
	Recommend RecommendConfig `mapstructure:"recommend"`
	Server    ServerConfig    `mapstructure:"server"`
	Outputs   OutputsConfig   `mapstructure:"outputs"`
}

type StorageConfig struct {
	// Driver selects the blob backend: "sqlite" for a local file,
	// "mysql" for a shared server used by multiple devices.
	Driver string      `mapstructure:"driver" validate:"oneof=sqlite mysql"`
	Path   string      `mapstructure:"path"`
	MySQL  MySQLConfig `mapstructure:"mysql"`
}

type MySQLConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	Database        string            `mapstructure:"database"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime"`
}

type TrieConfig struct {
	// Path points at the per-language trie JSON produced by the data
	// pipeline, e.g. data/fr/trie.json.
	Path   string   `mapstructure:"path" validate:"omitempty,file"`
	Legend []string `mapstructure:"legend"`
}

type RecommendConfig struct {
	MinLevel int `mapstructure:"min_level" validate:"gte=1"`
	MaxLevel int `mapstructure:"max_level" validate:"gtefield=MinLevel"`
}

type ServerConfig struct {
	Bind string `mapstructure:"bind"`
	Port int    `mapstructure:"port" validate:"gt=0,lte=65535"`
}

type OutputsConfig struct {
	ExportDirectory string `mapstructure:"export_directory"`
	ReportDirectory string `mapstructure:"report_directory"`
}

// Load reads configuration from the given file, or from the default search
// paths when the file is empty. A missing config file is not an error; the
// defaults describe a working single-device sqlite setup.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/trielingual")
	}

	v.SetDefault("language", "fr")
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", filepath.Join("data", "trielingual.db"))
	v.SetDefault("storage.mysql.port", 3306)
	v.SetDefault("trie.legend", []string{"Top500", "Top1k", "Top2k", "Top4k", "Top7k", "Top10k"})
	v.SetDefault("recommend.min_level", 1)
	v.SetDefault("recommend.max_level", 6)
	v.SetDefault("server.bind", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("outputs.export_directory", "exports")
	v.SetDefault("outputs.report_directory", "reports")

	// Secrets come from the environment only, never from the config file
	if err := v.BindEnv("storage.mysql.username", "TRIELINGUAL_MYSQL_USERNAME"); err != nil {
		return nil, fmt.Errorf("failed to bind TRIELINGUAL_MYSQL_USERNAME environment variable: %w", err)
	}
	if err := v.BindEnv("storage.mysql.password", "TRIELINGUAL_MYSQL_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind TRIELINGUAL_MYSQL_PASSWORD environment variable: %w", err)
	}
	if err := v.BindEnv("language", "TRIELINGUAL_LANGUAGE"); err != nil {
		return nil, fmt.Errorf("failed to bind TRIELINGUAL_LANGUAGE environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Namespace returns the persisted namespace for a data kind under the
// configured language, e.g. "studyList/fr".
func (c *Config) Namespace(kind string) string {
	return kind + "/" + c.Language
}
