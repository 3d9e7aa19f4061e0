// Package config provides configuration loading and management for Zilean.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// DefaultPort is the default port for the Zilean HTTP server.
	DefaultPort = 8181
	// DefaultMaxConnections is the default maximum number of database connections.
	DefaultMaxConnections = 10
	// DefaultDirectoryPerm is the default permission for created directories.
	DefaultDirectoryPerm = 0755
	// DefaultParsingThreads is the default worker pool size for ParseBatch.
	DefaultParsingThreads = 4
	// DefaultImdbMinimumScore is the default correlator score-cascade threshold.
	DefaultImdbMinimumScore = 0.85
)

// Config represents the main configuration structure for Zilean.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Imdb     ImdbConfig     `mapstructure:"imdb"`
	Dmm      DmmConfig      `mapstructure:"dmm"`
	Parsing  ParsingConfig  `mapstructure:"parsing"`
}

// ServerConfig contains HTTP server configuration settings.
type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	Host        string `mapstructure:"host"`
	URLBase     string `mapstructure:"url_base"`
	EnableSSL   bool   `mapstructure:"enable_ssl"`
	SSLCertPath string `mapstructure:"ssl_cert_path"`
	SSLKeyPath  string `mapstructure:"ssl_key_path"`
}

// DatabaseConfig contains database connection and configuration settings.
type DatabaseConfig struct {
	Type           string `mapstructure:"type"`
	ConnectionURL  string `mapstructure:"connection_url"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
}

// LogConfig contains logging configuration settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// AuthConfig contains authentication and authorization settings.
type AuthConfig struct {
	Method   string `mapstructure:"method"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	APIKey   string `mapstructure:"api_key"`
}

// StorageConfig contains file and directory path settings.
type StorageConfig struct {
	DataDirectory string `mapstructure:"data_directory"`
	CacheDir      string `mapstructure:"cache_directory"`
	BackupDir     string `mapstructure:"backup_directory"`
}

// ImdbConfig controls the catalog ingestion/correlation source and scoring.
type ImdbConfig struct {
	DatasetURL    string  `mapstructure:"dataset_url"`
	MinimumScore  float64 `mapstructure:"minimum_score"`
	ForceDownload bool    `mapstructure:"force_download"`
	ForceReindex  bool    `mapstructure:"force_reindex"`
}

// DmmConfig controls the DMM hashlist repository used by the page stream.
type DmmConfig struct {
	RepoURL         string `mapstructure:"repo_url"`
	LocalPath       string `mapstructure:"local_path"`
	GithubUsername  string `mapstructure:"github_username"`
	GithubToken     string `mapstructure:"github_token"`
}

// ParsingConfig controls the title parser's batch worker pool.
type ParsingConfig struct {
	Threads int `mapstructure:"threads"`
}

// Load reads and parses the configuration from file and environment variables.
func Load(configPath, dataDir string) (*Config, error) {
	vip := viper.New()
	vip.SetConfigFile(configPath)
	vip.SetConfigType("yaml")

	setDefaults(vip, dataDir)

	if err := vip.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	vip.AutomaticEnv()
	vip.SetEnvPrefix("ZILEAN")

	_ = vip.BindEnv("database.type", "ZILEAN_DATABASE_TYPE")
	_ = vip.BindEnv("database.connection_url", "ZILEAN_DATABASE_URL")
	_ = vip.BindEnv("database.host", "ZILEAN_DATABASE_HOST")
	_ = vip.BindEnv("database.port", "ZILEAN_DATABASE_PORT")
	_ = vip.BindEnv("database.database", "ZILEAN_DATABASE_DATABASE")
	_ = vip.BindEnv("database.username", "ZILEAN_DATABASE_USERNAME")
	_ = vip.BindEnv("database.password", "ZILEAN_DATABASE_PASSWORD")
	_ = vip.BindEnv("database.max_connections", "ZILEAN_DATABASE_MAX_CONNECTIONS")
	_ = vip.BindEnv("server.port", "ZILEAN_SERVER_PORT")
	_ = vip.BindEnv("log.level", "ZILEAN_LOG_LEVEL")
	_ = vip.BindEnv("imdb.dataset_url", "ZILEAN_IMDB_DATASET_URL")
	_ = vip.BindEnv("imdb.minimum_score", "ZILEAN_IMDB_MINIMUM_SCORE")
	_ = vip.BindEnv("imdb.force_download", "ZILEAN_IMDB_FORCE_DOWNLOAD")
	_ = vip.BindEnv("imdb.force_reindex", "ZILEAN_IMDB_FORCE_REINDEX")
	_ = vip.BindEnv("dmm.repo_url", "ZILEAN_DMM_REPO_URL")
	_ = vip.BindEnv("dmm.local_path", "ZILEAN_DMM_LOCAL_PATH")
	_ = vip.BindEnv("dmm.github_username", "ZILEAN_GITHUB_USERNAME")
	_ = vip.BindEnv("dmm.github_token", "ZILEAN_GITHUB_TOKEN")
	_ = vip.BindEnv("parsing.threads", "ZILEAN_PARSING_THREADS")

	var config Config
	if err := vip.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := ensureDirectories(&config); err != nil {
		return nil, fmt.Errorf("error creating directories: %w", err)
	}

	return &config, nil
}

func setDefaults(vip *viper.Viper, dataDir string) {
	vip.SetDefault("server.port", DefaultPort)
	vip.SetDefault("server.host", "0.0.0.0")
	vip.SetDefault("server.url_base", "")
	vip.SetDefault("server.enable_ssl", false)

	vip.SetDefault("database.type", "postgres")
	vip.SetDefault("database.host", "localhost")
	vip.SetDefault("database.port", 5432)
	vip.SetDefault("database.database", "zilean")
	vip.SetDefault("database.username", "zilean")
	vip.SetDefault("database.password", "password")
	vip.SetDefault("database.max_connections", DefaultMaxConnections)

	vip.SetDefault("log.level", "info")
	vip.SetDefault("log.format", "json")
	vip.SetDefault("log.output", "stdout")

	vip.SetDefault("auth.method", "none")
	vip.SetDefault("auth.api_key", "")

	vip.SetDefault("storage.data_directory", dataDir)
	vip.SetDefault("storage.cache_directory", filepath.Join(dataDir, "cache"))
	vip.SetDefault("storage.backup_directory", filepath.Join(dataDir, "backups"))

	vip.SetDefault("imdb.dataset_url", "")
	vip.SetDefault("imdb.minimum_score", DefaultImdbMinimumScore)
	vip.SetDefault("imdb.force_download", false)
	vip.SetDefault("imdb.force_reindex", false)

	vip.SetDefault("dmm.repo_url", "https://github.com/debridmediamanager/hashlists")
	vip.SetDefault("dmm.local_path", filepath.Join(dataDir, "dmm-hashlists"))
	vip.SetDefault("dmm.github_username", "")
	vip.SetDefault("dmm.github_token", "")

	vip.SetDefault("parsing.threads", DefaultParsingThreads)
}

func ensureDirectories(config *Config) error {
	dirs := []string{
		config.Storage.DataDirectory,
		config.Storage.CacheDir,
		config.Storage.BackupDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, DefaultDirectoryPerm); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
