package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config defines the structure of the configuration file.
type Config struct {
	GitCommit          string          `yaml:"git_commit" envconfig:"BKMG_GIT_COMMIT" json:"git_commit"`
	GitTag             string          `yaml:"git_tag" envconfig:"BKMG_GIT_TAG" json:"git_tag"`
	BuildTime          string          `yaml:"build_time" envconfig:"BKMG_BUILD_TIME" json:"build_time"`
	IsProduction       bool            `yaml:"is_production" envconfig:"BKMG_IS_PRODUCTION" json:"is_production"`
	LogLevel           zapcore.Level   `yaml:"log_level" envconfig:"BKMG_LOG_LEVEL" json:"log_level"`
	LogFolder          string          `yaml:"log_folder" envconfig:"BKMG_LOG_FOLDER" json:"log_folder"`
	LogMaxSize         int             `yaml:"log_max_size" envconfig:"BKMG_LOG_MAX_SIZE" json:"log_max_size"`
	ProfilerEnable     bool            `yaml:"profiler_enable" envconfig:"BKMG_PROFILER_ENABLE" json:"profiler_enable"`
	OpsEndpointsEnable bool            `yaml:"ops_endpoints_enable" envconfig:"BKMG_OPS_ENDPOINTS_ENABLE" json:"ops_endpoints_enable"`
	Server             ServerConfig    `yaml:"server" json:"server"`
	RateLimit          RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`
	Journal            JournalConfig   `yaml:"journal" json:"journal"`
	Redis              RedisConfig     `yaml:"redis" json:"redis"`
	BoltDB             BoltDBConfig    `yaml:"boltdb" json:"boltdb"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"BKMG_SERVER_HOST" json:"host"`
	Port            string        `yaml:"port" envconfig:"BKMG_SERVER_PORT" json:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"BKMG_SERVER_READ_TIMEOUT" json:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"BKMG_SERVER_WRITE_TIMEOUT" json:"write_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"BKMG_SERVER_REQUEST_TIMEOUT" json:"request_timeout"` // Time to wait for a request to finish
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"BKMG_SERVER_SHUTDOWN_TIMEOUT" json:"shutdown_timeout"`
}

type RateLimitConfig struct {
	Enable bool    `yaml:"enable" envconfig:"BKMG_RATE_LIMIT_ENABLE" json:"enable"`
	RPS    float64 `yaml:"rps" envconfig:"BKMG_RATE_LIMIT_RPS" json:"rps"`
	Burst  int     `yaml:"burst" envconfig:"BKMG_RATE_LIMIT_BURST" json:"burst"`
	// TrustProxy keys clients on X-REAL-IP or X-FORWARDED-FOR. Enable only behind a proxy which sets them.
	TrustProxy bool `yaml:"trust_proxy" envconfig:"BKMG_RATE_LIMIT_TRUST_PROXY" json:"trust_proxy"`
}

type JournalConfig struct {
	Enable      bool   `yaml:"enable" envconfig:"BKMG_JOURNAL_ENABLE" json:"enable"`
	QueuePrefix string `yaml:"queue_prefix" envconfig:"BKMG_JOURNAL_QUEUE_PREFIX" json:"queue_prefix"`
}

type RedisConfig struct {
	Host          string        `yaml:"host" envconfig:"BKMG_REDIS_HOST" json:"host"`
	Port          string        `yaml:"port" envconfig:"BKMG_REDIS_PORT" json:"port"`
	DialTimeout   time.Duration `yaml:"dial_timeout" envconfig:"BKMG_REDIS_DIAL_TIMEOUT" json:"dial_timeout"`
	ReadTimeout   time.Duration `yaml:"read_timeout" envconfig:"BKMG_REDIS_READ_TIMEOUT" json:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout" envconfig:"BKMG_REDIS_WRITE_TIMEOUT" json:"write_timeout"`
	PoolSize      int           `yaml:"pool_size" envconfig:"BKMG_REDIS_POOL_SIZE" json:"pool_size"`
	PoolTimeout   time.Duration `yaml:"pool_timeout" envconfig:"BKMG_REDIS_POOL_TIMEOUT" json:"pool_timeout"`
	Username      string        `yaml:"username" envconfig:"BKMG_REDIS_USERNAME" json:"-"`
	Password      string        `yaml:"password" envconfig:"BKMG_REDIS_PASSWORD" json:"-"`
	DatabaseIndex int           `yaml:"db_index" envconfig:"BKMG_REDIS_DATABASE_INDEX" json:"db_index"`
}

type BoltDBConfig struct {
	FilePath   string        `yaml:"filepath" envconfig:"BKMG_BOLTDB_FILE_PATH" json:"filepath"`
	Timeout    time.Duration `yaml:"timeout" envconfig:"BKMG_BOLTDB_TIMEOUT" json:"timeout"`
	BucketName string        `yaml:"bucket_name" envconfig:"BKMG_BOLTDB_BUCKET_NAME" json:"bucket_name"`
}

// LoadConfigFile provides an instance of config structure for the all application.
func LoadConfigFile(configFile string) (*Config, error) {
	file, err := os.Open(configFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	cfg := &Config{}
	yd := yaml.NewDecoder(file)
	err = yd.Decode(cfg)

	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigEnvs reads the environments variables and updates the App config.
func LoadConfigEnvs(prefix string, config *Config) error {
	return envconfig.Process(prefix, config)
}

// InitConfig setup defaults values for non provided parameters
// and configures build tags values to be used if provided.
func InitConfig(config *Config, gitCommit, gitTag, buildTime string) error {
	if len(gitCommit) != 0 {
		config.GitCommit = gitCommit
	}

	if len(gitTag) != 0 {
		config.GitTag = gitTag
	}

	if len(buildTime) != 0 {
		config.BuildTime = buildTime
	}

	if len(config.Server.Host) == 0 || len(config.Server.Port) == 0 {
		return errors.New("make sure to set valid server address and port in configuration file")
	}

	if config.Server.RequestTimeout <= 0 {
		config.Server.RequestTimeout = 10 * time.Second
	}

	if config.Server.ShutdownTimeout <= 0 {
		config.Server.ShutdownTimeout = 30 * time.Second
	}

	if len(config.LogFolder) == 0 {
		config.LogFolder = "./logs"
	}

	if config.LogMaxSize <= 0 {
		config.LogMaxSize = 10
	}

	if config.RateLimit.Enable && (config.RateLimit.RPS <= 0 || config.RateLimit.Burst <= 0) {
		return errors.New("make sure to set positive rate limit rps and burst values in configuration file")
	}

	if config.Journal.Enable {
		if len(config.Redis.Host) == 0 || len(config.Redis.Port) == 0 {
			return errors.New("make sure to set valid redis address and port in configuration file")
		}
		if len(config.BoltDB.FilePath) == 0 || len(config.BoltDB.BucketName) == 0 {
			return errors.New("make sure to set valid boltdb file path and bucket name in configuration file")
		}
	}

	return nil
}

// LoadAndInitConfigs loads in order the configs from various predefined sources
// then build the App configuration data. The env file is optional.
func LoadAndInitConfigs(configFile, envFile, gitCommit, gitTag, buildTime string) (*Config, error) {
	// Setup the yaml configuration from file.
	config, err := LoadConfigFile(configFile)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from file: %w", err)
	}

	// Set the environment configuration.
	err = godotenv.Load(envFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return config, fmt.Errorf("failed to set environment configurations: %w", err)
	}

	// Use environment variables with prefix `BKMG`.
	err = LoadConfigEnvs("BKMG", config)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from environment: %w", err)
	}

	err = InitConfig(config, gitCommit, gitTag, buildTime)
	if err != nil {
		return config, fmt.Errorf("failed to initialize configurations: %w", err)
	}
	return config, nil
}
