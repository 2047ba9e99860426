package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the esdocs configuration.
type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Elasticsearch ElasticsearchConfig `yaml:"elasticsearch"`
	Cache         CacheConfig         `yaml:"cache"`
	Auth          AuthConfig          `yaml:"auth"`
	Kafka         KafkaConfig         `yaml:"kafka"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings. No keys disables auth.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// ElasticsearchConfig holds cluster connection and index settings.
type ElasticsearchConfig struct {
	// Addresses may hold comma-separated lists, they are split on load.
	Addresses        []string `yaml:"addresses"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	IndexPrefix      string   `yaml:"index_prefix"`
	TimeoutSec       int      `yaml:"timeout_sec"`
	MaxRetries       int      `yaml:"max_retries"` // 0 = default (10), negative disables retries
	RetryOnTimeout   *bool    `yaml:"retry_on_timeout"`
	Refresh          string   `yaml:"refresh"` // false, true, wait_for
	Shards           int      `yaml:"number_of_shards"`
	Replicas         int      `yaml:"number_of_replicas"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// Timeout returns the per-request timeout.
func (c ElasticsearchConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// CacheConfig holds the optional read-through document cache settings.
type CacheConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Addrs    []string `yaml:"addrs"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	DB       int      `yaml:"db"`
	TTLSec   int      `yaml:"ttl_sec"`
}

// TTL returns the cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSec) * time.Second
}

// KafkaConfig holds ingest worker settings.
type KafkaConfig struct {
	Brokers        []string `yaml:"brokers"`
	Topic          string   `yaml:"topic"`
	GroupID        string   `yaml:"group_id"`
	DLQTopic       string   `yaml:"dlq_topic"`
	MaxAttempts    int      `yaml:"max_attempts"`
	BackoffMs      int      `yaml:"backoff_ms"`
	CommitInterval int      `yaml:"commit_interval_ms"`
}

// Backoff returns the initial retry delay.
func (c KafkaConfig) Backoff() time.Duration {
	return time.Duration(c.BackoffMs) * time.Millisecond
}

// Load reads configuration from a YAML file by environment name (local, docker, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads, expands, defaults and validates a YAML config file.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}

	es := &c.Elasticsearch
	es.Addresses = splitList(es.Addresses)
	if len(es.Addresses) == 0 {
		es.Addresses = []string{"http://localhost:9200"}
	}
	if es.IndexPrefix == "" {
		es.IndexPrefix = "app"
	}
	if es.TimeoutSec <= 0 {
		es.TimeoutSec = 20
	}
	if es.MaxRetries == 0 {
		es.MaxRetries = 10
	}
	if es.RetryOnTimeout == nil {
		on := true
		es.RetryOnTimeout = &on
	}
	if es.Refresh == "" {
		es.Refresh = "false"
	}
	if es.Shards <= 0 {
		es.Shards = 1
	}
	if es.ReadinessTimeout <= 0 {
		es.ReadinessTimeout = 30
	}

	c.Auth.APIKeys = splitList(c.Auth.APIKeys)

	c.Cache.Addrs = splitList(c.Cache.Addrs)
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 300
	}

	k := &c.Kafka
	k.Brokers = splitList(k.Brokers)
	if k.GroupID == "" {
		k.GroupID = "esdocs-ingest"
	}
	if k.DLQTopic == "" && k.Topic != "" {
		k.DLQTopic = k.Topic + "_dlq"
	}
	if k.MaxAttempts <= 0 {
		k.MaxAttempts = 5
	}
	if k.BackoffMs <= 0 {
		k.BackoffMs = 1000
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Elasticsearch.Addresses) == 0 {
		return fmt.Errorf("elasticsearch.addresses is required")
	}
	if p := c.Elasticsearch.IndexPrefix; p != strings.ToLower(p) || strings.ContainsAny(p, `\/*?"<>| ,#:`) {
		return fmt.Errorf("elasticsearch.index_prefix %q must be lowercase without reserved characters", p)
	}
	switch c.Elasticsearch.Refresh {
	case "false", "true", "wait_for":
		// ok
	default:
		return fmt.Errorf(
			"elasticsearch.refresh must be \"false\", \"true\" or \"wait_for\", got %q", c.Elasticsearch.Refresh,
		)
	}
	if c.Elasticsearch.Replicas < 0 {
		return fmt.Errorf("elasticsearch.number_of_replicas must be non-negative")
	}
	if c.Cache.Enabled && len(c.Cache.Addrs) == 0 {
		return fmt.Errorf("cache.addrs is required when cache is enabled")
	}
	return nil
}

// ValidateKafka checks the settings the ingest worker needs.
func (c *Config) ValidateKafka() error {
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required")
	}
	if c.Kafka.Topic == "" {
		return fmt.Errorf("kafka.topic is required")
	}
	if c.Kafka.DLQTopic == c.Kafka.Topic {
		return fmt.Errorf("kafka.dlq_topic must differ from kafka.topic")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// splitList flattens comma-separated entries and drops blanks.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
