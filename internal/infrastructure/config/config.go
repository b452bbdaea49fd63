package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultContractAddress is the Uniswap V2 factory, used when no address is given
const DefaultContractAddress = "0x5C69bEe701ef814a2B6a3EDD4B1652CB9cc5aA6f"

// Config represents the application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Explorer ExplorerConfig `mapstructure:"explorer"`
	Ethereum EthereumConfig `mapstructure:"ethereum"`
	NATS     NATSConfig     `mapstructure:"nats"`
}

// AppConfig represents application-specific configuration
type AppConfig struct {
	Env             string `mapstructure:"env"`
	LogLevel        string `mapstructure:"log_level"`
	ContractAddress string `mapstructure:"contract_address"`
	Output          string `mapstructure:"output"`
	Color           bool   `mapstructure:"color"`
	ParallelLookups bool   `mapstructure:"parallel_lookups"`
	TopCallers      int    `mapstructure:"top_callers"`
}

// ExplorerConfig represents the Etherscan-compatible explorer configuration
type ExplorerConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	ChainID int64         `mapstructure:"chain_id"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// EthereumConfig represents the optional JSON-RPC node configuration
type EthereumConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	RPCURL  string `mapstructure:"rpc_url"`
}

// NATSConfig represents NATS configuration
type NATSConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	URL               string        `mapstructure:"url"`
	SubjectPrefix     string        `mapstructure:"subject_prefix"`
	ConnectTimeout    time.Duration `mapstructure:"connect_timeout"`
	ReconnectAttempts int           `mapstructure:"reconnect_attempts"`
	ReconnectDelay    time.Duration `mapstructure:"reconnect_delay"`
}

// Load loads configuration from .env, environment variables and files
func Load() (*Config, error) {
	// A missing .env is fine; real environment variables take precedence.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/contract-dependency-graph")

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the settings required to reach the explorer
func (c *Config) Validate() error {
	if c.Explorer.BaseURL == "" {
		return errors.New("explorer.base_url is required")
	}
	if c.Explorer.APIKey == "" {
		return errors.New("explorer API key is required (set ETHERSCAN_API_KEY)")
	}
	if c.Explorer.Timeout < 0 {
		return errors.New("explorer.timeout must not be negative")
	}
	if c.Ethereum.Enabled && c.Ethereum.RPCURL == "" {
		return errors.New("ethereum.rpc_url is required when ethereum is enabled")
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.contract_address", DefaultContractAddress)
	v.SetDefault("app.output", "json")
	v.SetDefault("app.color", true)
	v.SetDefault("app.parallel_lookups", false)
	v.SetDefault("app.top_callers", 5)

	// Explorer defaults
	v.SetDefault("explorer.base_url", "https://api.etherscan.io/api")
	v.SetDefault("explorer.api_key", "")
	v.SetDefault("explorer.chain_id", 0)
	v.SetDefault("explorer.timeout", "30s")

	// Ethereum defaults
	v.SetDefault("ethereum.enabled", false)
	v.SetDefault("ethereum.rpc_url", "")

	// NATS defaults
	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.subject_prefix", "contracts")
	v.SetDefault("nats.connect_timeout", "10s")
	v.SetDefault("nats.reconnect_attempts", 5)
	v.SetDefault("nats.reconnect_delay", "2s")

	// Bind well-known env names
	v.BindEnv("explorer.api_key", "ETHERSCAN_API_KEY", "EXPLORER_API_KEY")
	v.BindEnv("nats.url", "NATS_URL")
	v.BindEnv("ethereum.rpc_url", "ETH_RPC_URL", "ETHEREUM_RPC_URL")
}
