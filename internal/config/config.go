package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the toolkit configuration.
// It is built by Load and handed to the constructors that need it.
type Config struct {
	// Network settings
	Network    string `mapstructure:"network" yaml:"network"`
	RPCUrl     string `mapstructure:"rpc_url" yaml:"rpc_url"`
	WSUrl      string `mapstructure:"ws_url" yaml:"ws_url"`
	Commitment string `mapstructure:"commitment" yaml:"commitment"`
	TimeoutSec int    `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// IDL used to name decoded instructions, the built-in pump IDL when empty
	IDLPath string `mapstructure:"idl_path" yaml:"idl_path"`

	Wallet  WalletConfig  `mapstructure:"wallet" yaml:"wallet"`
	Reader  ReaderConfig  `mapstructure:"reader" yaml:"reader"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// WalletConfig identifies the payer. Only one of the two is used, the private key first.
type WalletConfig struct {
	PrivateKey string `mapstructure:"private_key" yaml:"private_key"`
	Mnemonic   string `mapstructure:"mnemonic" yaml:"mnemonic"`
	Passphrase string `mapstructure:"passphrase" yaml:"passphrase"`
}

// ReaderConfig contains settings of the bonding curve reader
type ReaderConfig struct {
	Parallel int `mapstructure:"parallel" yaml:"parallel"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	LogToFile   bool   `mapstructure:"log_to_file" yaml:"log_to_file"`
	LogFilePath string `mapstructure:"log_file_path" yaml:"log_file_path"`
}

// Load loads configuration from an optional YAML file and PUMPFUN_ environment variables.
// With an empty path pumpfun.yaml is looked up in . and ./configs and may be absent.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	processEnvSubstitution(v)

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.RPCUrl == "" {
		config.RPCUrl = GetRPCEndpoint(config.Network)
	}
	if config.WSUrl == "" {
		config.WSUrl = GetWSEndpoint(config.Network)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Default returns the configuration Load yields without file or environment
func Default() *Config {
	return &Config{
		Network:    DefaultNetwork,
		RPCUrl:     SolanaMainnetRPC,
		WSUrl:      SolanaMainnetWS,
		Commitment: DefaultCommitment,
		TimeoutSec: DefaultTimeoutSec,
		Reader:     ReaderConfig{Parallel: DefaultReadParallel},
		Logging: LoggingConfig{
			Level:       DefaultLogLevel,
			Format:      DefaultLogFormat,
			LogFilePath: DefaultLogFilePath,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("network", d.Network)
	v.SetDefault("rpc_url", "")
	v.SetDefault("ws_url", "")
	v.SetDefault("commitment", d.Commitment)
	v.SetDefault("timeout_sec", d.TimeoutSec)
	v.SetDefault("idl_path", "")

	v.SetDefault("wallet.private_key", "")
	v.SetDefault("wallet.mnemonic", "")
	v.SetDefault("wallet.passphrase", "")

	v.SetDefault("reader.parallel", d.Reader.Parallel)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.log_to_file", false)
	v.SetDefault("logging.log_file_path", d.Logging.LogFilePath)
}

// processEnvSubstitution expands ${VAR:-default} references in string settings
func processEnvSubstitution(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		value, ok := v.Get(key).(string)
		if !ok || !strings.Contains(value, "${") {
			continue
		}
		v.Set(key, expandEnvVars(value))
	}
}

// expandEnvVars expands environment variables in the format ${VAR:-default}
func expandEnvVars(value string) string {
	result := value
	for {
		start := strings.Index(result, "${")
		if start == -1 {
			break
		}

		end := strings.Index(result[start:], "}")
		if end == -1 {
			break
		}
		end += start

		expr := result[start+2 : end]

		varName, defaultValue := expr, ""
		if i := strings.Index(expr, ":-"); i >= 0 {
			varName, defaultValue = expr[:i], expr[i+2:]
		}

		envValue := os.Getenv(varName)
		if envValue == "" {
			envValue = defaultValue
		}

		result = result[:start] + envValue + result[end+1:]
	}

	return result
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validateURL("rpc_url", c.RPCUrl, "http", "https"); err != nil {
		return err
	}
	if err := validateURL("ws_url", c.WSUrl, "ws", "wss"); err != nil {
		return err
	}

	if !validCommitments[c.Commitment] {
		return fmt.Errorf("commitment must be one of processed, confirmed, finalized, got '%s'", c.Commitment)
	}

	if c.TimeoutSec < 1 || c.TimeoutSec > MaxRequestTimeoutSecs {
		return fmt.Errorf("timeout_sec must be between 1 and %d", MaxRequestTimeoutSecs)
	}

	if c.Reader.Parallel < 1 || c.Reader.Parallel > MaxReadParallel {
		return fmt.Errorf("reader.parallel must be between 1 and %d", MaxReadParallel)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json", "console":
	default:
		return fmt.Errorf("logging.format must be 'text', 'json' or 'console'")
	}

	return nil
}

func validateURL(field, raw string, schemes ...string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", field, err)
	}
	for _, s := range schemes {
		if u.Scheme == s && u.Host != "" {
			return nil
		}
	}
	return fmt.Errorf("%s must use one of %v, got '%s'", field, schemes, raw)
}

// Timeout returns the per-request RPC timeout
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// HasWallet reports whether a payer is configured
func (c *Config) HasWallet() bool {
	return c.Wallet.PrivateKey != "" || c.Wallet.Mnemonic != ""
}
