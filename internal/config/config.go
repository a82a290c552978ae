package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds configuration for the fetch command, loaded from flags, env,
// or config file.
type Config struct {
	APIKey   string
	ChainID  string
	Endpoint string
	Out      string
	Format   string
	PgDSN    string
	LogLevel string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := newViper()

	v.SetDefault("chain-id", "100")
	v.SetDefault("out", "./data/tags.jsonl")
	v.SetDefault("format", "jsonl")
	v.SetDefault("log-level", "info")

	if err := bind(v, cfgFile, flags); err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIKey:   v.GetString("api-key"),
		ChainID:  v.GetString("chain-id"),
		Endpoint: v.GetString("endpoint"),
		Out:      v.GetString("out"),
		Format:   strings.ToLower(v.GetString("format")),
		PgDSN:    v.GetString("pg-dsn"),
		LogLevel: v.GetString("log-level"),
	}

	return cfg, nil
}

// VerifyConfig holds configuration for the verify command.
type VerifyConfig struct {
	RPCURL   string
	In       string
	LogLevel string
}

// LoadVerify merges config file, environment variables, and flags into
// VerifyConfig.
func LoadVerify(cfgFile string, flags *pflag.FlagSet) (VerifyConfig, error) {
	v := newViper()

	v.SetDefault("in", "./data/tags.jsonl")
	v.SetDefault("log-level", "info")

	if err := bind(v, cfgFile, flags); err != nil {
		return VerifyConfig{}, err
	}

	cfg := VerifyConfig{
		RPCURL:   v.GetString("rpc"),
		In:       v.GetString("in"),
		LogLevel: v.GetString("log-level"),
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("HONEYTAGS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func bind(v *viper.Viper, cfgFile string, flags *pflag.FlagSet) error {
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		return nil
	}

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return nil
}
