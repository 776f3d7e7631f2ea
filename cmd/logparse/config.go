package main

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ServeConfig configures the `serve` subcommand's HTTP listener.
type ServeConfig struct {
	Host     string `mapstructure:"host" validate:"required,hostname|ip"`
	Port     int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=INFO WARNING DEBUG ERROR"`
}

// Config is the process-wide configuration, loadable from a TOML file,
// environment variables (LOGPARSE_*), and flags, in that order of
// increasing precedence.
type Config struct {
	Serve *ServeConfig
}

func initDefaults() {
	viper.SetDefault("serve.host", "127.0.0.1")
	viper.SetDefault("serve.port", 8420)
	viper.SetDefault("serve.log_level", "INFO")
}

func setupFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "Config file (TOML)")
	cmd.PersistentFlags().String("log", "", "log level (DEBUG, INFO, WARNING, ERROR)")

	_ = viper.BindPFlag("serve.log_level", cmd.PersistentFlags().Lookup("log"))

	viper.SetEnvPrefix("logparse")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func loadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("logparse")
		viper.AddConfigPath(".")
		viper.SetConfigType("toml")
	}

	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.Serve == nil {
		cfg.Serve = &ServeConfig{}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg.Serve); err != nil {
		return nil, err
	}
	return &cfg, nil
}
