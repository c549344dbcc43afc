package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Venv VenvConfig `mapstructure:"venv"`
	Log  LogConfig  `mapstructure:"log"`
}

type VenvConfig struct {
	Tool           string `mapstructure:"tool"`
	Interpreter    string `mapstructure:"interpreter"`
	PackageManager string `mapstructure:"package_manager"`
	Shell          string `mapstructure:"shell"`
}

type LogConfig struct {
	Mode string `mapstructure:"mode"`
}

// LoadConfig reads configuration from the given file. An empty path skips the
// file entirely and returns defaults, so the CLI works with no config at all.
// Every key can be overridden through the environment, e.g. VENVCTL_VENV_TOOL
// for venv.tool; env beats file beats default.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("VENVCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults registered through viper so AutomaticEnv can override them.
	v.SetDefault("venv.tool", "virtualenv")
	v.SetDefault("venv.interpreter", "python")
	v.SetDefault("venv.package_manager", "pip")
	v.SetDefault("venv.shell", "/bin/bash")
	v.SetDefault("log.mode", "pretty")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
