package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"setandseize-server/internal/util"
)

// Config provides configuration for the Set & Seize server
type Config struct {
	loaded bool
	JWT    struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	}
	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	StartGameDelay int `yaml:"startGameDelay" envconfig:"start_game_delay"`
}

var config Config

// DefaultConfig returns a config suitable as a starting point
func DefaultConfig() Config {
	var c Config
	c.JWT.PublicKey = "jwt/public.pem"
	c.JWT.PrivateKey = "jwt/private.key"
	c.Log.Level = "info"
	c.StartGameDelay = 10
	return c
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
func Load() error {
	configFile := util.Getenv("SAS_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil {
		return err
	}
	defer file.Close()

	config = Config{}
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return err
	}

	if err := envconfig.Process("sas", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
