package config

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/acrostic/chainstore/internal/utils/logging"
)

var (
	defaults = map[string]interface{}{
		"verbose":      false,
		"storage_path": "./chainstore",
	}
)

func init() {
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
}

func GetConfig() (*Config, error) {
	viper.SetConfigType("yaml")
	viper.SetConfigName("chainstore")
	viper.AddConfigPath("/etc/chainstore/")
	viper.AddConfigPath("$HOME/.chainstore")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("CHAINSTORE")
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "reading config file")
		}
		// Config file not found; defaults and flags apply
	}

	if viper.GetBool("verbose") {
		logging.SetLevel(logrus.DebugLevel)
		logging.WithField("level", "debug").Debug("setting log level")
	}

	return &Config{
		storagePath: viper.GetString("storage_path"),
	}, nil
}

type Config struct {
	storagePath string
}

func (c *Config) StoragePath() string {
	return c.storagePath
}
