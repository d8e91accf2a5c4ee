package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"

	"kalaha/internal/domain/game"
	errs "kalaha/internal/errors"
)

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

type Config struct {
	ServerPort           string `mapstructure:"SERVER_PORT"`
	MongoUri             string `mapstructure:"MONGO_URI"`
	MongoDatabase        string `mapstructure:"MONGO_DATABASE"`
	RedisUrl             string `mapstructure:"REDIS_URL"`
	IsLocalCors          bool   `mapstructure:"LOCAL_CORS"`
	LogDevelopment       bool   `mapstructure:"LOG_DEVELOPMENT"`
	Storage              string `mapstructure:"STORAGE"`
	BotGrpcAddr          string `mapstructure:"BOT_GRPC_ADDR"`
	BotServicePort       string `mapstructure:"BOT_SERVICE_PORT"`
	NumberOfPits         int    `mapstructure:"NUMBER_OF_PITS"`
	StartingStonesPerPit int    `mapstructure:"STARTING_STONES_PER_PIT"`
}

var defaults = map[string]any{
	"SERVER_PORT":             "8080",
	"MONGO_URI":               "mongodb://localhost:27017",
	"MONGO_DATABASE":          "kalaha",
	"REDIS_URL":               "localhost:6379",
	"LOCAL_CORS":              false,
	"LOG_DEVELOPMENT":         false,
	"STORAGE":                 StorageMongo,
	"BOT_GRPC_ADDR":           "",
	"BOT_SERVICE_PORT":        "8082",
	"NUMBER_OF_PITS":          7,
	"STARTING_STONES_PER_PIT": 4,
}

// Setup reads cfgPath (env file format) if it exists; process environment
// overrides the file and the file overrides defaults.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Storage != StorageMongo && c.Storage != StorageMemory {
		return fmt.Errorf("%w: unknown STORAGE %q", errs.ErrInvalidConfig, c.Storage)
	}
	return c.Board().Validate()
}

// Board is the process wide board configuration.
func (c *Config) Board() game.BoardConfig {
	return game.NewBoardConfig(c.NumberOfPits, c.StartingStonesPerPit)
}
