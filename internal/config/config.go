package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel   string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string  `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Redis      Redis   `yaml:"redis"`
	Maze       Maze    `yaml:"maze"`
	Session    Session `yaml:"session"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type Maze struct {
	DefaultComplexity int `yaml:"default-complexity" env:"MAZE_DEFAULT_COMPLEXITY" env-default:"10"`
	MaxComplexity     int `yaml:"max-complexity" env:"MAZE_MAX_COMPLEXITY" env-default:"100"`
	// Seed of zero seeds every room from the clock.
	Seed int64 `yaml:"seed" env:"MAZE_SEED" env-default:"0"`
}

type Session struct {
	QueueSize   int           `yaml:"queue-size" env:"SESSION_QUEUE_SIZE" env-default:"64"`
	ActiveTTL   time.Duration `yaml:"active-ttl" env:"SESSION_ACTIVE_TTL" env-default:"1h"`
	FinishedTTL time.Duration `yaml:"finished-ttl" env:"SESSION_FINISHED_TTL" env-default:"10m"`
}

// MustLoad - load .env into the environment, then config.yml on top of the defaults.
func MustLoad(path string) *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Errorf("unable to load .env file: %w", err))
	}

	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
