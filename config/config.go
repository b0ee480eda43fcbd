package config

import (
	"errors"
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     Server
	Bun        BunConfig
	Push       Push
	Reminder   Reminder
	LoggerMode LoggerMode
}

type Server struct {
	Port           string
	Environment    string
	AllowedOrigins []string
}

type BunConfig struct {
	DSN string
}

type LoggerMode struct {
	Development bool
	Prod        bool
	Level       string
}

// Push holds the VAPID key pair for Web Push. Generated once with
// generate-vapid-keys; only the public half is shared with the client build.
type Push struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	Subject         string // mailto: contact required by push services
	QueueSize       int
	Workers         int
}

type Reminder struct {
	SweepIntervalSeconds int
}

func (r Reminder) SweepInterval() time.Duration {
	if r.SweepIntervalSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(r.SweepIntervalSeconds) * time.Second
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()

	v.SetConfigName(filename)
	v.SetConfigType("yaml")
	v.AddConfigPath("config")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	err := v.Unmarshal(&c)
	if err != nil {
		slog.Error("Unable to unmarshal config", "err", err)
		return nil, err
	}
	return &c, nil
}
