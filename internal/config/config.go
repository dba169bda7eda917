package config

import (
	"fmt"
	"time"

	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/pkg/mysql"
	"github.com/spf13/viper"
)

type Config struct {
	API      API          `mapstructure:"api"`
	Database mysql.Config `mapstructure:"database"`
	Webhook  Webhook      `mapstructure:"webhook"`
	Session  Session      `mapstructure:"session"`
	Stream   Stream       `mapstructure:"stream"`
}

type API struct {
	Port string `mapstructure:"port"`
}

type Webhook struct {
	APIKey string `mapstructure:"api_key"`
	// AmountTolerance is an absolute threshold in the smallest currency
	// unit. The gateway occasionally reports totals off by rounding noise.
	AmountTolerance float64 `mapstructure:"amount_tolerance"`
}

type Session struct {
	TTLMinutes           int `mapstructure:"ttl_minutes"`
	SweepIntervalMinutes int `mapstructure:"sweep_interval_minutes"`
}

type Stream struct {
	HeartbeatSeconds int `mapstructure:"heartbeat_seconds"`
}

func Load() (cfg *Config, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	viper.SetDefault("webhook.amount_tolerance", 1000)
	viper.SetDefault("session.ttl_minutes", 30)
	viper.SetDefault("session.sweep_interval_minutes", 10)
	viper.SetDefault("stream.heartbeat_seconds", 25)

	err = viper.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func (s Session) TTL() time.Duration {
	return time.Duration(s.TTLMinutes) * time.Minute
}

func (s Session) SweepInterval() time.Duration {
	return time.Duration(s.SweepIntervalMinutes) * time.Minute
}

func (s Stream) HeartbeatInterval() time.Duration {
	return time.Duration(s.HeartbeatSeconds) * time.Second
}
