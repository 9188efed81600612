package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Load reads configuration from path (optional) with VIDSYNC_* environment
// overrides, e.g. VIDSYNC_REMOTE_BASE_URL.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("VIDSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.rate_limit", 50.0)
	v.SetDefault("server.rate_burst", 100)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "vidsync.db")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 10*time.Minute)

	v.SetDefault("remote.base_url", "http://baobab.kaiyanapp.com")
	v.SetDefault("remote.timeout", 15*time.Second)
	v.SetDefault("remote.page_size", 10)

	v.SetDefault("eviction.interval", time.Hour)
	v.SetDefault("eviction.video_max_age", 7*24*time.Hour)
	v.SetDefault("eviction.user_max_age", 30*24*time.Hour)
	v.SetDefault("eviction.history_max_age", 90*24*time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}
