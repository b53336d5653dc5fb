package config

import (
	"github.com/ncobase/blogclient/identity/store"
	"github.com/spf13/viper"
)

// Store configures where provider tokens are kept.
type Store = store.Config

func getStoreConfig(v *viper.Viper) *Store {
	s := &Store{
		Driver: getStringOrDefault(v, "store.driver", store.DriverFile),
		Path:   v.GetString("store.path"),
	}
	if addr := v.GetString("store.redis.addr"); addr != "" {
		s.Redis = &store.RedisConfig{
			Addr:     addr,
			Username: v.GetString("store.redis.username"),
			Password: v.GetString("store.redis.password"),
			DB:       v.GetInt("store.redis.db"),
			Key:      v.GetString("store.redis.key"),
		}
	}
	return s
}
