package config

import (
	"github.com/ncobase/blogclient/net/client"
	"github.com/spf13/viper"
)

// API configures the blog backend.
type API struct {
	BaseURL   string
	UserAgent string
	// Breaker is nil when the circuit breaker is disabled.
	Breaker *client.BreakerConfig
}

func getAPIConfig(v *viper.Viper) *API {
	a := &API{
		BaseURL:   v.GetString("api.base_url"),
		UserAgent: v.GetString("api.user_agent"),
	}
	if !v.GetBool("api.breaker.enabled") {
		return a
	}
	a.Breaker = &client.BreakerConfig{
		Name:         getStringOrDefault(v, "api.breaker.name", "blog-api"),
		MaxRequests:  getUint32OrDefault(v, "api.breaker.max_requests", 1),
		Interval:     getDurationOrDefault(v, "api.breaker.interval", 0),
		Timeout:      getDurationOrDefault(v, "api.breaker.timeout", 0),
		MinRequests:  getUint32OrDefault(v, "api.breaker.min_requests", 3),
		FailureRatio: getFloat64OrDefault(v, "api.breaker.failure_ratio", 0.6),
	}
	return a
}
