// Package config loads the blog client configuration with Viper.
//
// The file config.yaml is searched in $HOME/.blog and the working
// directory unless a path is given. Every key can be overridden from the
// environment with the BLOG_ prefix and dots replaced by underscores:
//
//	export BLOG_API_BASE_URL=https://api.example.com
//	export BLOG_IDENTITY_CLIENT_ID=abc123
//
// Example file:
//
//	app_name: blog
//	api:
//	  base_url: https://api.example.com
//	  breaker:
//	    enabled: true
//	    timeout: 10s
//	identity:
//	  region: us-east-1
//	  user_pool_id: us-east-1_abc
//	  client_id: abc123
//	  registration: backend # or provider
//	store:
//	  driver: file # file, redis or memory
//	upload:
//	  max_bytes: 5242880
//	logger:
//	  level: 4
//	  format: text
//	observes:
//	  sentry:
//	    endpoint: https://key@sentry.example.com/1
package config
