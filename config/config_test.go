package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ncobase/blogclient/validator"
)

const sample = `
app_name: blog-test
api:
  base_url: https://api.example.com
  breaker:
    enabled: true
    timeout: 5s
    min_requests: 10
identity:
  region: eu-west-1
  user_pool_id: eu-west-1_pool
  client_id: client
  client_secret: secret
  registration: provider
store:
  driver: redis
  redis:
    addr: localhost:6379
    db: 2
upload:
  max_bytes: 1024
  allowed_types: [image/png]
logger:
  level: 5
  format: json
observes:
  sentry:
    endpoint: https://key@sentry.example.com/1
    environment: test
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadConfigFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.AppName != "blog-test" || cfg.API.BaseURL != "https://api.example.com" {
		t.Fatalf("cfg = %+v", cfg)
	}
	b := cfg.API.Breaker
	if b == nil || b.Timeout != 5*time.Second || b.MinRequests != 10 || b.MaxRequests != 1 {
		t.Fatalf("breaker = %+v", b)
	}
	c := cfg.Identity.Cognito
	if c.Region != "eu-west-1" || c.ClientID != "client" || c.ClientSecret != "secret" || cfg.Identity.Registration != "provider" {
		t.Fatalf("identity = %+v %+v", c, cfg.Identity)
	}
	if cfg.Store.Driver != "redis" || cfg.Store.Redis == nil || cfg.Store.Redis.DB != 2 {
		t.Fatalf("store = %+v", cfg.Store)
	}
	if cfg.Upload.MaxBytes != 1024 || len(cfg.Upload.AllowedTypes) != 1 {
		t.Fatalf("upload = %+v", cfg.Upload)
	}
	if cfg.Logger.Level != 5 || cfg.Logger.Format != "json" {
		t.Fatalf("logger = %+v", cfg.Logger)
	}
	if s := cfg.Observes.Sentry; s.Environment != "test" || s.SampleRate != 1.0 {
		t.Fatalf("sentry = %+v", s)
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "api:\n  base_url: http://localhost:8080\n"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.AppName != "blog" || cfg.Identity.Registration != "backend" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.API.Breaker != nil {
		t.Fatal("breaker should be disabled by default")
	}
	if cfg.Store.Driver != "file" || cfg.Store.Redis != nil {
		t.Fatalf("store = %+v", cfg.Store)
	}
	if cfg.Upload.MaxBytes != validator.DefaultMaxImageBytes {
		t.Fatalf("max bytes = %d", cfg.Upload.MaxBytes)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BLOG_API_BASE_URL", "https://env.example.com")
	t.Setenv("BLOG_IDENTITY_CLIENT_ID", "from-env")
	t.Setenv("BLOG_STORE_DRIVER", "memory")
	cfg, err := LoadConfig(writeConfig(t, sample))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.API.BaseURL != "https://env.example.com" || cfg.Identity.Cognito.ClientID != "from-env" || cfg.Store.Driver != "memory" {
		t.Fatalf("cfg = %+v %+v %+v", cfg.API, cfg.Identity.Cognito, cfg.Store)
	}
}

func TestEnvOnly(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("BLOG_API_BASE_URL", "https://env.example.com")
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.API.BaseURL != "https://env.example.com" {
		t.Fatalf("base url = %q", cfg.API.BaseURL)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing explicit file should fail")
	}
	if _, err := LoadConfig(writeConfig(t, "app_name: x\n")); err == nil {
		t.Error("missing base url should fail")
	}
	if _, err := LoadConfig(writeConfig(t, "api:\n  base_url: not a url\n")); err == nil {
		t.Error("relative base url should fail")
	}
	bad := "api:\n  base_url: http://x\nidentity:\n  registration: both\n"
	if _, err := LoadConfig(writeConfig(t, bad)); err == nil {
		t.Error("unknown registration strategy should fail")
	}
}

func TestGetConfigCaches(t *testing.T) {
	SetPath(writeConfig(t, sample))
	t.Cleanup(func() { SetPath("") })
	a, err := GetConfig()
	if err != nil {
		t.Fatalf("GetConfig: %v", err)
	}
	b, _ := GetConfig()
	if a != b {
		t.Fatal("GetConfig should return the loaded config")
	}
	if ProvideCognitoConfig(a).UserPoolID != "eu-west-1_pool" || ProvideUploadConfig(a).MaxBytes != 1024 {
		t.Fatal("providers returned the wrong sections")
	}
	if ProvideAPIConfig(nil) != nil || ProvideSentryConfig(nil) != nil {
		t.Fatal("nil config should provide nil sections")
	}
}
