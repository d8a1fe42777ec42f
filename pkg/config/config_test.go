package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "environment: test\n")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Server.Port != 8080 {
		t.Errorf("unexpected port %d", c.Server.Port)
	}
	if c.Cache.TTL.Std() != 5*time.Minute {
		t.Errorf("unexpected ttl %v", c.Cache.TTL.Std())
	}
	if c.Detector.PriceChangePct != 5.0 || c.Detector.VolumeChangePct != 300.0 {
		t.Errorf("unexpected thresholds %+v", c.Detector)
	}
	if c.Polygon.WindowPadDays != 2 {
		t.Errorf("unexpected pad %d", c.Polygon.WindowPadDays)
	}
	if c.CoinGecko.QuoteCurrency != "usd" {
		t.Errorf("unexpected quote currency %s", c.CoinGecko.QuoteCurrency)
	}
}

func TestLoad_DurationStrings(t *testing.T) {
	path := writeConfig(t, "environment: test\ncache:\n  ttl: 90s\nserver:\n  shutdown_timeout: 3s\n")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Cache.TTL.Std() != 90*time.Second {
		t.Errorf("unexpected ttl %v", c.Cache.TTL.Std())
	}
	if c.Server.ShutdownTimeout.Std() != 3*time.Second {
		t.Errorf("unexpected shutdown timeout %v", c.Server.ShutdownTimeout.Std())
	}
}

func TestLoad_BadDuration(t *testing.T) {
	path := writeConfig(t, "environment: test\ncache:\n  ttl: soon\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error for malformed duration")
	}
}

func TestLoad_MissingEnvironment(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for missing environment")
	}
}

func TestLoadWithEnv_PolygonKeyOverride(t *testing.T) {
	path := writeConfig(t, "environment: test\n")
	t.Setenv("POLYGON_API_KEY", "env-key")
	c, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Polygon.APIKey != "env-key" {
		t.Errorf("env override not applied, got %q", c.Polygon.APIKey)
	}
}

func TestLoad_RedisEnabledNeedsAddr(t *testing.T) {
	path := writeConfig(t, "environment: test\ncache:\n  redis:\n    enabled: true\n")
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for enabled redis without addr")
	}
}
