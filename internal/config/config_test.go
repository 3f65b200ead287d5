package config

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("AUTHENABLED", "")
	t.Setenv("CORSORIGINS", "")

	cfg := New()

	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.KPICacheTTL != time.Minute {
		t.Errorf("expected 60s ttl, got %s", cfg.KPICacheTTL)
	}
	if !cfg.AuthEnabled {
		t.Error("auth must be enabled by default")
	}
	if len(cfg.CORSOrigins) != 0 {
		t.Errorf("expected no cross-origin callers by default, got %v", cfg.CORSOrigins)
	}
}

func TestFromEnvironment(t *testing.T) {
	t.Setenv("PROJECTID", "serrano-prod")
	t.Setenv("PORT", "9000")
	t.Setenv("KPICACHETTL", "5m")
	t.Setenv("CORSORIGINS", "https://a.example, https://b.example,")
	t.Setenv("AUTHENABLED", "false")
	t.Setenv("REDISADDR", "localhost:6379")

	cfg := New()

	if cfg.ProjectID != "serrano-prod" || cfg.Port != 9000 || cfg.RedisAddr != "localhost:6379" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.KPICacheTTL != 5*time.Minute {
		t.Errorf("unexpected ttl %s", cfg.KPICacheTTL)
	}
	if cfg.AuthEnabled {
		t.Error("expected auth disabled")
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins %v", cfg.CORSOrigins)
	}
}
