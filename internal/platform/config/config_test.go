package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadAppliesDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("POSTGRES_DSN", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServiceName != "creatorhub" || cfg.HTTPPort != "8080" {
		t.Fatalf("unexpected service defaults: %+v", cfg)
	}
	if cfg.ViolationRetention != 90*24*time.Hour {
		t.Fatalf("expected 90 day retention, got %s", cfg.ViolationRetention)
	}
	if !cfg.EnablePricingEventEmission || !cfg.EnableHighRiskAlerts {
		t.Fatalf("expected side effects enabled by default")
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("PLATFORM_FEE_PERCENT", "12.5")
	t.Setenv("VIOLATION_RETENTION", "720h")
	t.Setenv("ENABLE_HIGH_RISK_ALERTS", "false")
	t.Setenv("PATTERN_TABLE_PATH", " /etc/creatorhub/patterns.yaml ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.HTTPPort != "9090" || cfg.PlatformFeePercent != 12.5 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.ViolationRetention != 30*24*time.Hour {
		t.Fatalf("expected 30 day retention, got %s", cfg.ViolationRetention)
	}
	if cfg.EnableHighRiskAlerts {
		t.Fatalf("expected alerts disabled")
	}
	if cfg.PatternTablePath != "/etc/creatorhub/patterns.yaml" {
		t.Fatalf("expected trimmed pattern path, got %q", cfg.PatternTablePath)
	}
}

func TestLoadRejectsFeeOutOfRange(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("PLATFORM_FEE_PERCENT", "75")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "PLATFORM_FEE_PERCENT") {
		t.Fatalf("expected fee range error, got %v", err)
	}
}
