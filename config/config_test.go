package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "GASSAFE_PORT", "API_KEY", "ALLOWED_ORIGINS", "GASSAFE_MODE", "GASSAFE_BROWSER_BIN", "PUPPETEER_EXECUTABLE_PATH"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	if cfg.Server.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Server.ScrapeMode != "live" {
		t.Errorf("ScrapeMode = %q, want live", cfg.Server.ScrapeMode)
	}
	if cfg.Auth.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", cfg.Auth.APIKey)
	}
	if cfg.CORS.AllowedOrigins != nil {
		t.Errorf("AllowedOrigins = %v, want nil", cfg.CORS.AllowedOrigins)
	}
	if cfg.Scraper.NavigationTimeout != 30*time.Second {
		t.Errorf("NavigationTimeout = %v, want 30s", cfg.Scraper.NavigationTimeout)
	}
	if cfg.Scraper.ResultTimeout != 15*time.Second {
		t.Errorf("ResultTimeout = %v, want 15s", cfg.Scraper.ResultTimeout)
	}
	if cfg.Browser.MaxSessions != 2 {
		t.Errorf("MaxSessions = %d, want 2", cfg.Browser.MaxSessions)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("API_KEY", "secret")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("GASSAFE_MODE", "Degraded")
	t.Setenv("GASSAFE_BROWSER_BIN", "")
	t.Setenv("PUPPETEER_EXECUTABLE_PATH", "/usr/bin/chromium")
	t.Setenv("GASSAFE_RESULT_TIMEOUT", "5s")

	cfg := Load()

	if cfg.Server.Port != 8081 {
		t.Errorf("Port = %d, want 8081", cfg.Server.Port)
	}
	if cfg.Auth.APIKey != "secret" {
		t.Errorf("APIKey = %q, want secret", cfg.Auth.APIKey)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.CORS.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.CORS.AllowedOrigins, want)
	}
	if cfg.Server.ScrapeMode != "degraded" {
		t.Errorf("ScrapeMode = %q, want degraded", cfg.Server.ScrapeMode)
	}
	if cfg.Browser.BrowserBin != "/usr/bin/chromium" {
		t.Errorf("BrowserBin = %q, want /usr/bin/chromium", cfg.Browser.BrowserBin)
	}
	if cfg.Scraper.ResultTimeout != 5*time.Second {
		t.Errorf("ResultTimeout = %v, want 5s", cfg.Scraper.ResultTimeout)
	}
}
