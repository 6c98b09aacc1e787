package config

import "testing"

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_NAMESPACE", "loja-teste")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Address() != ":9090" {
		t.Fatalf("expected :9090, got %s", cfg.Address())
	}
	if cfg.StoreNamespace != "loja-teste" {
		t.Fatalf("expected namespace override, got %s", cfg.StoreNamespace)
	}
}

func TestLoadGuardsRequestLimit(t *testing.T) {
	t.Setenv("REQUESTS_PER_MINUTE", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.RequestsPerMinute != 240 {
		t.Fatalf("expected fallback limit 240, got %d", cfg.RequestsPerMinute)
	}
}
