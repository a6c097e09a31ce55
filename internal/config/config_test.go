package config

import "testing"

func TestDefaultUsesEnv(t *testing.T) {
	t.Setenv("CINEGATE_ADDR", "0.0.0.0:9090")
	t.Setenv("CINEGATE_GIGACHAT_SECRETS", "aaa, bbb,,ccc")

	cfg := Default()
	if cfg.Addr != "0.0.0.0:9090" {
		t.Fatalf("addr: want 0.0.0.0:9090, got %s", cfg.Addr)
	}
	if got := len(cfg.Settings.GigaChatSecrets); got != 3 {
		t.Fatalf("secrets: want 3, got %d (%v)", got, cfg.Settings.GigaChatSecrets)
	}
	if cfg.Settings.GigaChatSecrets[1] != "bbb" {
		t.Fatalf("secrets[1]: want bbb, got %s", cfg.Settings.GigaChatSecrets[1])
	}
}

func TestDefaultFallbacks(t *testing.T) {
	t.Setenv("CINEGATE_ADDR", "")
	t.Setenv("CINEGATE_GEMINI_MODEL", "")

	cfg := Default()
	if cfg.Addr != "127.0.0.1:8080" {
		t.Fatalf("addr fallback: got %s", cfg.Addr)
	}
	if cfg.Settings.GeminiModel != "gemini-1.5-flash" {
		t.Fatalf("model fallback: got %s", cfg.Settings.GeminiModel)
	}
}
