package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("REPLY_TIMEOUT_SECONDS", "")
	t.Setenv("CONNECT_TIMEOUT_SECONDS", "")

	cfg := Load()
	if cfg.TelegramBotToken != "123:abc" {
		t.Errorf("expected token from env, got %q", cfg.TelegramBotToken)
	}
	if cfg.ReplyTimeoutSec != 300 {
		t.Errorf("expected default reply timeout 300, got %d", cfg.ReplyTimeoutSec)
	}
	if cfg.ConnectTimeoutSec != 30 {
		t.Errorf("expected default connect timeout 30, got %d", cfg.ConnectTimeoutSec)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"", 42},
		{"7", 7},
		{"abc", 42}, // falls back to default
	}
	for _, tt := range tests {
		t.Setenv("TEST_INT_VAR", tt.value)
		if got := getEnvAsInt("TEST_INT_VAR", 42); got != tt.want {
			t.Errorf("getEnvAsInt with %q = %d, want %d", tt.value, got, tt.want)
		}
	}
}
