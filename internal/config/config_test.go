package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ServiceName != "notification-service" {
		t.Errorf("ServiceName = %q", cfg.ServiceName)
	}
	if cfg.Port != "3004" {
		t.Errorf("Port = %q, want 3004", cfg.Port)
	}
	if cfg.FriendQueue != "friend.requests" || cfg.LobbyQueue != "lobby.events" {
		t.Errorf("queues = %q/%q", cfg.FriendQueue, cfg.LobbyQueue)
	}
	if cfg.PrefetchCount != 10 {
		t.Errorf("PrefetchCount = %d, want 10", cfg.PrefetchCount)
	}
	if cfg.ReconnectDelay != 5*time.Second {
		t.Errorf("ReconnectDelay = %v, want 5s", cfg.ReconnectDelay)
	}
	if cfg.MaxReconnectAttempts != 10 {
		t.Errorf("MaxReconnectAttempts = %d, want 10", cfg.MaxReconnectAttempts)
	}
	if cfg.HealthCheckTimeout != 5*time.Second {
		t.Errorf("HealthCheckTimeout = %v, want 5s", cfg.HealthCheckTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "8080")
	t.Setenv("RABBITMQ_PREFETCH_COUNT", "25")
	t.Setenv("RABBITMQ_RECONNECT_DELAY", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.PrefetchCount != 25 {
		t.Errorf("PrefetchCount = %d, want 25", cfg.PrefetchCount)
	}
	if cfg.ReconnectDelay != 250*time.Millisecond {
		t.Errorf("ReconnectDelay = %v, want 250ms", cfg.ReconnectDelay)
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when JWT_SECRET is missing")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "prefetch not a number", key: "RABBITMQ_PREFETCH_COUNT", value: "many"},
		{name: "delay not a duration", key: "RABBITMQ_RECONNECT_DELAY", value: "soon"},
		{name: "timeout not a duration", key: "HEALTH_CHECK_TIMEOUT", value: "5 minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "test-secret")
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}
