package config

import "testing"

func TestNew_Defaults(t *testing.T) {
	for _, k := range []string{
		"SERVER_HOST", "SERVER_PORT",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"RESEND_API_KEY", "EMAIL_FROM",
		"EVENT_DATE", "EVENT_LOCATION",
	} {
		t.Setenv(k, "")
	}

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.DB != 0 {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
	if cfg.Email.From != defaultEmailFrom {
		t.Errorf("Email.From = %q", cfg.Email.From)
	}
	if cfg.Event.Date != defaultEventDate || cfg.Event.Location != defaultEventLocation {
		t.Errorf("Event = %+v", cfg.Event)
	}
}

func TestNew_Overrides(t *testing.T) {
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("RESEND_API_KEY", "re_test_key")
	t.Setenv("EVENT_DATE", "2026-03-15")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Redis.Addr != "redis:6380" || cfg.Redis.DB != 2 {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
	if cfg.Email.ResendAPIKey != "re_test_key" {
		t.Errorf("ResendAPIKey = %q", cfg.Email.ResendAPIKey)
	}
	if cfg.Event.Date != "2026-03-15" {
		t.Errorf("Event.Date = %q", cfg.Event.Date)
	}
}

func TestNew_Invalid(t *testing.T) {
	t.Run("bad port", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "not-a-port")
		if _, err := New(); err == nil {
			t.Error("New() error = nil, want invalid SERVER_PORT")
		}
	})

	t.Run("bad event date", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "")
		t.Setenv("EVENT_DATE", "12/09/2025")
		if _, err := New(); err == nil {
			t.Error("New() error = nil, want invalid EVENT_DATE")
		}
	})
}
