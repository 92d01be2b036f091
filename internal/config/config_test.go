package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ADMIN_EMAIL", "JWT_ACCESS_SECRET", "JWT_REFRESH_SECRET"} {
		t.Setenv(key, "")
	}
	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("port = %q, want 8080", cfg.Port)
	}
	if cfg.AdminEmail != ReservedAdminEmail {
		t.Fatalf("admin email = %q, want %q", cfg.AdminEmail, ReservedAdminEmail)
	}
	if cfg.JWTAccessSecret == "" || cfg.JWTRefreshSecret == "" {
		t.Fatal("jwt secrets must default to non-empty values")
	}
	if cfg.JWTAccessSecret == cfg.JWTRefreshSecret {
		t.Fatal("access and refresh secrets must differ")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_ACCESS_SECRET", "env-access")
	t.Setenv("JWT_REFRESH_SECRET", "env-refresh")
	t.Setenv("KAFKA_BROKERS", "b1:9092, b2:9092,")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("port = %q, want 9090", cfg.Port)
	}
	if cfg.JWTAccessSecret != "env-access" || cfg.JWTRefreshSecret != "env-refresh" {
		t.Fatalf("jwt secrets = %q/%q", cfg.JWTAccessSecret, cfg.JWTRefreshSecret)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[0] != "b1:9092" || cfg.KafkaBrokers[1] != "b2:9092" {
		t.Fatalf("brokers = %v", cfg.KafkaBrokers)
	}
}
