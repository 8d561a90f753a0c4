package internal

import (
	"testing"
	"time"
)

func TestDefaultConfigNeedsSecret(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatal("defaults without a secret should fail validation")
	}
	cfg.Auth.Secret = "s3cret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults with a secret should pass: %v", err)
	}
}

func TestHTTPConfig_PortBounds(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := HTTPConfig{Port: port}
		if err := cfg.Validate(); err == nil {
			t.Errorf("port %d should fail validation", port)
		}
	}
	cfg := HTTPConfig{Port: 8080}
	if err := cfg.Validate(); err != nil {
		t.Errorf("port 8080 should pass: %v", err)
	}
	if cfg.Address() != ":8080" {
		t.Errorf("address = %q", cfg.Address())
	}
}

func TestAuthConfig_TTL(t *testing.T) {
	cfg := AuthConfig{Secret: "x", TokenTTLHours: 24, AdminUsername: "admin", AdminPassword: "pw"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid auth config should pass: %v", err)
	}
	if cfg.TokenTTL() != 24*time.Hour {
		t.Errorf("ttl = %v", cfg.TokenTTL())
	}

	cfg.TokenTTLHours = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero ttl should fail validation")
	}
}

func TestAuthConfig_MissingAdminCredentials(t *testing.T) {
	cfg := AuthConfig{Secret: "x", TokenTTLHours: 1}
	if err := cfg.Validate(); err == nil {
		t.Fatal("missing admin credentials should fail validation")
	}
}

func TestDataAndUploadsPathsRequired(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Secret = "x"

	cfg.Data.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty data path should fail validation")
	}

	cfg.Data.Path = "./data"
	cfg.Uploads.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty uploads path should fail validation")
	}
}
