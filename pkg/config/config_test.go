package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sample struct {
	Name  string `yaml:"name"`
	Token string `yaml:"token"`
	Port  int    `yaml:"port"`
}

type validated struct {
	Port int `yaml:"port"`
}

var errBadPort = errors.New("port out of range")

func (v *validated) Validate() error {
	if v.Port < 1 {
		return errBadPort
	}
	return nil
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("SAMPLE_TOKEN", "s3cret")
	path := writeConfig(t, "name: app\ntoken: ${SAMPLE_TOKEN}\n")

	var cfg sample
	if err := Load(path, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Token != "s3cret" {
		t.Errorf("token = %q", cfg.Token)
	}
}

func TestLoadKeepsDefaultsForAbsentFields(t *testing.T) {
	path := writeConfig(t, "name: app\n")

	cfg := sample{Port: 8080, Token: "default"}
	if err := Load(path, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 8080 || cfg.Token != "default" {
		t.Errorf("defaults clobbered: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	var cfg sample
	err := Load(filepath.Join(t.TempDir(), "missing.yaml"), &cfg)
	if err == nil {
		t.Fatal("missing file should fail")
	}
	if !strings.Contains(err.Error(), "missing.yaml") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestLoadRunsValidation(t *testing.T) {
	path := writeConfig(t, "port: 0\n")

	var cfg validated
	err := Load(path, &cfg)
	if !errors.Is(err, errBadPort) {
		t.Errorf("err = %v, want errBadPort", err)
	}
}
