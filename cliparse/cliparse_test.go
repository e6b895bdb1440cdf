package cliparse

import (
	"testing"
	"time"
)

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("GAZETTE_ENV", "dev")
	t.Setenv("GAZETTE_DATA_DIR", t.TempDir())

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Env != EnvDev {
		t.Errorf("expected env dev, got %s", cfg.Env)
	}
	if cfg.BaseURL != devBaseURL {
		t.Errorf("expected dev base URL, got %s", cfg.BaseURL)
	}
	if cfg.Timeout != 20*time.Second {
		t.Errorf("expected 20s timeout, got %v", cfg.Timeout)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("GAZETTE_ENV", "prod")
	t.Setenv("GAZETTE_BASE_URL", "https://env.example.com/api")

	cfg, err := ParseFlags([]string{"-e", "dev", "-u", "https://flag.example.com/api", "-data-dir", t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Env != EnvDev {
		t.Errorf("CLI should override env: expected dev, got %s", cfg.Env)
	}
	if cfg.BaseURL != "https://flag.example.com/api" {
		t.Errorf("CLI should override env: got %s", cfg.BaseURL)
	}
}

func TestParseFlags_DefaultsToProd(t *testing.T) {
	t.Setenv("GAZETTE_ENV", "")
	t.Setenv("GAZETTE_BASE_URL", "")

	cfg, err := ParseFlags([]string{"-data-dir", t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Env != EnvProd {
		t.Errorf("expected prod default, got %s", cfg.Env)
	}
	if cfg.BaseURL != prodBaseURL {
		t.Errorf("expected prod base URL, got %s", cfg.BaseURL)
	}
}

func TestParseFlags_RejectsUnknownEnv(t *testing.T) {
	_, err := ParseFlags([]string{"-e", "staging"})
	if err == nil {
		t.Fatal("expected error for unknown environment")
	}
}
