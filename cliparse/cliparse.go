package cliparse

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Environment names and their default backend endpoints.
const (
	EnvDev  = "dev"
	EnvProd = "prod"

	devBaseURL  = "http://localhost:8000/api"
	prodBaseURL = "https://api.crewkernegazette.co.uk/api"
)

// DefaultTimeout is applied uniformly to every backend request.
const DefaultTimeout = 20 * time.Second

type Config struct {
	Env     string
	BaseURL string
	Timeout time.Duration
	DataDir string
	Verbose bool
}

// ParseFlags resolves configuration from flags, then environment variables,
// then a .env file in the working directory, then defaults. The base URL is
// resolved once here; everything downstream is relative to it.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("gazette", flag.ContinueOnError)

	fs.StringVar(&cfg.Env, "e", "", "Environment (dev or prod)")
	fs.StringVar(&cfg.BaseURL, "u", "", "Backend base URL (overrides environment default)")
	fs.StringVar(&cfg.DataDir, "data-dir", "", "Directory for local state (sessions, logs)")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return Resolve(cfg.Env, cfg.BaseURL, cfg.DataDir, cfg.Verbose)
}

// Resolve fills a Config from explicit values, falling back to environment
// variables, a .env file, then defaults. Callers that own their own flag
// parsing (cobra) come in here.
func Resolve(env, baseURL, dataDir string, verbose bool) (Config, error) {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	cfg := Config{Env: env, BaseURL: baseURL, DataDir: dataDir, Verbose: verbose}

	if cfg.Env == "" {
		cfg.Env = os.Getenv("GAZETTE_ENV")
	}
	if cfg.Env == "" {
		cfg.Env = EnvProd
	}
	if cfg.Env != EnvDev && cfg.Env != EnvProd {
		return Config{}, errors.New("environment must be dev or prod")
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("GAZETTE_BASE_URL")
	}
	if cfg.BaseURL == "" {
		if cfg.Env == EnvDev {
			cfg.BaseURL = devBaseURL
		} else {
			cfg.BaseURL = prodBaseURL
		}
	}

	if cfg.DataDir == "" {
		cfg.DataDir = os.Getenv("GAZETTE_DATA_DIR")
	}
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, errors.New("cannot resolve home directory; set -data-dir or GAZETTE_DATA_DIR")
		}
		cfg.DataDir = filepath.Join(home, ".gazette")
	}

	cfg.Timeout = DefaultTimeout

	return cfg, nil
}
