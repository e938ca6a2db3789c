package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func envFrom(values map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, envFrom(map[string]string{"DATABASE_URI": "postgres://localhost/cartcloud"}))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.RunAddress != ":8080" {
		t.Fatalf("unexpected run address %q", cfg.RunAddress)
	}
	if cfg.TaxRate != 0.15 || cfg.ShippingFee != 9.99 || cfg.FreeShippingThreshold != 50 {
		t.Fatalf("unexpected pricing defaults: %+v", cfg)
	}
	if cfg.AnalyticsCacheTTL != 10*time.Minute {
		t.Fatalf("unexpected analytics ttl %s", cfg.AnalyticsCacheTTL)
	}
	if cfg.WorkerPoolSize != 2 || cfg.ReconcileBatchSize != 16 {
		t.Fatalf("unexpected worker defaults: %+v", cfg)
	}
}

func TestLoadRequiresDatabaseURI(t *testing.T) {
	if _, err := load(nil, envFrom(nil)); err == nil {
		t.Fatal("expected error when database URI is missing")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	cfg, err := load(nil, envFrom(map[string]string{
		"DATABASE_URI":            "postgres://localhost/cartcloud",
		"RUN_ADDRESS":             ":9090",
		"TAX_RATE":                "0.2",
		"ANALYTICS_CACHE_TTL":     "30s",
		"RECONCILE_POLL_INTERVAL": "1s",
		"WORKER_POOL_SIZE":        "8",
	}))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.RunAddress != ":9090" || cfg.TaxRate != 0.2 {
		t.Fatalf("env overrides ignored: %+v", cfg)
	}
	if cfg.AnalyticsCacheTTL != 30*time.Second || cfg.ReconcilePollInterval != time.Second {
		t.Fatalf("duration overrides ignored: %+v", cfg)
	}
	if cfg.WorkerPoolSize != 8 {
		t.Fatalf("worker pool override ignored: %d", cfg.WorkerPoolSize)
	}
}

func TestLoadFlagsBeatEnv(t *testing.T) {
	args := []string{
		"-a", ":7070",
		"-d", "postgres://flags/cartcloud",
		"-tax-rate", "0.1",
		"-reconcile-interval", "2s",
		"-worker-pool", "4",
	}
	cfg, err := load(args, envFrom(map[string]string{
		"DATABASE_URI": "postgres://env/cartcloud",
		"RUN_ADDRESS":  ":9090",
	}))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.RunAddress != ":7070" || cfg.DatabaseURI != "postgres://flags/cartcloud" {
		t.Fatalf("flags must win over env: %+v", cfg)
	}
	if cfg.TaxRate != 0.1 || cfg.ReconcilePollInterval != 2*time.Second || cfg.WorkerPoolSize != 4 {
		t.Fatalf("flag overrides ignored: %+v", cfg)
	}
}

func TestLoadJWTSecretFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jwt.secret")
	if err := os.WriteFile(path, []byte("from-file"), 0o600); err != nil {
		t.Fatalf("write secret file: %v", err)
	}

	cfg, err := load(nil, envFrom(map[string]string{
		"DATABASE_URI":    "postgres://localhost/cartcloud",
		"JWT_SECRET":      "from-env",
		"JWT_SECRET_FILE": path,
	}))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.JWTSecret != "from-file" {
		t.Fatalf("secret file must win, got %q", cfg.JWTSecret)
	}
}

func TestLoadInvalidDurationFlag(t *testing.T) {
	if _, err := load([]string{"-reconcile-interval", "soon"}, envFrom(map[string]string{
		"DATABASE_URI": "postgres://localhost/cartcloud",
	})); err == nil {
		t.Fatal("expected error for malformed duration")
	}
}

func TestLoadSanitizesNonPositiveValues(t *testing.T) {
	cfg, err := load(nil, envFrom(map[string]string{
		"DATABASE_URI":     "postgres://localhost/cartcloud",
		"TOKEN_TTL":        "-1h",
		"WORKER_POOL_SIZE": "0",
	}))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.TokenTTL != time.Hour || cfg.WorkerPoolSize != 2 {
		t.Fatalf("non-positive values must fall back to defaults: %+v", cfg)
	}
}
