package application

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}

func TestLoadRuntimeConfig_Precedence(t *testing.T) {
	t.Setenv("HISTORIAN_API_PORT", "9090")
	t.Setenv("HISTORIAN_NODE_ID", "env-node")
	t.Setenv("HISTORIAN_REDIS_DB", "3")

	cfg := LoadRuntimeConfig(Flags{NodeID: "flag-node", RedisDB: -1})

	if cfg.NodeID != "flag-node" {
		t.Errorf("expected flag to win, got %q", cfg.NodeID)
	}
	if cfg.APIPort != "9090" {
		t.Errorf("expected env port, got %q", cfg.APIPort)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("expected env redis db, got %d", cfg.RedisDB)
	}
	if cfg.Store != StoreSQLite {
		t.Errorf("expected default store, got %q", cfg.Store)
	}
	if cfg.DBPath != "statistics.db" {
		t.Errorf("expected default db path, got %q", cfg.DBPath)
	}
}

func TestRuntimeConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         RuntimeConfig
		serve       bool
		expectField string
	}{
		{
			name: "sqlite ok",
			cfg:  RuntimeConfig{Store: StoreSQLite, DBPath: "x.db"},
		},
		{
			name:        "unknown store",
			cfg:         RuntimeConfig{Store: "mongo"},
			expectField: "store",
		},
		{
			name:        "redis without address",
			cfg:         RuntimeConfig{Store: StoreRedis},
			expectField: "redis-addr",
		},
		{
			name:        "bad node id",
			cfg:         RuntimeConfig{Store: StoreSQLite, DBPath: "x.db", NodeID: "a:b"},
			expectField: "node-id",
		},
		{
			name:        "serve without api key",
			cfg:         RuntimeConfig{Store: StoreSQLite, DBPath: "x.db"},
			serve:       true,
			expectField: "api-key",
		},
		{
			name:  "serve in dev mode",
			cfg:   RuntimeConfig{Store: StoreSQLite, DBPath: "x.db", DevMode: true},
			serve: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.serve {
				err = tt.cfg.ValidateServe()
			} else {
				err = tt.cfg.Validate()
			}

			if tt.expectField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if cfgErr.Field != tt.expectField {
				t.Errorf("expected field %q, got %q", tt.expectField, cfgErr.Field)
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	if LoadEnvFile(nopLogger{}, filepath.Join(t.TempDir(), "missing.env")) {
		t.Error("expected missing file not to load")
	}

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("HISTORIAN_TEST_ENV_VALUE=loaded\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HISTORIAN_TEST_ENV_VALUE", "")
	os.Unsetenv("HISTORIAN_TEST_ENV_VALUE")

	if !LoadEnvFile(nopLogger{}, path) {
		t.Fatal("expected file to load")
	}
	if got := os.Getenv("HISTORIAN_TEST_ENV_VALUE"); got != "loaded" {
		t.Errorf("expected loaded, got %q", got)
	}
}
