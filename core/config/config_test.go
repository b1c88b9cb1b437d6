package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "CORS_ORIGINS", "MYSQL_HOST", "MYSQL_PORT", "MYSQL_DB",
		"MYSQL_USER", "MYSQL_PASSWORD", "MSSQL_DSN", "SECRET_KEY", "LOGO_PATH",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.HTTPPort != DefaultHTTPPort {
		t.Errorf("Expected default port %d, got %d", DefaultHTTPPort, cfg.HTTPPort)
	}
	if cfg.MySQLHost != DefaultMySQLHost || cfg.MySQLDB != DefaultMySQLDB {
		t.Errorf("Unexpected MySQL defaults: %s/%s", cfg.MySQLHost, cfg.MySQLDB)
	}
	if !cfg.UsingDevSecret() {
		t.Error("Expected dev secret when SECRET_KEY is unset")
	}
	if len(cfg.CORSOrigins) != 0 {
		t.Errorf("Expected no CORS origins, got %v", cfg.CORSOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate, got %v", err)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("MYSQL_HOST", "db.interno")
	t.Setenv("MYSQL_PORT", "3307")
	t.Setenv("SECRET_KEY", "segredo-de-producao")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg := Load()

	if cfg.HTTPPort != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.HTTPPort)
	}
	if cfg.MySQLHost != "db.interno" || cfg.MySQLPort != 3307 {
		t.Errorf("Unexpected MySQL settings: %s:%d", cfg.MySQLHost, cfg.MySQLPort)
	}
	if cfg.UsingDevSecret() {
		t.Error("Dev secret should not be in effect")
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://admin.example.com" {
		t.Errorf("Unexpected CORS origins: %v", cfg.CORSOrigins)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad http port", func(c *Config) { c.HTTPPort = 0 }, "PORT"},
		{"empty mysql host", func(c *Config) { c.MySQLHost = " " }, "MYSQL_HOST"},
		{"empty mysql db", func(c *Config) { c.MySQLDB = "" }, "MYSQL_DB"},
		{"empty mysql user", func(c *Config) { c.MySQLUser = "" }, "MYSQL_USER"},
		{"bad mysql port", func(c *Config) { c.MySQLPort = 70000 }, "MYSQL_PORT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				HTTPPort:  DefaultHTTPPort,
				MySQLHost: DefaultMySQLHost,
				MySQLPort: DefaultMySQLPort,
				MySQLDB:   DefaultMySQLDB,
				MySQLUser: DefaultMySQLUser,
			}
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	cfg := Config{
		MySQLHost: "localhost",
		MySQLPort: 3306,
		MySQLDB:   "relatorios_auth",
		MySQLUser: "root",
		MySQLPass: "p@ss/word",
	}

	dsn := cfg.MySQLDSN()
	if !strings.Contains(dsn, "@tcp(localhost:3306)/relatorios_auth") {
		t.Errorf("Unexpected DSN: %s", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Error("DSN must enable parseTime")
	}
	if strings.Contains(dsn, "p@ss/word") {
		t.Error("Password special characters must be escaped")
	}
}
