package cli

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/matzehuels/mindmup/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configFile)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig() = %+v, want defaults", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
link_color = "#00F"
line_style = "solid"
auto_increment = false
lenient = true
store_dir = "/srv/maps"
listen = ":9000"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := DefaultConfig()
	want.LinkColor = "#00F"
	want.LineStyle = "solid"
	want.AutoIncrement = false
	want.Lenient = true
	want.StoreDir = "/srv/maps"
	want.Listen = ":9000"
	if cfg != want {
		t.Errorf("LoadConfig() = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfigDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	os.MkdirAll(filepath.Join(home, appName), 0755)
	os.WriteFile(filepath.Join(home, appName, configFile), []byte(`redis_addr = "localhost:6379"`), 0644)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q, want value from default location", cfg.RedisAddr)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    apperrors.Code
	}{
		{"unknown key", `colour = "#fff"`, apperrors.ErrCodeInvalidInput},
		{"bad syntax", `link_color = `, apperrors.ErrCodeInvalidInput},
		{"bad color", `link_color = "red"`, apperrors.ErrCodeInvalidStyle},
		{"bad line style", `line_style = "dotted"`, apperrors.ErrCodeInvalidStyle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if got := apperrors.GetCode(err); got != tt.code {
				t.Errorf("LoadConfig() error = %v (code %q), want code %q", err, got, tt.code)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("explicit missing config should fail")
	}
}
