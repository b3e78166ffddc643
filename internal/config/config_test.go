package config

import (
	"os"
	"path/filepath"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/aidant/internal/keyring"
)

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "aidant.env")
	content := "AIDANT_TEST_FROM_FILE=fichier\nAIDANT_TEST_PRESET=fichier\n"
	if err := os.WriteFile(envPath, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	t.Setenv("AIDANT_TEST_PRESET", "environnement")
	t.Setenv("AIDANT_TEST_FROM_FILE", "")
	os.Unsetenv("AIDANT_TEST_FROM_FILE")

	loaded := LoadEnvFiles(filepath.Join(dir, "missing.env"), envPath)
	if len(loaded) != 1 || loaded[0] != envPath {
		t.Fatalf("LoadEnvFiles() loaded = %v, want [%s]", loaded, envPath)
	}
	if got := os.Getenv("AIDANT_TEST_FROM_FILE"); got != "fichier" {
		t.Errorf("AIDANT_TEST_FROM_FILE = %q, want fichier", got)
	}
	if got := os.Getenv("AIDANT_TEST_PRESET"); got != "environnement" {
		t.Errorf("existing variable overridden: %q", got)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvConfig, "/tmp/aidant.json")
	t.Setenv(EnvDebug, "oui")
	t.Setenv(EnvDocsDir, "")

	cfg := Load()
	if cfg.Path != "/tmp/aidant.json" {
		t.Errorf("Path = %q", cfg.Path)
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true for \"oui\"")
	}
	if cfg.DocsDir != "." {
		t.Errorf("DocsDir = %q, want .", cfg.DocsDir)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := []struct {
		in   string
		want string
	}{
		{"~/.config/aidant/aidant.db", filepath.Join(home, ".config/aidant/aidant.db")},
		{"/var/lib/aidant.db", "/var/lib/aidant.db"},
		{"relative.db", "relative.db"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConfigDir(t *testing.T) {
	if got := ConfigDir("/data/aidant/aidant.db"); got != "/data/aidant" {
		t.Errorf("ConfigDir(file) = %q", got)
	}
	if got := ConfigDir("postgres://user@localhost/aidant"); got == "" || IsPostgres(got) {
		t.Errorf("ConfigDir(postgres) = %q, want local directory", got)
	}
}

func TestResolveConnectionString(t *testing.T) {
	gokeyring.MockInit()
	t.Setenv(EnvDBConnection, "")

	const flag = "postgres://user@localhost/aidant"
	if got := ResolveConnectionString(flag); got != flag {
		t.Errorf("without keyring = %q, want flag value", got)
	}

	if err := keyring.SetConnectionString("postgres://user:pw@localhost/aidant"); err != nil {
		t.Fatalf("SetConnectionString() error = %v", err)
	}
	if got := ResolveConnectionString(flag); got != "postgres://user:pw@localhost/aidant" {
		t.Errorf("with keyring = %q", got)
	}

	t.Setenv(EnvDBConnection, "postgres://env@localhost/aidant")
	if got := ResolveConnectionString(flag); got != "postgres://env@localhost/aidant" {
		t.Errorf("with env = %q", got)
	}
}
