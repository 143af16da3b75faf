package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
server:
  listen_addresses: "127.0.0.1, ::1"
  listen_port: 9191
file_server:
  listen_addresses: 0.0.0.0
  listen_port: 1337
  root: /srv/files
remote:
  nodes: "10.0.0.1:7311,10.0.0.2:7311"
log:
  level: debug
  format: json
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	servers, err := cfg.Server.Addrs()
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"127.0.0.1:9191", "[::1]:9191"}; !reflect.DeepEqual(servers, want) {
		t.Fatalf("server addrs = %v, want %v", servers, want)
	}

	files, err := cfg.FileServerAddrs()
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"0.0.0.0:1337"}; !reflect.DeepEqual(files, want) {
		t.Fatalf("file server addrs = %v, want %v", files, want)
	}
	if cfg.FileServer.Root != "/srv/files" {
		t.Fatalf("root = %q", cfg.FileServer.Root)
	}

	nodes, err := cfg.Remote.Addrs()
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 2 {
		t.Fatalf("nodes = %v", nodes)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("log = %+v", cfg.Log)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
[file_server]
listen_addresses = "127.0.0.1"
listen_port = 8088
root = "./public"

[log]
level = "warn"
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	addrs, err := cfg.FileServerAddrs()
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"127.0.0.1:8088"}; !reflect.DeepEqual(addrs, want) {
		t.Fatalf("addrs = %v, want %v", addrs, want)
	}
	if cfg.FileServer.Root != "./public" {
		t.Fatalf("root = %q", cfg.FileServer.Root)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("level = %q", cfg.Log.Level)
	}
}

func TestDefaults(t *testing.T) {
	path := writeConfig(t, "config.yaml", "log:\n  level: info\n")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	addrs, err := cfg.FileServerAddrs()
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"127.0.0.1:7311"}; !reflect.DeepEqual(addrs, want) {
		t.Fatalf("addrs = %v, want %v", addrs, want)
	}
}

func TestEnvOverride(t *testing.T) {
	path := writeConfig(t, "config.yaml", "file_server:\n  listen_port: 1337\n")
	t.Setenv("FILE_SERVER_ADDR", "127.0.0.1:0")
	t.Setenv("FILE_SERVER_ROOT", "/tmp/files")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	addrs, err := cfg.FileServerAddrs()
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"127.0.0.1:0"}; !reflect.DeepEqual(addrs, want) {
		t.Fatalf("addrs = %v, want %v", addrs, want)
	}
	if cfg.FileServer.Root != "/tmp/files" || cfg.Log.Level != "error" {
		t.Fatalf("overrides not applied: %+v %+v", cfg.FileServer, cfg.Log)
	}
}

func TestLoadUsesConfigPath(t *testing.T) {
	path := writeConfig(t, "custom.yaml", "file_server:\n  root: /data\n")
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FileServer.Root != "/data" {
		t.Fatalf("root = %q", cfg.FileServer.Root)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name      string
		config    *Config
		expectErr bool
	}{
		{"empty", &Config{}, false},
		{"valid", &Config{FileServer: &FileServer{ListenAddresses: "127.0.0.1", ListenPort: 80}}, false},
		{"bad ip", &Config{FileServer: &FileServer{ListenAddresses: "localhost"}}, true},
		{"bad port", &Config{Server: &Listen{ListenPort: 99999}}, true},
		{"bad addr override", &Config{FileServer: &FileServer{Addr: "nope"}}, true},
		{"bad node", &Config{Remote: &Remote{Nodes: "10.0.0.1"}}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.expectErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.expectErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadWithoutConfigFile(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("FILE_SERVER_ROOT", "/www")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FileServer == nil || cfg.FileServer.Root != "/www" {
		t.Fatalf("file server = %+v", cfg.FileServer)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
