package config

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultListenAddress = "127.0.0.1"
	DefaultListenPort    = 7311
)

type Config struct {
	Server     *Listen     `yaml:"server" json:"server,omitempty"`
	FileServer *FileServer `yaml:"file_server" json:"file_server,omitempty"`
	Remote     *Remote     `yaml:"remote" json:"remote,omitempty"`
	Log        Log         `yaml:"log" json:"log"`
}

// Listen описывает, где слушает сервис: адреса через запятую и общий порт.
type Listen struct {
	ListenAddresses string `yaml:"listen_addresses" json:"listen_addresses"`
	ListenPort      int    `yaml:"listen_port" json:"listen_port"`
}

type FileServer struct {
	ListenAddresses string `yaml:"listen_addresses" json:"listen_addresses"`
	ListenPort      int    `yaml:"listen_port" json:"listen_port"`
	Root            string `yaml:"root" json:"root"`
	// Addr, если задан, заменяет listen_addresses/listen_port целиком.
	Addr string `yaml:"-" json:"addr,omitempty"`
}

type Remote struct {
	Nodes string `yaml:"nodes" json:"nodes"`
}

type Log struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

const defaultConfigPath = "./config.yaml"

// Load читает конфигурацию из CONFIG_PATH, применяет ENV-переопределения и валидирует результат.
// Если CONFIG_PATH не задан и ./config.yaml отсутствует, берутся значения по умолчанию.
func Load() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path != "" {
		return LoadFile(path)
	}

	if _, err := os.Stat(defaultConfigPath); errors.Is(err, os.ErrNotExist) {
		var c Config
		c.applyEnv()
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return &c, nil
	}

	return LoadFile(defaultConfigPath)
}

// LoadFile читает YAML- или TOML-файл (по расширению) и применяет ENV-переопределения.
func LoadFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var c Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		decoder := toml.NewDecoder(bytes.NewReader(b)).SetTagName("yaml")
		if err := decoder.Decode(&c); err != nil {
			return nil, errors.Wrap(err, "failed to decode TOML config")
		}
	default:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, errors.Wrap(err, "failed to decode YAML config")
		}
	}

	c.applyEnv()

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("FILE_SERVER_ADDR"); v != "" {
		c.fileServer().Addr = v
	}
	if v := os.Getenv("FILE_SERVER_ROOT"); v != "" {
		c.fileServer().Root = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
}

func (c *Config) fileServer() *FileServer {
	if c.FileServer == nil {
		c.FileServer = &FileServer{}
	}
	return c.FileServer
}

// Validate проверяет адреса, порты и узлы.
func (c *Config) Validate() error {
	if c.Server != nil {
		if _, err := c.Server.Addrs(); err != nil {
			return errors.Wrap(err, "server")
		}
	}
	if c.FileServer != nil {
		if _, err := c.FileServer.Addrs(); err != nil {
			return errors.Wrap(err, "file_server")
		}
	}
	if c.Remote != nil {
		if _, err := c.Remote.Addrs(); err != nil {
			return errors.Wrap(err, "remote")
		}
	}

	return nil
}

// FileServerAddrs возвращает адреса файлового сервера вида host:port.
// Без секции file_server используется адрес по умолчанию.
func (c *Config) FileServerAddrs() ([]string, error) {
	if c.FileServer == nil {
		return (&Listen{}).Addrs()
	}
	return c.FileServer.Addrs()
}

// Addrs раскрывает listen_addresses и listen_port в список host:port.
func (l *Listen) Addrs() ([]string, error) {
	ips := splitComma(l.ListenAddresses)
	if len(ips) == 0 {
		ips = []string{DefaultListenAddress}
	}

	port := l.ListenPort
	if port == 0 {
		port = DefaultListenPort
	}
	if port < 0 || port > 65535 {
		return nil, fmt.Errorf("invalid listen_port: %d", port)
	}

	out := make([]string, 0, len(ips))
	for _, ip := range ips {
		if net.ParseIP(ip) == nil {
			return nil, fmt.Errorf("invalid listen address: %q", ip)
		}
		out = append(out, net.JoinHostPort(ip, strconv.Itoa(port)))
	}

	return out, nil
}

// Addrs для файлового сервера учитывает переопределение FILE_SERVER_ADDR.
func (f *FileServer) Addrs() ([]string, error) {
	if f.Addr != "" {
		if _, _, err := net.SplitHostPort(f.Addr); err != nil {
			return nil, fmt.Errorf("invalid addr %q: %w", f.Addr, err)
		}
		return []string{f.Addr}, nil
	}
	l := Listen{ListenAddresses: f.ListenAddresses, ListenPort: f.ListenPort}
	return l.Addrs()
}

// Addrs возвращает узлы кластера вида host:port.
func (r *Remote) Addrs() ([]string, error) {
	nodes := splitComma(r.Nodes)
	for _, n := range nodes {
		if _, _, err := net.SplitHostPort(n); err != nil {
			return nil, fmt.Errorf("invalid node %q: %w", n, err)
		}
	}
	return nodes, nil
}

func splitComma(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
