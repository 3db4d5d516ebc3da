// Package config loads the YAML settings file the CLI and daemon read at
// startup, resolving relative paths against the config file's own
// directory and filling in defaults after decode.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// LogSettings configures the rotating log sink.
type LogSettings struct {
	Directory  string `yaml:"directory"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
	MaxBackups int    `yaml:"maxBackups"`
	Compress   bool   `yaml:"compress"`
}

// FTPSettings configures delivery to one roaming partner's inbox.
type FTPSettings struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	RemoteDir string `yaml:"remoteDir"`
}

// Addr returns Host:Port, defaulting Port to ftp.DefaultPort when unset.
func (s FTPSettings) Addr() string {
	port := s.Port
	if port == 0 {
		port = 21
	}
	return fmt.Sprintf("%s:%d", s.Host, port)
}

// Settings is the fully-decoded, default-filled configuration for the
// validation daemon and CLI.
type Settings struct {
	Port           int                    `yaml:"port"`
	Concurrency    int                    `yaml:"concurrency"`
	StorageDir     string                 `yaml:"storageDir"`
	ManifestDir    string                 `yaml:"manifestDir"`
	EmissionLog    string                 `yaml:"emissionLog"`
	FTP            map[string]FTPSettings `yaml:"ftp"`
	Logs           LogSettings            `yaml:"logs"`
}

// FTPSettingsFor looks up the FTP destination configured for hub (normally
// the RAP recipient code), reporting whether one was found.
func (s Settings) FTPSettingsFor(hub string) (FTPSettings, bool) {
	v, ok := s.FTP[strings.TrimSpace(hub)]
	return v, ok
}

// Load reads and decodes the YAML file at path, resolving StorageDir,
// ManifestDir, and EmissionLog relative to path's own directory when they
// are given as relative paths, and filling in defaults for anything left
// unset.
func Load(path string) (Settings, error) {
	var cfg Settings
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}

	baseDir := filepath.Dir(path)
	resolve := func(p string) string {
		p = strings.TrimSpace(p)
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Clean(filepath.Join(baseDir, p))
	}

	if cfg.Port == 0 {
		cfg.Port = 8443
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = runtime.NumCPU()
	}
	if cfg.StorageDir == "" {
		cfg.StorageDir = filepath.Join(".", "data")
	}
	cfg.StorageDir = resolve(cfg.StorageDir)
	if cfg.ManifestDir == "" {
		cfg.ManifestDir = filepath.Join(cfg.StorageDir, "rap")
	} else {
		cfg.ManifestDir = resolve(cfg.ManifestDir)
	}
	if cfg.EmissionLog == "" {
		cfg.EmissionLog = filepath.Join(cfg.StorageDir, "emissions.jsonl")
	} else {
		cfg.EmissionLog = resolve(cfg.EmissionLog)
	}
	if cfg.Logs.Directory == "" {
		cfg.Logs.Directory = filepath.Join(cfg.StorageDir, "logs")
	} else {
		cfg.Logs.Directory = resolve(cfg.Logs.Directory)
	}
	if cfg.Logs.MaxSizeMB <= 0 {
		cfg.Logs.MaxSizeMB = 25
	}
	if cfg.Logs.MaxAgeDays <= 0 {
		cfg.Logs.MaxAgeDays = 7
	}
	if cfg.Logs.MaxBackups <= 0 {
		cfg.Logs.MaxBackups = 5
	}
	return cfg, nil
}
