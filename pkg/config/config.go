// Package config loads jsoncanvas settings from a TOML file.
//
// The default location follows the XDG base directory convention:
// $XDG_CONFIG_HOME/jsoncanvas/config.toml, falling back to
// ~/.config/jsoncanvas/config.toml. A missing default file is not an error;
// every setting has a default.
//
//	[decode]
//	allow_unknown_fields = false
//	reject_zero_size = false
//	validate_references = true
//
//	[encode]
//	indent = "\t"
//
//	[store]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//	read_timeout = "10s"
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/jsoncanvas/pkg/canvas"
	cerrors "github.com/matzehuels/jsoncanvas/pkg/errors"
)

const appName = "jsoncanvas"

// Store backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Backends lists the valid [Store.Backend] values.
var Backends = []string{BackendFile, BackendMemory, BackendRedis, BackendMongo}

// Config is the full configuration file.
type Config struct {
	Decode Decode `toml:"decode"`
	Encode Encode `toml:"encode"`
	Store  Store  `toml:"store"`
	Server Server `toml:"server"`
}

// Decode controls how documents are parsed.
type Decode struct {
	AllowUnknownFields bool `toml:"allow_unknown_fields"`
	RejectZeroSize     bool `toml:"reject_zero_size"`
	ValidateReferences bool `toml:"validate_references"`
}

// Options converts d into codec options.
func (d Decode) Options() canvas.DecodeOptions {
	return canvas.DecodeOptions{
		AllowUnknownFields: d.AllowUnknownFields,
		RejectZeroSize:     d.RejectZeroSize,
		ValidateReferences: d.ValidateReferences,
	}
}

// Encode controls how documents are written.
type Encode struct {
	// Indent is the per-level indent; empty writes the compact form.
	Indent string `toml:"indent"`
}

// Store selects and configures the canvas store backend.
type Store struct {
	Backend string `toml:"backend"`

	// file backend
	Dir string `toml:"dir"`

	// redis backend
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix"`

	// mongo backend
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Server configures the HTTP API.
type Server struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// Duration is a time.Duration written as a string such as "15s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file is present.
func Default() Config {
	dir, err := dataDir()
	if err != nil {
		dir = filepath.Join(".", appName)
	}
	return Config{
		Encode: Encode{Indent: "\t"},
		Store: Store{
			Backend:         BackendFile,
			Dir:             dir,
			RedisAddr:       "localhost:6379",
			RedisPrefix:     appName + ":canvas:",
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   appName,
			MongoCollection: "canvases",
		},
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  Duration{15 * time.Second},
			WriteTimeout: Duration{15 * time.Second},
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// dataDir returns the default file store directory (~/.local/share/jsoncanvas).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// Load reads the config file at path on top of [Default]. A missing file
// yields the defaults; use [LoadFile] when the file must exist.
func Load(path string) (Config, error) {
	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile reads the config file at path on top of [Default]. Keys the file
// sets that Config does not know are reported as an INVALID_CONFIG error, as
// is an unknown store backend.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, cerrors.Wrap(cerrors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

// Parse decodes TOML text on top of [Default] and validates the result.
func Parse(text string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that decoding alone cannot.
func (c Config) Validate() error {
	if !slices.Contains(Backends, c.Store.Backend) {
		return fmt.Errorf("store.backend %q: must be one of %s", c.Store.Backend, strings.Join(Backends, ", "))
	}
	if c.Store.Backend == BackendFile && c.Store.Dir == "" {
		return errors.New("store.dir must be set for the file backend")
	}
	if c.Server.ReadTimeout.Duration < 0 || c.Server.WriteTimeout.Duration < 0 {
		return errors.New("server timeouts must not be negative")
	}
	return nil
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
