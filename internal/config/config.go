// Package config handles loading and parsing application configuration.
// It supports two sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// Every value in the file can also be overridden by the environment
// variable named in its env:"..." tag.
package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
)

// Storage drivers.
const (
	DriverMongoDB = "mongodb"
	DriverSQLite  = "sqlite"
	DriverMemory  = "memory"
)

// Config is the root configuration structure.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	// HTTPServer is embedded so cfg.Addr works as well as cfg.HTTPServer.Addr.
	HTTPServer `yaml:"http_server"`

	Storage Storage `yaml:"storage"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`
}

// Storage selects and configures the document store.
type Storage struct {
	// Driver is one of "mongodb", "sqlite", "memory".
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"mongodb"`

	URI      string `yaml:"uri"      env:"MONGO_URI"      env-default:"mongodb://localhost:27017"`
	Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"course_db"`

	// Path is the SQLite database file, used by the sqlite driver only.
	Path string `yaml:"path" env:"STORAGE_PATH" env-default:"storage/course.db"`

	// Timeout bounds connecting to the store at startup.
	Timeout time.Duration `yaml:"timeout" env:"STORAGE_TIMEOUT" env-default:"10s"`
}

// Load reads the YAML file at path, applies environment overrides and
// defaults, and validates the result.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "checking config file '%s'", path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, errors.Wrap(err, "reading config")
	}

	switch cfg.Storage.Driver {
	case DriverMongoDB, DriverSQLite, DriverMemory:
	default:
		return nil, errors.Errorf("unknown storage driver '%s'", cfg.Storage.Driver)
	}

	return &cfg, nil
}

// MustLoad reads, validates, and returns the application config.
// It exits the process if anything is wrong.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %s", err.Error())
	}

	return cfg
}
