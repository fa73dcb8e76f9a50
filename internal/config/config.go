package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const FileName = "kanban.yml"

// Config models kanban.yml.
type Config struct {
	Server struct {
		Addr        string   `yaml:"addr"`
		BasePath    string   `yaml:"base_path"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Storage struct {
		Driver string `yaml:"driver"`
		Mongo  struct {
			URI            string        `yaml:"uri"`
			Database       string        `yaml:"database"`
			ConnectTimeout time.Duration `yaml:"connect_timeout"`
		} `yaml:"mongo"`
		SQLite struct {
			Workspace string `yaml:"workspace"`
		} `yaml:"sqlite"`
		Collections struct {
			Tasks    string `yaml:"tasks"`
			Projects string `yaml:"projects"`
		} `yaml:"collections"`
	} `yaml:"storage"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.Server.Addr = "127.0.0.1:8000"
	cfg.Server.CORSOrigins = []string{"*"}
	cfg.Storage.Driver = "mongo"
	cfg.Storage.Mongo.URI = "mongodb://localhost:27017"
	cfg.Storage.Mongo.Database = "kanaban_board"
	cfg.Storage.Mongo.ConnectTimeout = 10 * time.Second
	cfg.Storage.SQLite.Workspace = "."
	cfg.Storage.Collections.Tasks = "task"
	cfg.Storage.Collections.Projects = "projects"
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	return &cfg
}

// Validate ensures the config meets required structure.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("config.server.addr is required")
	}
	if c.Server.BasePath != "" && !strings.HasPrefix(c.Server.BasePath, "/") {
		return fmt.Errorf("config.server.base_path must start with /")
	}
	switch c.Storage.Driver {
	case "mongo":
		if c.Storage.Mongo.URI == "" {
			return fmt.Errorf("config.storage.mongo.uri is required for the mongo driver")
		}
		if c.Storage.Mongo.Database == "" {
			return fmt.Errorf("config.storage.mongo.database is required for the mongo driver")
		}
		if c.Storage.Mongo.ConnectTimeout < 0 {
			return fmt.Errorf("config.storage.mongo.connect_timeout must not be negative")
		}
	case "sqlite":
	default:
		return fmt.Errorf("config.storage.driver must be 'mongo' or 'sqlite', got %q", c.Storage.Driver)
	}
	if c.Storage.Collections.Tasks == "" || c.Storage.Collections.Projects == "" {
		return fmt.Errorf("config.storage.collections.tasks and .projects are required")
	}
	if c.Storage.Collections.Tasks == c.Storage.Collections.Projects {
		return fmt.Errorf("config.storage.collections must name two different collections")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config.log.format must be 'text' or 'json', got %q", c.Log.Format)
	}
	return nil
}

// Path returns the config file path for a workspace.
func Path(workspace string) string {
	if workspace == "" {
		workspace = "."
	}
	return filepath.Join(workspace, FileName)
}

// Load reads kanban.yml from workspace, falling back to Default when absent.
func Load(workspace string) (*Config, error) {
	data, err := os.ReadFile(Path(workspace))
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return FromYAML(data)
}

// FromYAML parses config from raw YAML bytes over the defaults and validates it.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overlay copies keys explicitly set through flags or KANBAN_* environment
// variables over the file values, then revalidates.
func (c *Config) Overlay(v *viper.Viper) error {
	if v.IsSet("addr") {
		c.Server.Addr = v.GetString("addr")
	}
	if v.IsSet("base-path") {
		c.Server.BasePath = v.GetString("base-path")
	}
	if v.IsSet("cors-origins") {
		c.Server.CORSOrigins = v.GetStringSlice("cors-origins")
	}
	if v.IsSet("storage-driver") {
		c.Storage.Driver = v.GetString("storage-driver")
	}
	if v.IsSet("mongo-uri") {
		c.Storage.Mongo.URI = v.GetString("mongo-uri")
	}
	if v.IsSet("mongo-database") {
		c.Storage.Mongo.Database = v.GetString("mongo-database")
	}
	if v.IsSet("workspace") {
		c.Storage.SQLite.Workspace = v.GetString("workspace")
	}
	if v.IsSet("log-level") {
		c.Log.Level = v.GetString("log-level")
	}
	if v.IsSet("log-format") {
		c.Log.Format = v.GetString("log-format")
	}
	return c.Validate()
}

// Sample is a commented kanban.yml matching Default.
const Sample = `server:
  addr: 127.0.0.1:8000
  base_path: ""
  cors_origins: ["*"]

storage:
  driver: mongo            # mongo | sqlite
  mongo:
    uri: mongodb://localhost:27017
    database: kanaban_board
    connect_timeout: 10s
  sqlite:
    workspace: .           # database lives in <workspace>/.kanban/kanban.db
  collections:
    tasks: task
    projects: projects

log:
  level: info              # logrus level name
  format: text             # text | json
`
