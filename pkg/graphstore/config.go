package graphstore

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/angraph/angraph/pkg/errors"
)

// Config holds the Neo4j connection settings.
//
// Settings are resolved in order: defaults, then an optional TOML file,
// then environment variables. The password is only ever read from the
// environment so it never ends up in a checked-in config file.
type Config struct {
	URI      string `toml:"uri"`
	Username string `toml:"username"`
	Database string `toml:"database"`
	Password string `toml:"-"`
}

// LoadConfig resolves the store configuration. A .env file in the working
// directory is loaded first when present (missing is fine); tomlPath may
// name an optional TOML file whose values sit below the environment.
//
// A missing password is a fatal configuration error: both pipelines refuse
// to start without credentials.
func LoadConfig(tomlPath string) (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		URI:      "bolt://localhost:7687",
		Username: "neo4j",
	}

	if tomlPath != "" {
		if _, err := toml.DecodeFile(tomlPath, &cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", tomlPath)
		}
	}

	if v := os.Getenv("NEO4J_URI"); v != "" {
		cfg.URI = v
	}
	if v := os.Getenv("NEO4J_USER"); v != "" {
		cfg.Username = v
	}
	if v := os.Getenv("NEO4J_DATABASE"); v != "" {
		cfg.Database = v
	}
	cfg.Password = os.Getenv("NEO4J_PASSWORD")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.URI == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "NEO4J_URI is required")
	}
	if c.Password == "" {
		return errors.New(errors.ErrCodeConfigMissingPassword, "NEO4J_PASSWORD environment variable not set")
	}
	return nil
}

// Redacted returns a loggable description of the target without the password.
func (c Config) Redacted() string {
	db := c.Database
	if db == "" {
		db = "default"
	}
	return fmt.Sprintf("%s (user=%s db=%s)", c.URI, c.Username, db)
}
