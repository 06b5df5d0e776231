// Package config loads Flock Flow configuration files. A file is checked against the embedded
// JSON schema, decoded over the defaults, then validated field by field.
package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/plus3/flockflow/flock"
	"github.com/plus3/flockflow/game"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
})

// Window configures the desktop front-end.
type Window struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
}

type Config struct {
	Flock  flock.Settings `json:"flock"`
	Game   game.Config    `json:"game"`
	Window Window         `json:"window"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Flock: flock.DefaultSettings(),
		Game:  game.DefaultConfig(),
		Window: Window{
			Width:  1280,
			Height: 720,
			Title:  "Flock Flow",
		},
	}
}

// Load reads and validates the file at path. An empty path returns Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse validates data against the schema and decodes it over Default. Fields missing from
// data keep their default values.
func Parse(data []byte) (Config, error) {
	schema, err := compileSchema()
	if err != nil {
		return Config{}, fmt.Errorf("compile config schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return Config{}, fmt.Errorf("config schema: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the rules the schema cannot express, such as ordered bounds.
func (c Config) Validate() error {
	var errs []error
	if err := c.Flock.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("flock: %w", err))
	}
	if err := c.Game.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("game: %w", err))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	return errors.Join(errs...)
}

// Marshal renders c as indented JSON that Parse accepts.
func Marshal(c Config) ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
