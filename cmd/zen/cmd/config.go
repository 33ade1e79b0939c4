package cmd

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config is zen's CLI configuration: backend choice and the
// depth/exhaustiveness knobs spec.md §4.5 calls
// depthConfiguration{depth, exhaustive}, plus whether a query is
// simplified before it is handed to the solver. Loadable from a YAML
// file via --config, with every field individually overridable by its
// matching CLI flag.
type Config struct {
	Backend    string `yaml:"backend"`
	Depth      int    `yaml:"depth"`
	Exhaustive bool   `yaml:"exhaustive"`
	Simplify   bool   `yaml:"simplify"`
}

const defaultDepth = 2

// applyDefaults fills in zero-valued fields a config file and the CLI
// flags both left unset.
func applyDefaults(c *Config) {
	if c.Backend == "" {
		c.Backend = "bdd"
	}
	if c.Depth == 0 {
		c.Depth = defaultDepth
	}
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}
