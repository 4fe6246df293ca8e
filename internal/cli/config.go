package cli

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/toyz/attest/internal/errors"
)

// GeneratedFileName is the name of the registration file written into
// each package containing bind directives
const GeneratedFileName = "attest_bindings.go"

// Config holds the configuration for the CLI generator
type Config struct {
	// Directories is the list of directories to scan for annotated Go files
	Directories []string `yaml:"directories"`

	// ModuleName is the custom module name for imports
	// If empty, will be determined from go.mod file
	ModuleName string `yaml:"module"`

	// Target is the registration target expression used in the
	// generated init calls. Defaults to the shared method set.
	Target string `yaml:"target"`

	// Verbose enables detailed logging and error reporting
	Verbose bool `yaml:"verbose"`
}

// LoadConfigFile reads a YAML config file, typically .attest.yaml
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapConfigurationError(path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapConfigurationError(path, err)
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills in the zero-value fields
func (c *Config) ApplyDefaults() {
	if c.Target == "" {
		c.Target = "attest.DefaultMethodSet"
	}
	if len(c.Directories) == 0 {
		c.Directories = []string{"./..."}
	}
}
