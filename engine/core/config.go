package core

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

/** @brief Defaults applied to every newly created static geometry. */
type GeometryConfig struct {
	/** @brief Upload pattern hint, "static" or "dynamic". */
	Usage string `toml:"usage"`
	/** @brief The attribute the vertex count is derived from. */
	MainAttribute string `toml:"main_attribute"`
	/** @brief Indicates if the index sequence is uploaded and used by the algorithms. */
	UseIndices bool `toml:"use_indices"`
}

/** @brief Settings of the asset manager. */
type AssetsConfig struct {
	/** @brief Directory watched for mesh files. */
	Directory string `toml:"directory"`
	/** @brief Capacity of the pending reload queue. */
	ReloadQueue int `toml:"reload_queue"`
}

/** @brief Settings of the geometry system. */
type RegistryConfig struct {
	/** @brief Max number of simultaneously registered geometries. */
	MaxGeometryCount uint32 `toml:"max_geometry_count"`
}

type Config struct {
	LogLevel string         `toml:"log_level"`
	Geometry GeometryConfig `toml:"geometry"`
	Assets   AssetsConfig   `toml:"assets"`
	Registry RegistryConfig `toml:"registry"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Geometry: GeometryConfig{
			Usage:         "static",
			MainAttribute: "position",
			UseIndices:    true,
		},
		Assets: AssetsConfig{
			Directory:   "assets/models",
			ReloadQueue: 64,
		},
		Registry: RegistryConfig{
			MaxGeometryCount: 4096,
		},
	}
}

// LoadConfig reads a TOML file. Keys missing from the file keep their default value.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrConfig, c.LogLevel)
	}
	switch c.Geometry.Usage {
	case "static", "dynamic":
	default:
		return fmt.Errorf("%w: unknown geometry.usage %q", ErrConfig, c.Geometry.Usage)
	}
	if len(c.Geometry.MainAttribute) == 0 {
		return fmt.Errorf("%w: geometry.main_attribute must not be empty", ErrConfig)
	}
	if c.Assets.ReloadQueue < 1 {
		return fmt.Errorf("%w: assets.reload_queue must be > 0", ErrConfig)
	}
	if c.Registry.MaxGeometryCount == 0 {
		return fmt.Errorf("%w: registry.max_geometry_count must be > 0", ErrConfig)
	}
	return nil
}

// Apply pushes the process wide parts of the configuration (log level) into effect.
func (c *Config) Apply() error {
	return SetLogLevel(c.LogLevel)
}
