package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/dragdrop/pkg/errors"
)

// Format identifies a configuration file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported config extension %q (want .toml, .yaml, .yml or .json)", filepath.Ext(path))
	}
}

// Load reads, defaults and validates the configuration at path.
func Load(path string) (Config, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Config{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeNotFound, err, "open config %s", path)
	}
	defer f.Close()

	cfg, err := Read(f, format)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Read decodes a configuration from r, applies defaults and validates it.
// Decoding problems are reported as INVALID_FORMAT errors; semantic problems
// as an [errors.ConfigurationError].
func Read(r io.Reader, format Format) (Config, error) {
	var cfg Config
	if err := decode(r, format, &cfg); err != nil {
		return Config{}, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(r io.Reader, format Format, cfg *Config) error {
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(cfg)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return errors.New(errors.ErrCodeInvalidFormat, "unknown keys: %s", strings.Join(keys, ", "))
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			if err == io.EOF {
				return errors.New(errors.ErrCodeInvalidFormat, "empty yaml document")
			}
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	return nil
}
