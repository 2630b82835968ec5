package config

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/ini.v1"
)

// Sentinel errors for the four failure modes a lookup can hit. Callers
// distinguish them with errors.Is.
var (
	// ErrNotFound means the config file could not be located on disk.
	ErrNotFound = errors.New("config file not found")

	// ErrMalformed means the file exists but could not be parsed as ini.
	ErrMalformed = errors.New("config file malformed")

	// ErrMissingSection means the requested section does not exist.
	ErrMissingSection = errors.New("missing section")

	// ErrMissingKey means the requested key does not exist in the section.
	ErrMissingKey = errors.New("missing key")
)

// 📚 Config wraps a parsed ini file and remembers where it came from so it
// can be written back with Save.
type Config struct {
	path string
	file *ini.File
}

// Resolve determines which config file path to use. If envVar is non-empty,
// set in the environment, and names an existing file, that path wins.
// Otherwise path is used as given. Both empty is an error.
func Resolve(path, envVar string) (string, error) {
	if envVar != "" {
		if p, ok := os.LookupEnv(envVar); ok && p != "" {
			if _, err := os.Stat(p); err == nil {
				return p, nil
			}
		}
	}
	if path == "" {
		return "", errors.New("no config path given and no usable env var")
	}
	return path, nil
}

// 🎯 Load resolves the config file path (explicit path or env var fallback)
// and parses it. The file is read once; the returned Config never re-reads.
func Load(ctx context.Context, path string, envVar string) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	resolved, err := Resolve(path, envVar)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("path", resolved).Msg("loading config")

	if _, err := os.Stat(resolved); err != nil {
		return nil, errors.Errorf("%w: %s", ErrNotFound, resolved)
	}

	// AllowBooleanKeys permits bare keys with no value.
	file, err := ini.LoadSources(ini.LoadOptions{AllowBooleanKeys: true}, resolved)
	if err != nil {
		return nil, errors.Errorf("%w: %s: %s", ErrMalformed, resolved, err)
	}

	return &Config{path: resolved, file: file}, nil
}

// Path returns the resolved path this config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// HasSection reports whether the named section exists.
func (c *Config) HasSection(section string) bool {
	_, err := c.file.GetSection(section)
	return err == nil
}

// HasKey reports whether the key exists in the named section.
func (c *Config) HasKey(section, key string) bool {
	sec, err := c.file.GetSection(section)
	if err != nil {
		return false
	}
	return sec.HasKey(key)
}

// Sections returns the names of all sections in the file.
func (c *Config) Sections() []string {
	return c.file.SectionStrings()
}

// Keys returns the key names of the given section, in file order.
func (c *Config) Keys(section string) ([]string, error) {
	sec, err := c.section(section)
	if err != nil {
		return nil, err
	}
	return sec.KeyStrings(), nil
}

func (c *Config) section(section string) (*ini.Section, error) {
	sec, err := c.file.GetSection(section)
	if err != nil {
		return nil, errors.Errorf("%w: [%s] in %s", ErrMissingSection, section, c.path)
	}
	return sec, nil
}

func (c *Config) key(section, key string) (*ini.Key, error) {
	sec, err := c.section(section)
	if err != nil {
		return nil, err
	}
	k, err := sec.GetKey(key)
	if err != nil {
		return nil, errors.Errorf("%w: %q in [%s] in %s", ErrMissingKey, key, section, c.path)
	}
	return k, nil
}

// GetString returns the raw string value of a key.
func (c *Config) GetString(section, key string) (string, error) {
	k, err := c.key(section, key)
	if err != nil {
		return "", err
	}
	return k.String(), nil
}

// GetInt returns the value of a key parsed as an integer.
func (c *Config) GetInt(section, key string) (int, error) {
	k, err := c.key(section, key)
	if err != nil {
		return 0, err
	}
	v, err := k.Int()
	if err != nil {
		return 0, errors.Errorf("parsing %q in [%s] as int: %w", key, section, err)
	}
	return v, nil
}

// GetBool returns the value of a key parsed as a boolean.
func (c *Config) GetBool(section, key string) (bool, error) {
	k, err := c.key(section, key)
	if err != nil {
		return false, err
	}
	v, err := k.Bool()
	if err != nil {
		return false, errors.Errorf("parsing %q in [%s] as bool: %w", key, section, err)
	}
	return v, nil
}

// GetFloat returns the value of a key parsed as a float64.
func (c *Config) GetFloat(section, key string) (float64, error) {
	k, err := c.key(section, key)
	if err != nil {
		return 0, err
	}
	v, err := k.Float64()
	if err != nil {
		return 0, errors.Errorf("parsing %q in [%s] as float: %w", key, section, err)
	}
	return v, nil
}

// GetStringDefault returns the string value of a key, or def when the
// section or key is absent.
func (c *Config) GetStringDefault(section, key, def string) string {
	v, err := c.GetString(section, key)
	if err != nil {
		return def
	}
	return v
}

// GetIntDefault returns the integer value of a key, or def when the section
// or key is absent. A present but unparsable value is still an error.
func (c *Config) GetIntDefault(section, key string, def int) (int, error) {
	if !c.HasKey(section, key) {
		return def, nil
	}
	return c.GetInt(section, key)
}

// GetBoolDefault returns the boolean value of a key, or def when the
// section or key is absent. A present but unparsable value is still an
// error.
func (c *Config) GetBoolDefault(section, key string, def bool) (bool, error) {
	if !c.HasKey(section, key) {
		return def, nil
	}
	return c.GetBool(section, key)
}

// GetFloatDefault returns the float value of a key, or def when the section
// or key is absent. A present but unparsable value is still an error.
func (c *Config) GetFloatDefault(section, key string, def float64) (float64, error) {
	if !c.HasKey(section, key) {
		return def, nil
	}
	return c.GetFloat(section, key)
}

// Set writes a value into the in-memory config, creating the section and
// key as needed. Nothing touches disk until Save.
func (c *Config) Set(section, key, value string) {
	c.file.Section(section).Key(key).SetValue(value)
}

// Save writes the config back to the path it was loaded from. Comments and
// key order are preserved.
func (c *Config) Save() error {
	return c.SaveTo(c.path)
}

// SaveTo writes the config to the given path.
func (c *Config) SaveTo(path string) error {
	if err := c.file.SaveTo(path); err != nil {
		return errors.Errorf("saving config to %s: %w", path, err)
	}
	return nil
}
