package gen

import (
	"errors"
	"strings"
	"unicode"
)

// Option configures code generation.
type Option func(*Config) error

// WithGroupID sets the Maven group identifier of the emitted project.
func WithGroupID(id string) Option {
	return func(c *Config) error {
		if id == "" {
			return NewConfigError("GroupID", nil, "group id cannot be empty")
		}
		if !validPackage(id) {
			return NewConfigError("GroupID", id, "group id must be dot-separated identifiers")
		}
		c.GroupID = id
		return nil
	}
}

// WithArtifactID sets the Maven artifact identifier. It also names the
// project directory inside download archives.
func WithArtifactID(id string) Option {
	return func(c *Config) error {
		if id == "" {
			return NewConfigError("ArtifactID", nil, "artifact id cannot be empty")
		}
		c.ArtifactID = id
		return nil
	}
}

// WithBasePackage sets the Java package the sources are emitted under.
// For example: "com.acme.shop".
func WithBasePackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("BasePackage", nil, "base package cannot be empty")
		}
		if !validPackage(pkg) {
			return NewConfigError("BasePackage", pkg, "base package must be dot-separated identifiers")
		}
		c.BasePackage = pkg
		return nil
	}
}

// WithAppName sets the bootstrap class name of the emitted project.
func WithAppName(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return NewConfigError("AppName", nil, "application class name cannot be empty")
		}
		c.AppName = ToPascal(Sanitize(name, "Application"))
		return nil
	}
}

// WithServerPort sets the port written into the emitted runtime
// configuration.
func WithServerPort(port int) Option {
	return func(c *Config) error {
		if port < 1 || port > 65535 {
			return NewConfigError("ServerPort", port, "port must be between 1 and 65535")
		}
		c.ServerPort = port
		return nil
	}
}

// WithWorkers bounds the parallel artifact rendering.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewConfigError("Workers", n, "worker count must be positive")
		}
		c.Workers = n
		return nil
	}
}

// validPackage reports whether s is a dot-separated sequence of non-empty
// identifier segments, as required for Java package and group names.
func validPackage(s string) bool {
	for _, seg := range strings.Split(s, ".") {
		if seg == "" {
			return false
		}
		for i, r := range seg {
			if unicode.IsLetter(r) || r == '_' || (i > 0 && unicode.IsDigit(r)) {
				continue
			}
			return false
		}
	}
	return true
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
