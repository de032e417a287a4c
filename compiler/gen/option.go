package gen

import (
	"go/token"
	"runtime"

	"github.com/syssam/entityreader"
)

// DefaultHeader is the header of generated files.
const DefaultHeader = "Code generated by entityreader. DO NOT EDIT."

// Config holds generator settings.
type Config struct {
	// Package is the name of the generated package.
	// Defaults to the base name of the output directory.
	Package string
	// Header is the comment placed above the package clause.
	Header string
	// Workers bounds the number of files rendered concurrently.
	Workers int
}

// Option configures code generation.
type Option func(*Config) error

// WithPackage sets the generated package name.
func WithPackage(name string) Option {
	return func(c *Config) error {
		if !token.IsIdentifier(name) {
			return entityreader.NewConfigError("Package", name, "package name must be a Go identifier")
		}
		c.Package = name
		return nil
	}
}

// WithHeader sets the file header comment.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithWorkers sets the number of parallel workers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return entityreader.NewConfigError("Workers", n, "workers must be at least 1")
		}
		c.Workers = n
		return nil
	}
}

func defaultConfig() Config {
	return Config{Header: DefaultHeader, Workers: runtime.GOMAXPROCS(0)}
}
