package storage

import (
	"context"
	"io"
	"path"
	"strings"
)

// Reader opens named catalog resources.
type Reader interface {
	// Open returns the contents of the named resource.
	// It returns an error matching ErrNotFound when the resource does not exist.
	// The caller is responsible for closing the returned reader.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// Storage is a Reader that can also write and remove resources.
type Storage interface {
	Reader

	// Save stores the contents of r under name, replacing any previous value.
	Save(ctx context.Context, name string, r io.Reader) error

	// Delete removes the named resource. Deleting a missing resource is not
	// an error.
	Delete(ctx context.Context, name string) error
}

// Config holds S3-compatible storage configuration.
type Config struct {
	// Bucket is the S3 bucket name (required).
	Bucket string `env:"BUCKET" yaml:"bucket"`

	// AccessKey is the AWS access key ID (required).
	AccessKey string `env:"ACCESS_KEY" yaml:"access_key"`

	// SecretKey is the AWS secret access key (required).
	SecretKey string `env:"SECRET_KEY" yaml:"secret_key"`

	// Endpoint is a custom endpoint URL for MinIO and other S3-compatible services.
	Endpoint string `env:"ENDPOINT" yaml:"endpoint"`

	// Region is the AWS region (default: us-east-1).
	Region string `env:"REGION" yaml:"region"`

	// Prefix is prepended to every resource name, e.g. "i18n/".
	Prefix string `env:"PREFIX" yaml:"prefix"`

	// PathStyle enables path-style URLs (required for MinIO).
	PathStyle bool `env:"PATH_STYLE" yaml:"path_style"`

	// MaxObjectSize caps the size of a single resource in bytes (default: 8MB).
	MaxObjectSize int64 `env:"MAX_OBJECT_SIZE" yaml:"max_object_size"`
}

// Default configuration values.
const (
	DefaultRegion        = "us-east-1"
	DefaultMaxObjectSize = 8 << 20 // 8MB
)

// applyDefaults fills in default values for empty config fields.
func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.MaxObjectSize == 0 {
		c.MaxObjectSize = DefaultMaxObjectSize
	}
}

// validate checks that required configuration fields are set.
func (c *Config) validate() error {
	if c.Bucket == "" || c.AccessKey == "" || c.SecretKey == "" {
		return ErrInvalidConfig
	}
	return nil
}

// cleanName validates a resource name and returns its canonical form.
// Names are slash-separated and relative; they may not escape the store root.
func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsRune(name, 0) || strings.Contains(name, `\`) {
		return "", ErrInvalidName
	}

	cleaned := path.Clean(name)
	if path.IsAbs(cleaned) || cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidName
	}

	return cleaned, nil
}
