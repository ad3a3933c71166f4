package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Storage keeps catalog resources in an S3-compatible bucket.
type S3Storage struct {
	client *s3.Client
	cfg    Config
}

// New creates a new S3Storage with the given configuration.
func New(cfg Config) (*S3Storage, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			o.Credentials = credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			)
		},
	}

	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return &S3Storage{
		client: s3.New(s3.Options{}, opts...),
		cfg:    cfg,
	}, nil
}

// Open downloads the named object.
func (s *S3Storage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key, err := s.key(name)
	if err != nil {
		return nil, err
	}

	output, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrNotFound)
	}

	if output.ContentLength != nil && *output.ContentLength > s.cfg.MaxObjectSize {
		_ = output.Body.Close()
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, key, *output.ContentLength)
	}

	return output.Body, nil
}

// Save uploads r as the named object.
func (s *S3Storage) Save(ctx context.Context, name string, r io.Reader) error {
	key, err := s.key(name)
	if err != nil {
		return err
	}

	data, err := io.ReadAll(io.LimitReader(r, s.cfg.MaxObjectSize+1))
	if err != nil {
		return fmt.Errorf("%w: reading input: %v", ErrSaveFailed, err)
	}
	if int64(len(data)) > s.cfg.MaxObjectSize {
		return ErrTooLarge
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType(key)),
	})
	if err != nil {
		return wrapS3Error(err, ErrSaveFailed)
	}

	return nil
}

// Delete removes the named object.
func (s *S3Storage) Delete(ctx context.Context, name string) error {
	key, err := s.key(name)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return wrapS3Error(err, ErrDeleteFailed)
	}

	return nil
}

// key maps a resource name onto an object key under the configured prefix.
func (s *S3Storage) key(name string) (string, error) {
	cleaned, err := cleanName(name)
	if err != nil {
		return "", err
	}

	prefix := strings.Trim(s.cfg.Prefix, "/")
	if prefix == "" {
		return cleaned, nil
	}
	return prefix + "/" + cleaned, nil
}

// contentType picks the MIME type recorded with an uploaded catalog.
func contentType(key string) string {
	switch {
	case strings.HasSuffix(key, ".properties"):
		return "text/x-java-properties; charset=utf-8"
	case strings.HasSuffix(key, ".yaml"), strings.HasSuffix(key, ".yml"):
		return "application/yaml"
	}
	return "application/octet-stream"
}

var _ Storage = (*S3Storage)(nil)
