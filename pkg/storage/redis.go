package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps each resource as a string value under "{prefix}:{name}".
type RedisStorage struct {
	client  redis.UniversalClient
	prefix  string
	maxSize int64
}

// NewRedis creates a store over client. The client should be obtained from
// pkg/redis.Open. An empty prefix stores names as plain keys.
func NewRedis(client redis.UniversalClient, prefix string) *RedisStorage {
	return &RedisStorage{
		client:  client,
		prefix:  prefix,
		maxSize: DefaultMaxObjectSize,
	}
}

// Open reads the named value.
func (s *RedisStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key, err := s.key(name)
	if err != nil {
		return nil, err
	}

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, err
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// Save stores r under name without expiration.
func (s *RedisStorage) Save(ctx context.Context, name string, r io.Reader) error {
	key, err := s.key(name)
	if err != nil {
		return err
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return fmt.Errorf("%w: reading input: %v", ErrSaveFailed, err)
	}
	if int64(len(data)) > s.maxSize {
		return ErrTooLarge
	}

	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	return nil
}

// Delete removes the named value.
func (s *RedisStorage) Delete(ctx context.Context, name string) error {
	key, err := s.key(name)
	if err != nil {
		return err
	}

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}
	return nil
}

func (s *RedisStorage) key(name string) (string, error) {
	cleaned, err := cleanName(name)
	if err != nil {
		return "", err
	}
	if s.prefix == "" {
		return cleaned, nil
	}
	return s.prefix + ":" + cleaned, nil
}

var _ Storage = (*RedisStorage)(nil)
