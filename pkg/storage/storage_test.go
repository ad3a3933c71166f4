package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/require"
)

func TestConfig_applyDefaults(t *testing.T) {
	t.Parallel()

	t.Run("empty config gets defaults", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{}
		cfg.applyDefaults()

		require.Equal(t, DefaultRegion, cfg.Region)
		require.Equal(t, int64(DefaultMaxObjectSize), cfg.MaxObjectSize)
	})

	t.Run("existing values preserved", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{Region: "eu-west-1", MaxObjectSize: 1 << 10}
		cfg.applyDefaults()

		require.Equal(t, "eu-west-1", cfg.Region)
		require.Equal(t, int64(1<<10), cfg.MaxObjectSize)
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		store, err := New(Config{
			Bucket:    "catalogs",
			AccessKey: "test-access-key",
			SecretKey: "test-secret-key",
			Endpoint:  "http://localhost:9000",
			PathStyle: true,
		})
		require.NoError(t, err)
		require.NotNil(t, store.client)
		require.Equal(t, DefaultRegion, store.cfg.Region)
	})

	t.Run("missing credentials", func(t *testing.T) {
		t.Parallel()
		store, err := New(Config{Bucket: "catalogs"})
		require.ErrorIs(t, err, ErrInvalidConfig)
		require.Nil(t, store)
	})
}

func TestS3Storage_key(t *testing.T) {
	t.Parallel()

	s := &S3Storage{cfg: Config{Prefix: "/i18n/"}}

	key, err := s.key("messages_de.properties")
	require.NoError(t, err)
	require.Equal(t, "i18n/messages_de.properties", key)

	_, err = s.key("../secrets")
	require.ErrorIs(t, err, ErrInvalidName)

	s.cfg.Prefix = ""
	key, err = s.key("nested/./messages.properties")
	require.NoError(t, err)
	require.Equal(t, "nested/messages.properties", key)
}

func TestCleanName(t *testing.T) {
	t.Parallel()

	valid := map[string]string{
		"messages.properties":       "messages.properties",
		" messages_en.properties ":  "messages_en.properties",
		"i18n/messages.properties":  "i18n/messages.properties",
		"i18n//a/../b.properties":   "i18n/b.properties",
		"messages_fr__X.properties": "messages_fr__X.properties",
	}
	for in, want := range valid {
		got, err := cleanName(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "  ", ".", "..", "../x", "/etc/passwd", `a\b`, "a\x00b", "a/../../b"} {
		_, err := cleanName(in)
		require.ErrorIs(t, err, ErrInvalidName, "%q", in)
	}
}

func TestContentType(t *testing.T) {
	t.Parallel()

	require.Equal(t, "text/x-java-properties; charset=utf-8", contentType("a/messages.properties"))
	require.Equal(t, "application/yaml", contentType("messages.yml"))
	require.Equal(t, "application/octet-stream", contentType("blob"))
}

// mockAPIError implements smithy.APIError for testing.
type mockAPIError struct {
	code    string
	message string
}

func (e *mockAPIError) ErrorCode() string             { return e.code }
func (e *mockAPIError) ErrorMessage() string          { return e.message }
func (e *mockAPIError) ErrorFault() smithy.ErrorFault { return smithy.FaultUnknown }
func (e *mockAPIError) Error() string                 { return fmt.Sprintf("%s: %s", e.code, e.message) }

func TestWrapS3Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		fallback error
		want     error
	}{
		{"NoSuchKey code", &mockAPIError{code: "NoSuchKey"}, ErrSaveFailed, ErrNotFound},
		{"NotFound code", &mockAPIError{code: "NotFound"}, ErrSaveFailed, ErrNotFound},
		{"AccessDenied code", &mockAPIError{code: "AccessDenied"}, ErrSaveFailed, ErrAccessDenied},
		{"Forbidden code", &mockAPIError{code: "Forbidden"}, ErrDeleteFailed, ErrAccessDenied},
		{"NoSuchKey typed error", &types.NoSuchKey{}, ErrSaveFailed, ErrNotFound},
		{"unknown code", &mockAPIError{code: "SlowDown"}, ErrDeleteFailed, ErrDeleteFailed},
		{"plain error", errors.New("boom"), ErrSaveFailed, ErrSaveFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.ErrorIs(t, wrapS3Error(tt.err, tt.fallback), tt.want)
		})
	}
}
