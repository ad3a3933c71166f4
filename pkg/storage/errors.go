package storage

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// Sentinel errors for storage operations.
var (
	// Configuration errors.
	ErrInvalidConfig = errors.New("storage: invalid configuration")

	// Name errors.
	ErrInvalidName = errors.New("storage: invalid resource name")

	// Resource errors.
	ErrNotFound     = errors.New("storage: resource not found")
	ErrReadOnly     = errors.New("storage: store is read-only")
	ErrTooLarge     = errors.New("storage: resource exceeds size limit")
	ErrAccessDenied = errors.New("storage: access denied")
	ErrSaveFailed   = errors.New("storage: save failed")
	ErrDeleteFailed = errors.New("storage: delete failed")
)

// wrapS3Error maps S3 errors onto the sentinel errors.
// The original error is formatted with %v so callers match on sentinels,
// not on AWS types.
func wrapS3Error(err error, fallback error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
	}

	var notFound *types.NoSuchKey
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	return fmt.Errorf("%w: %v", fallback, err)
}
