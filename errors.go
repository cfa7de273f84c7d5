package mdlocal

import "errors"

// Sentinel errors for library operations.
var (
	// Pre-flight errors. Nothing is fetched or written when one is returned.
	ErrInputNotFound = errors.New("input file not found")
	ErrOutputExists  = errors.New("output file already exists")
	ErrEmptyMediaDir = errors.New("media directory cannot be empty")

	// ErrStorage wraps failures creating the media directory or writing an asset.
	ErrStorage = errors.New("storage error")

	// Fetch errors. These never abort a rewrite; the reference is left unchanged
	// and the error is recorded in Reference.Err.
	ErrFetch             = errors.New("fetch failed")
	ErrFetchStatus       = errors.New("unexpected HTTP status")
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")
	ErrAssetTooLarge     = errors.New("asset exceeds maximum size")
)
