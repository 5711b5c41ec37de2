// Package errs defines the sentinel errors shared across payloadbuf packages.
//
// All errors returned by the library wrap one of these sentinels with
// fmt.Errorf("%w: ...") so callers can match them with errors.Is while still
// getting contextual detail in the message.
package errs

import "errors"

var (
	// ErrOutOfBounds indicates a fragment extends past a buffer's fixed
	// declared length. The buffer is never silently grown or truncated.
	ErrOutOfBounds = errors.New("fragment out of bounds")

	// ErrUnsupportedSpec indicates Add/Append was given a spec it cannot
	// resolve into fragments (nil spec, or a value the packer cannot handle
	// being used where a spec is required).
	ErrUnsupportedSpec = errors.New("unsupported fragment spec")

	// ErrInvalidTags indicates a tag list contains an invalid entry.
	// Tags must be non-empty strings.
	ErrInvalidTags = errors.New("invalid tags")

	// ErrPack indicates the injected packer could not convert a value into
	// raw bytes.
	ErrPack = errors.New("cannot pack value")

	// ErrFillerLength indicates the injected filler returned a byte slice
	// whose length does not match the requested length.
	ErrFillerLength = errors.New("filler returned wrong length")

	// ErrInvalidLength indicates a negative buffer length was requested.
	ErrInvalidLength = errors.New("invalid buffer length")

	// ErrPatternTooLong indicates a cyclic pattern longer than the de Bruijn
	// sequence for the chosen alphabet and subsequence length was requested.
	ErrPatternTooLong = errors.New("pattern length exceeds de Bruijn period")
)
