package consts

import "github.com/pkg/errors"

var (
	// ErrTrackNotFound is returned when no track matches the requested id
	ErrTrackNotFound = errors.New("Track not found")
	// ErrInvalidTrack is returned when a track fails validation
	ErrInvalidTrack = errors.New("invalid track")
	// ErrDuplicate duplicate entry error
	ErrDuplicate = errors.New("Duplicate entry")
	// ErrInvalidDriver is for when a unknown driver is used.
	// Either misspelled or using driver that wasn't built into the binary
	ErrInvalidDriver = errors.New("invalid driver")
	// ErrInvalidConfig is issued when a invalid config value is used
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrInvalidResponseCode is a generic error code representing a invalid response code
	// was received from the server
	ErrInvalidResponseCode = errors.New("invalid response code")
	// ErrIDExhausted is returned when the largest track id is already in use
	ErrIDExhausted = errors.New("track id space exhausted")
	// ErrNotSupported is returned by drivers for operations they cannot perform
	ErrNotSupported = errors.New("operation not supported by driver")
	// ErrUnsupportedFormat is returned for seed files with an unknown extension
	ErrUnsupportedFormat = errors.New("unsupported file format")
)
