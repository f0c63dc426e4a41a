package memfile

import "github.com/pkg/errors"

// Error kinds reported by File operations. All failures are ordinary return
// values, no operation panics on bad input. Errors carry context and match
// these values with errors.Is.
var (
	// ErrInvalidArgument means a caller passed something out of contract,
	// like a negative size or an unsupported value type.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSeekOutOfRange means a seek target landed outside the current
	// contents. The cursor is left where it was.
	ErrSeekOutOfRange = errors.New("seek position out of range")

	// ErrInvalidFormat means a read format specifier was not recognized.
	// The whole read call fails before consuming anything.
	ErrInvalidFormat = errors.New("invalid read format")

	// ErrWriteAtInAppendMode means a positioned write was attempted on a
	// handle opened in append mode, mirroring os.File.
	ErrWriteAtInAppendMode = errors.New("invalid use of WriteAt on file opened in append mode")
)
