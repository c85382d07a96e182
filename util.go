package ucsf

import (
	"errors"
	"fmt"
)

// A FormatError reports that the input is not a valid UCSF NMR file:
// missing magic, a truncated header or record, or a sample stream shorter
// than the axis headers declare.
type FormatError string

func (e FormatError) Error() string {
	return fmt.Sprintf("ucsf: invalid format: %s", string(e))
}

// An UnsupportedVersionError reports a format version other than the one
// this package decodes.
type UnsupportedVersionError int

func (e UnsupportedVersionError) Error() string {
	return fmt.Sprintf("ucsf: unsupported format version %d, want %d", int(e), formatVersion)
}

// An UnsupportedComponentsError reports a component count other than one.
// Complex-valued spectra store two components per data point and are not
// supported.
type UnsupportedComponentsError int

func (e UnsupportedComponentsError) Error() string {
	return fmt.Sprintf("ucsf: unsupported component count %d, only real-valued data is supported", int(e))
}

// ErrNoBounds is returned by File.Bounds when the spectrum holds no
// comparable samples, that is when every sample is NaN.
var ErrNoBounds = errors.New("ucsf: no comparable samples")
