package hwpv5

import "errors"

// Sentinel errors for the error kinds of the HWP 5.x decoder. Header and
// container failures are fatal to the whole document; record-payload
// failures are tolerated except ErrMalformedRecord on an extended-size
// length, which is fatal for the enclosing section only.
var (
	ErrNotHWP5         = errors.New("hwpv5: not a valid HWP 5.x file")
	ErrEncrypted       = errors.New("hwpv5: document is password encrypted")
	ErrTruncated       = errors.New("hwpv5: stream ended mid-header or mid-payload")
	ErrDecodeLimit     = errors.New("hwpv5: decompression exceeded the configured expansion ratio")
	ErrMalformedRecord = errors.New("hwpv5: extended-size record declares a length beyond the remaining stream")
	ErrIOError         = errors.New("hwpv5: underlying container read failed")
)
