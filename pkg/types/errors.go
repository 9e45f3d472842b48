package types

import "errors"

// Domain errors for record validation
var (
	// ErrMalformedRecord marks parse-time structural violations: wrong option
	// count, out-of-order or duplicate letters, invalid or missing answer.
	// Codecs drop the offending record and continue; they never abort a file.
	ErrMalformedRecord = errors.New("malformed question record")
)
