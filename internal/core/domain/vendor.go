package domain

import "errors"

// VendorErrorKind classifies failures reported by external platforms
// (payment network, aggregator). Raw vendor error shapes are normalised
// into a VendorError at the client boundary so orchestration logic never
// type-checks vendor SDK types.
type VendorErrorKind string

const (
	// VendorDuplicate: the vendor rejected the request as a duplicate
	// (e.g. an email already bound to a customer profile).
	VendorDuplicate VendorErrorKind = "duplicate"
	// VendorInvalidFormat: a field was present but malformed.
	VendorInvalidFormat VendorErrorKind = "invalid_format"
	// VendorMissingField: a required field was absent.
	VendorMissingField VendorErrorKind = "missing_field"
	// VendorUpstream: any other vendor or network failure.
	VendorUpstream VendorErrorKind = "upstream"
)

// VendorError is the single tagged error variant for external-platform
// failures. Message is already human readable and safe to surface verbatim.
type VendorError struct {
	Kind    VendorErrorKind
	Field   string
	Message string
}

func (e *VendorError) Error() string {
	return e.Message
}

// AsVendorError unwraps err into a *VendorError when possible.
func AsVendorError(err error) (*VendorError, bool) {
	var ve *VendorError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
