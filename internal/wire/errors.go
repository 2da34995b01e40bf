package wire

import "errors"

var (
	// ErrMalformedHeader reports a layer header that is truncated or
	// internally inconsistent.
	ErrMalformedHeader = errors.New("wire: malformed header")

	// ErrMissingPayload reports a header that parsed but left no payload
	// bytes behind it.
	ErrMissingPayload = errors.New("wire: missing payload")

	// ErrUnexpectedProtocol reports a network packet whose protocol field
	// does not carry the expected next layer.
	ErrUnexpectedProtocol = errors.New("wire: unexpected protocol")

	// ErrNoAnswerRecord reports a message with zero answer records.
	ErrNoAnswerRecord = errors.New("wire: no answer record")

	// ErrUnsupportedRecordType reports an answer record that is not the
	// text-chunk kind.
	ErrUnsupportedRecordType = errors.New("wire: unsupported record type")

	// ErrTruncatedMessage reports an envelope with no header terminator.
	ErrTruncatedMessage = errors.New("wire: truncated message")

	// ErrOversize reports a build whose input does not fit the format's
	// length fields.
	ErrOversize = errors.New("wire: payload too large for layer")
)
