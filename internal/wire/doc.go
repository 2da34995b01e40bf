// Package wire implements the five synthetic layer codecs used by the
// turducken stack: link frame, network packet, transport segment, chunked
// text message, and text envelope. Every codec is a pair of pure functions
// over byte slices; nothing here logs, blocks, or keeps state.
package wire
