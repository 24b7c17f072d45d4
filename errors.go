package a2s

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotConnected reports an operation on a Client that has no connection.
// Clients are created already connected by Dial, and no operation in this
// package returns this error.
var ErrNotConnected = errors.New("a2s: not connected")

// ErrChallengeNotReceived is returned by Client when every attempt of a
// challenge-gated operation was answered with another challenge instead of
// the requested data.
var ErrChallengeNotReceived = errors.New("a2s: challenge not received")

// ErrShortBuffer is returned by codecs when the input ends before a required
// field has been fully read.
var ErrShortBuffer = errors.New("a2s: buffer too short")

// ErrMasterSequenceDone is returned by Pager.Next once the master server has
// reported the sentinel address as the last entry of a page.
var ErrMasterSequenceDone = errors.New("a2s: master sequence exhausted")

// ParseError reports that a record codec could not decode a field.
type ParseError struct {
	Kind   string // e.g. "info_old", "players", "rules", "extra_data", "master_reply"
	Field  string // the field being decoded when the error occurred
	Offset int    // byte offset into the record body
	Err    error  // underlying cause, if any
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("a2s: parse %s.%s at offset %d: %v", e.Kind, e.Field, e.Offset, e.Err)
	}
	return fmt.Sprintf("a2s: parse %s.%s at offset %d", e.Kind, e.Field, e.Offset)
}

func (e *ParseError) Unwrap() error { return e.Err }

func newParseError(kind, field string, offset int) error {
	return &ParseError{Kind: kind, Field: field, Offset: offset, Err: ErrShortBuffer}
}

// WrongHeaderError reports an envelope header that was neither -1 (single
// packet) nor -2 (split packet) where one of those was required. It is also
// returned, with Header -2, for a split header whose total is 0 or whose
// split size is below 4.
type WrongHeaderError struct {
	Header int32
}

func (e *WrongHeaderError) Error() string {
	if e.Header == splitPacketHeader {
		return "a2s: malformed split-packet header"
	}
	return fmt.Sprintf("a2s: expected envelope header -1 or -2, found %d", e.Header)
}

// FragmentHeader identifies the (uid, total) pair a split-packet fragment
// claims to belong to.
type FragmentHeader struct {
	UID   uint32
	Total int
}

// InterruptedError reports that a split-packet fragment arrived claiming a
// different (uid, total) than the reassembly already in progress.
type InterruptedError struct {
	Base  FragmentHeader
	Wrong FragmentHeader
}

func (e *InterruptedError) Error() string {
	return fmt.Sprintf("a2s: mismatched split-packet fragment: expected %+v, found %+v", e.Base, e.Wrong)
}

// DecompressError reports that the bzip2 decoder rejected the reassembled
// stream of a compressed Source split response.
type DecompressError struct {
	Err error
}

func (e *DecompressError) Error() string {
	return fmt.Sprintf("a2s: bzip2 decompression failed: %v", e.Err)
}

func (e *DecompressError) Unwrap() error { return e.Err }

// Crc32Error reports that a decompressed, reassembled payload failed its
// CRC32 integrity check.
type Crc32Error struct {
	Expected uint32
	Actual   uint32
}

func (e *Crc32Error) Error() string {
	return fmt.Sprintf("a2s: crc32 mismatch: expected %#08x, got %#08x", e.Expected, e.Actual)
}

// UnknownHeaderError reports that an A2S response's one-byte kind did not
// match what the operation expected. When Got is 'A' (a challenge response),
// Challenge holds the nonce the server wants echoed back.
type UnknownHeaderError struct {
	Got       byte
	Expected  []byte
	Challenge uint32
	hasChall  bool
}

func (e *UnknownHeaderError) Error() string {
	return fmt.Sprintf("a2s: unexpected response kind %#02x (%q), expected one of %q", e.Got, string(e.Got), string(e.Expected))
}

// IsChallenge reports whether the unexpected response was itself a challenge
// response carrying a nonce, in which case the Challenge field is valid.
func (e *UnknownHeaderError) IsChallenge() bool { return e.hasChall }
