package a2s

import (
	"bytes"
	"compress/bzip2"
	"context"
	"hash/crc32"
	"io"
	"sort"

	"github.com/pkg/errors"

	"github.com/steamquery/a2s/internal/wire"
)

// SplitVariant selects which split-packet header shape to parse: GoldSrc
// packs index/total into one nibble-split byte, Source uses wider fields
// and can carry a per-response switch size plus bzip2/CRC32 metadata.
type SplitVariant int

const (
	GoldSrc SplitVariant = iota
	Source
)

// DefaultFrameSize is the datagram size read for the first fragment of any
// response, and for every fragment of a GoldSrc response.
const DefaultFrameSize = 1400

const (
	singlePacketHeader = -1
	splitPacketHeader  = -2
)

// splitHeader is the variant-agnostic result of parsing a GoldSrc or Source
// split-packet header.
type splitHeader struct {
	uid        uint32
	index      int
	total      int
	switchSize int

	compressed       bool
	decompressedSize uint32
	crc32            uint32
}

func parseGoldSrcSplitHeader(r *wire.Reader) (splitHeader, error) {
	uid, err := r.Uint32()
	if err != nil {
		return splitHeader{}, newParseError("split_header_goldsrc", "uid", r.Offset())
	}
	num, err := r.Uint8()
	if err != nil {
		return splitHeader{}, newParseError("split_header_goldsrc", "num", r.Offset())
	}
	return splitHeader{
		uid:        uid,
		index:      int(num >> 4),
		total:      int(num & 0x0F),
		switchSize: DefaultFrameSize,
	}, nil
}

func parseSourceSplitHeader(r *wire.Reader) (splitHeader, error) {
	uid, err := r.Uint32()
	if err != nil {
		return splitHeader{}, newParseError("split_header_source", "uid", r.Offset())
	}
	total, err := r.Uint8()
	if err != nil {
		return splitHeader{}, newParseError("split_header_source", "total", r.Offset())
	}
	index, err := r.Uint8()
	if err != nil {
		return splitHeader{}, newParseError("split_header_source", "index", r.Offset())
	}
	switchSize, err := r.Uint16()
	if err != nil {
		return splitHeader{}, newParseError("split_header_source", "split_size", r.Offset())
	}

	h := splitHeader{
		uid:        uid,
		index:      int(index),
		total:      int(total),
		switchSize: int(switchSize),
	}

	if uid&0x80000000 != 0 {
		h.compressed = true
		if h.decompressedSize, err = r.Uint32(); err != nil {
			return splitHeader{}, newParseError("split_header_source", "decompressed_size", r.Offset())
		}
		if h.crc32, err = r.Uint32(); err != nil {
			return splitHeader{}, newParseError("split_header_source", "crc32", r.Offset())
		}
	}
	return h, nil
}

func parseSplitHeader(variant SplitVariant, body []byte) (splitHeader, []byte, error) {
	r := wire.NewReader(body)
	var (
		h   splitHeader
		err error
	)
	switch variant {
	case GoldSrc:
		h, err = parseGoldSrcSplitHeader(r)
	case Source:
		h, err = parseSourceSplitHeader(r)
	default:
		return splitHeader{}, nil, errors.Errorf("a2s: unknown split variant %d", variant)
	}
	if err != nil {
		return splitHeader{}, nil, err
	}
	return h, r.Remaining(), nil
}

// reassemblyState tracks one in-flight multi-packet response. It is owned
// exclusively by the ReadPayload call that created it and is discarded on
// completion or error.
type reassemblyState struct {
	uid        uint32
	total      int
	switchSize int

	compressed       bool
	decompressedSize uint32
	crc32            uint32

	fragments map[int][]byte
}

func newReassemblyState(h splitHeader, payload []byte) *reassemblyState {
	s := &reassemblyState{
		uid:              h.uid,
		total:            h.total,
		switchSize:       h.switchSize,
		compressed:       h.compressed,
		decompressedSize: h.decompressedSize,
		crc32:            h.crc32,
		fragments:        make(map[int][]byte, h.total),
	}
	s.fragments[h.index] = payload
	return s
}

func (s *reassemblyState) complete() bool { return len(s.fragments) == s.total }

func (s *reassemblyState) concat() []byte {
	indexes := make([]int, 0, len(s.fragments))
	for idx := range s.fragments {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	var buf bytes.Buffer
	for _, idx := range indexes {
		buf.Write(s.fragments[idx])
	}
	return buf.Bytes()
}

// readDatagram checks ctx for cancellation, then performs one Transport.Recv
// into a freshly allocated buffer of the given size.
func readDatagram(ctx context.Context, t Transport, size int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	n, err := t.Recv(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// ReadPayload reads one complete application payload from transport,
// reassembling split-packet responses as needed (§4.1). variant selects the
// GoldSrc or Source split-header parser.
func ReadPayload(ctx context.Context, t Transport, variant SplitVariant) ([]byte, error) {
	datagram, err := readDatagram(ctx, t, DefaultFrameSize)
	if err != nil {
		return nil, err
	}

	r := wire.NewReader(datagram)
	header, err := r.Int32()
	if err != nil {
		return nil, newParseError("envelope", "header", r.Offset())
	}

	switch header {
	case singlePacketHeader:
		return r.Remaining(), nil
	case splitPacketHeader:
		return readSplitResponse(ctx, t, variant, r.Remaining())
	default:
		return nil, &WrongHeaderError{Header: header}
	}
}

func readSplitResponse(ctx context.Context, t Transport, variant SplitVariant, firstBody []byte) ([]byte, error) {
	head, firstPayload, err := parseSplitHeader(variant, firstBody)
	if err != nil {
		return nil, err
	}
	if head.total == 0 {
		return nil, &WrongHeaderError{Header: splitPacketHeader}
	}
	if head.switchSize < 4 {
		return nil, &WrongHeaderError{Header: splitPacketHeader}
	}

	state := newReassemblyState(head, firstPayload)

	for !state.complete() {
		datagram, err := readDatagram(ctx, t, state.switchSize)
		if err != nil {
			return nil, err
		}

		r := wire.NewReader(datagram)
		hdr, err := r.Int32()
		if err != nil {
			return nil, newParseError("envelope", "header", r.Offset())
		}
		if hdr != splitPacketHeader {
			return nil, &WrongHeaderError{Header: hdr}
		}

		frag, payload, err := parseSplitHeader(variant, r.Remaining())
		if err != nil {
			return nil, err
		}
		if frag.uid != state.uid || frag.total != state.total {
			return nil, &InterruptedError{
				Base:  FragmentHeader{UID: state.uid, Total: state.total},
				Wrong: FragmentHeader{UID: frag.uid, Total: frag.total},
			}
		}

		state.fragments[frag.index] = payload
	}

	intermediate := state.concat()
	if !state.compressed {
		return intermediate, nil
	}
	return decompressAndVerify(intermediate, state.decompressedSize, state.crc32)
}

func decompressAndVerify(compressed []byte, decompressedSize, expectedCRC uint32) ([]byte, error) {
	out := make([]byte, decompressedSize)
	n, err := io.ReadFull(bzip2.NewReader(bytes.NewReader(compressed)), out)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, &DecompressError{Err: err}
	}
	out = out[:n]

	actual := crc32.ChecksumIEEE(out)
	if actual != expectedCRC {
		return nil, &Crc32Error{Expected: expectedCRC, Actual: actual}
	}
	return out, nil
}
