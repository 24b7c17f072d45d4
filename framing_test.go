package a2s

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int32LE(v int32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func uint16LE(v uint16) []byte {
	return []byte{byte(v), byte(v >> 8)}
}

func TestReadPayload_SinglePacket(t *testing.T) {
	datagram := append(int32LE(singlePacketHeader), []byte("hello")...)
	tr := newFakeTransport(datagram)

	payload, err := ReadPayload(context.Background(), tr, Source)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), payload)
}

func TestReadPayload_GoldSrcSplit_OutOfOrder(t *testing.T) {
	const uid = uint32(12345)
	parts := [][]byte{[]byte("AAA"), []byte("BBB"), []byte("CCC")}

	buildFragment := func(index, total int, payload []byte) []byte {
		var b bytes.Buffer
		b.Write(int32LE(splitPacketHeader))
		b.Write(le32(uid))
		b.WriteByte(byte(index<<4 | total))
		b.Write(payload)
		return b.Bytes()
	}

	// Fragments arrive shuffled: 2, 0, 1.
	tr := newFakeTransport(
		buildFragment(2, 3, parts[2]),
		buildFragment(0, 3, parts[0]),
		buildFragment(1, 3, parts[1]),
	)

	payload, err := ReadPayload(context.Background(), tr, GoldSrc)
	require.NoError(t, err)
	assert.Equal(t, []byte("AAABBBCCC"), payload)
}

func TestReadPayload_GoldSrcSplit_Interrupted(t *testing.T) {
	buildFragment := func(uid uint32, index, total int, payload []byte) []byte {
		var b bytes.Buffer
		b.Write(int32LE(splitPacketHeader))
		b.Write(le32(uid))
		b.WriteByte(byte(index<<4 | total))
		b.Write(payload)
		return b.Bytes()
	}

	tr := newFakeTransport(
		buildFragment(1, 0, 2, []byte("A")),
		buildFragment(2, 0, 2, []byte("B")), // different uid: must abort
	)

	_, err := ReadPayload(context.Background(), tr, GoldSrc)
	require.Error(t, err)
	var interrupted *InterruptedError
	assert.ErrorAs(t, err, &interrupted)
}

// bzip2PlainFixture and bzip2CompressedFixture are a matched plaintext/bzip2
// pair produced offline; compress/bzip2 in the standard library only ships a
// reader, so a compressed fixture for the success-path test has to come from
// outside the Go toolchain.
var bzip2PlainFixture = []byte("the quick brown fox jumps over the lazy dog, repeated for bzip2 to do something: the quick brown fox jumps over the lazy dog")

const bzip2PlainFixtureCRC32 = 0x247c6a7f

var bzip2CompressedFixture = []byte{
	66, 90, 104, 57, 49, 65, 89, 38, 83, 89, 144, 76, 4, 82, 0, 0, 52, 153, 128, 64, 4, 16, 16, 63, 255, 255, 240, 32, 0,
	104, 37, 20, 25, 26, 105, 163, 67, 212, 52, 104, 18, 161, 25, 61, 32, 104, 26, 7, 169, 234, 72, 109, 234, 101, 193,
	82, 71, 98, 144, 126, 4, 99, 62, 149, 252, 154, 35, 22, 216, 140, 14, 164, 61, 40, 228, 206, 107, 39, 10, 77, 164,
	120, 60, 148, 70, 51, 78, 93, 85, 66, 132, 9, 107, 66, 38, 22, 16, 83, 98, 10, 242, 175, 139, 216, 97, 7, 110, 77,
	15, 197, 220, 145, 78, 20, 36, 36, 19, 1, 20, 128,
}

func buildSourceCompressedFragment(crc uint32) []byte {
	const uid = uint32(0x80000001) // high bit set: compressed
	var b bytes.Buffer
	b.Write(int32LE(splitPacketHeader))
	b.Write(le32(uid))
	b.WriteByte(1) // total
	b.WriteByte(0) // index
	b.Write(uint16LE(1400))
	b.Write(le32(uint32(len(bzip2PlainFixture))))
	b.Write(le32(crc))
	b.Write(bzip2CompressedFixture)
	return b.Bytes()
}

func TestReadPayload_SourceSplit_CompressedRoundtrip(t *testing.T) {
	tr := newFakeTransport(buildSourceCompressedFragment(bzip2PlainFixtureCRC32))

	payload, err := ReadPayload(context.Background(), tr, Source)
	require.NoError(t, err)
	assert.Equal(t, bzip2PlainFixture, payload)
}

func TestReadPayload_SourceSplit_CrcMismatch(t *testing.T) {
	tr := newFakeTransport(buildSourceCompressedFragment(bzip2PlainFixtureCRC32 ^ 0xFF))

	_, err := ReadPayload(context.Background(), tr, Source)
	require.Error(t, err)
	var crcErr *Crc32Error
	assert.ErrorAs(t, err, &crcErr)
}
