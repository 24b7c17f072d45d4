package a2s

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steamquery/a2s/internal/wire"
)

func TestParsePlayers_Normal(t *testing.T) {
	w := wire.NewWriter()
	w.Uint8(2) // count
	w.Uint8(0)
	w.CString("Alice")
	w.Uint32(uint32(int32(10)))
	w.Float32(123.4)
	w.Uint8(1)
	w.CString("Bob")
	w.Uint32(uint32(int32(5)))
	w.Float32(67.0)

	list, err := parsePlayers(w.Bytes())
	require.NoError(t, err)
	require.Len(t, list.Players, 2)
	assert.Equal(t, "Alice", list.Players[0].Name)
	assert.Equal(t, int32(10), list.Players[0].Score)
	assert.Equal(t, "Bob", list.Players[1].Name)
}

func TestParsePlayers_GreedyBeyondDeclaredCount(t *testing.T) {
	// Declares 1 player but the buffer actually holds 2 — parsePlayers
	// must keep going past the declared count (§4.2, the Sandstorm quirk).
	w := wire.NewWriter()
	w.Uint8(1)
	w.Uint8(0)
	w.CString("Alice")
	w.Uint32(uint32(int32(10)))
	w.Float32(1)
	w.Uint8(1)
	w.CString("Bob")
	w.Uint32(uint32(int32(20)))
	w.Float32(2)

	list, err := parsePlayers(w.Bytes())
	require.NoError(t, err)
	assert.Len(t, list.Players, 2)
}

func TestParsePlayers_TruncatedMidRecord(t *testing.T) {
	w := wire.NewWriter()
	w.Uint8(2)
	w.Uint8(0)
	w.CString("Alice")
	// cut off before score/duration

	list, err := parsePlayers(w.Bytes())
	require.NoError(t, err)
	assert.Empty(t, list.Players)
}
