package a2s

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steamquery/a2s/internal/wire"
)

func singlePacket(body []byte) []byte {
	return append(int32LE(singlePacketHeader), body...)
}

func TestDriver_Info_New(t *testing.T) {
	w := wire.NewWriter()
	w.Uint8(respInfoNew)
	encodeInfoNew(w, &InfoNew{Name: "Test Server", Map: "de_dust2", Game: "csgo"})

	tr := newFakeTransport(singlePacket(w.Bytes()))
	d := NewDriver(tr, Source)

	info, err := d.Info(context.Background())
	require.NoError(t, err)
	require.False(t, info.IsOld())
	assert.Equal(t, "Test Server", info.New.Name)

	require.Len(t, tr.Sent, 1)
	assert.Equal(t, byte(reqInfo), tr.Sent[0][4])
}

func TestDriver_Info_Old(t *testing.T) {
	var body bytes.Buffer
	body.WriteByte(respInfoOld)
	iw := wire.NewWriter()
	iw.CString("1.2.3.4:27015")
	iw.CString("Old Server")
	iw.CString("crossfire")
	iw.CString("valve")
	iw.CString("Half-Life")
	iw.Uint8(1)
	iw.Uint8(16)
	iw.Uint8(47)
	iw.Uint8('d')
	iw.Uint8('w')
	iw.Uint8(0)
	iw.Uint8(0)
	iw.Uint8(0)
	iw.Uint8(0)
	body.Write(iw.Bytes())

	tr := newFakeTransport(singlePacket(body.Bytes()))
	d := NewDriver(tr, GoldSrc)

	info, err := d.Info(context.Background())
	require.NoError(t, err)
	require.True(t, info.IsOld())
	assert.Equal(t, "Old Server", info.Old.Name)
}

func TestDriver_PlayerChallenge(t *testing.T) {
	w := wire.NewWriter()
	w.Uint8(respChallenge)
	w.Uint32(0xDEADBEEF)

	tr := newFakeTransport(singlePacket(w.Bytes()))
	d := NewDriver(tr, Source)

	ch, err := d.PlayerChallenge(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), ch)
}

func TestDriver_Rules_FFPrefixQuirk(t *testing.T) {
	rw := wire.NewWriter()
	rw.Uint16(1)
	rw.CString("sv_cheats")
	rw.CString("0")

	var body bytes.Buffer
	body.Write([]byte{0xFF, 0xFF, 0xFF, 0xFF}) // undocumented quirk prefix
	body.WriteByte(respRules)
	body.Write(rw.Bytes())

	tr := newFakeTransport(singlePacket(body.Bytes()))
	d := NewDriver(tr, Source)

	list, err := d.Rules(context.Background(), 0x1)
	require.NoError(t, err)
	require.Len(t, list.Rules, 1)
	assert.Equal(t, "sv_cheats", list.Rules[0].Key)
}

func TestDriver_Players_UnexpectedChallenge(t *testing.T) {
	w := wire.NewWriter()
	w.Uint8(respChallenge)
	w.Uint32(0x12345678)

	tr := newFakeTransport(singlePacket(w.Bytes()))
	d := NewDriver(tr, Source)

	_, err := d.Players(context.Background(), 1)
	require.Error(t, err)
	var uh *UnknownHeaderError
	require.ErrorAs(t, err, &uh)
	assert.True(t, uh.IsChallenge())
	assert.Equal(t, uint32(0x12345678), uh.Challenge)
}
