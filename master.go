package a2s

import (
	"context"
	"net/netip"
	"time"

	"github.com/steamquery/a2s/internal/wire"
)

// Region selects which datacenter region a master server query is scoped
// to. All matches every region.
type Region byte

const (
	RegionUSEast       Region = 0x00
	RegionUSWest       Region = 0x01
	RegionSouthAmerica Region = 0x02
	RegionEurope       Region = 0x03
	RegionAsia         Region = 0x04
	RegionAustralia    Region = 0x05
	RegionMiddleEast   Region = 0x06
	RegionAfrica       Region = 0x07
	RegionAll          Region = 0xFF
)

const masterRequestKind byte = 0x31 // '1'

// masterSeedSentinel is the seed address a pager sends to request the very
// first page.
var masterSeedSentinel = netip.MustParseAddrPort("0.0.0.0:0")

const masterBufSize = 2 << 20 // 2MiB reply buffer; a full list comfortably fits.

// MasterClient queries a Valve master server for the set of game servers
// matching a region and filter (§6). It owns its own Transport, separate
// from any Driver/Client talking to individual game servers.
type MasterClient struct {
	transport Transport
}

// NewMasterClient wraps an already-connected Transport, mirroring Driver's
// constructor. Most callers should use DialMaster instead.
func NewMasterClient(t Transport) *MasterClient {
	return &MasterClient{transport: t}
}

// DialMaster connects to a master server address (e.g. hl2master.steampowered.com:27011).
func DialMaster(addr string, timeout time.Duration) (*MasterClient, error) {
	t, err := dialUDPTransport(addr, timeout)
	if err != nil {
		return nil, err
	}
	return &MasterClient{transport: t}, nil
}

// Close releases the underlying socket, if the Transport supports it.
func (m *MasterClient) Close() error {
	if closer, ok := m.transport.(*udpTransport); ok {
		return closer.Close()
	}
	return nil
}

// request issues one raw master server query seeded at seed and returns the
// page of endpoints it answers with.
func (m *MasterClient) request(ctx context.Context, seed netip.AddrPort, region Region, filters []Filter) ([]netip.AddrPort, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w := wire.NewWriter()
	w.Uint8(masterRequestKind)
	w.Uint8(byte(region))
	w.CString(seed.String())
	w.CString(renderFilters(filters))

	if err := m.transport.Send(w.Bytes()); err != nil {
		return nil, err
	}

	buf := make([]byte, masterBufSize)
	n, err := m.transport.Recv(buf)
	if err != nil {
		return nil, err
	}

	return parseMasterReply(buf[:n])
}

// Request issues a single master server query and returns the one page of
// endpoints the server answers with, seeded at the wildcard address. Use
// NewPager to walk every page until exhaustion.
func (m *MasterClient) Request(ctx context.Context, region Region, filters ...Filter) ([]netip.AddrPort, error) {
	return m.request(ctx, masterSeedSentinel, region, filters)
}

// Pager walks the full, restartable sequence of master server pages,
// re-seeding each request with the last address of the previous page until
// the server answers with the 0.0.0.0:0 sentinel (§6).
type Pager struct {
	client  *MasterClient
	region  Region
	filters []Filter

	seed pagerSeed
	done bool
}

// pagerSeed is the pager's seed state: either "not started" or the last
// address seen, distinguished so a legitimate 0.0.0.0:0 entry mid-page is
// never confused with "no seed yet".
type pagerSeed struct {
	set  bool
	addr netip.AddrPort
}

// NewPager returns a pager ready to walk every page for region and filters.
func NewPager(client *MasterClient, region Region, filters ...Filter) *Pager {
	return &Pager{client: client, region: region, filters: filters}
}

// Next fetches the next page of endpoints. It returns ErrMasterSequenceDone
// once the master server has reported the sentinel address, after which
// further calls continue to return that error.
func (p *Pager) Next(ctx context.Context) ([]netip.AddrPort, error) {
	if p.done {
		return nil, ErrMasterSequenceDone
	}

	seed := masterSeedSentinel
	if p.seed.set {
		seed = p.seed.addr
	}

	page, err := p.client.request(ctx, seed, p.region, p.filters)
	if err != nil {
		return nil, err
	}

	if len(page) == 0 {
		p.done = true
		return nil, ErrMasterSequenceDone
	}

	out := make([]netip.AddrPort, 0, len(page))
	for _, ep := range page {
		if ep != masterSentinel {
			out = append(out, ep)
		}
	}

	if last := page[len(page)-1]; last == masterSentinel {
		p.done = true
	} else {
		p.seed = pagerSeed{set: true, addr: last}
	}
	return out, nil
}
