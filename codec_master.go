package a2s

import "net/netip"

// masterReplyMagic is the fixed 6-byte prefix every master server reply
// carries before its greedy list of endpoints: a -1 header value followed
// by the "\x66\x0A" reply tag.
var masterReplyMagic = [6]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x66, 0x0A}

// parseMasterReply decodes a master server reply into the list of game
// server endpoints it carries. Endpoints are parsed greedily as fixed
// 6-byte records (4 raw IPv4 octets, big-endian port) until the input is
// exhausted; a trailing 0.0.0.0:0 sentinel marks the end of a page and is
// included in the result so the caller (Pager) can recognize it.
func parseMasterReply(data []byte) ([]netip.AddrPort, error) {
	if len(data) < len(masterReplyMagic) || [6]byte(data[:6]) != masterReplyMagic {
		return nil, newParseError("master_reply", "magic", 0)
	}
	data = data[6:]

	endpoints := make([]netip.AddrPort, 0, len(data)/6)
	for off := 0; off+6 <= len(data); off += 6 {
		addr := netip.AddrFrom4([4]byte(data[off : off+4]))
		port := uint16(data[off+4])<<8 | uint16(data[off+5])
		endpoints = append(endpoints, netip.AddrPortFrom(addr, port))
	}
	return endpoints, nil
}

// masterSentinel is the address a master server sends as the final entry of
// its very last reply page.
var masterSentinel = netip.AddrPortFrom(netip.IPv4Unspecified(), 0)
