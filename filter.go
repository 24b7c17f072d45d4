package a2s

import (
	"net/netip"
	"strconv"
	"strings"
)

// Filter is one node of the backslash-delimited master server filter DSL
// (§6). Composite nodes (Nor, Nand) recurse over child filters; every other
// node renders a single fixed atom.
type Filter interface {
	String() string
}

type atomFilter string

func (a atomFilter) String() string { return string(a) }

// Dedicated matches dedicated servers only.
func Dedicated() Filter { return atomFilter(`\dedicated\1`) }

// Secure matches servers using anti-cheat.
func Secure() Filter { return atomFilter(`\secure\1`) }

// GameDir matches servers running the given mod directory.
func GameDir(dir string) Filter { return atomFilter(`\gamedir\` + dir) }

// Map matches servers currently running the given map.
func Map(m string) Filter { return atomFilter(`\map\` + m) }

// Linux matches servers running on Linux.
func Linux() Filter { return atomFilter(`\linux\1`) }

// NoPassword matches servers that do not require a password.
func NoPassword() Filter { return atomFilter(`\password\0`) }

// NotEmpty matches servers that have at least one player.
func NotEmpty() Filter { return atomFilter(`\empty\1`) }

// NotFull matches servers that are not at MaxPlayers.
func NotFull() Filter { return atomFilter(`\full\1`) }

// Proxy matches SourceTV relays.
func Proxy() Filter { return atomFilter(`\proxy\1`) }

// AppID matches servers running the given Steam application ID.
func AppID(id string) Filter { return atomFilter(`\appid\` + id) }

// NotAppID excludes servers running the given Steam application ID.
func NotAppID(id string) Filter { return atomFilter(`\napp\` + id) }

// NoPlayers matches servers with zero players.
func NoPlayers() Filter { return atomFilter(`\noplayers\1`) }

// Whitelisted matches whitelisted servers.
func Whitelisted() Filter { return atomFilter(`\white\1`) }

// GameType matches servers advertising all of the given tags.
func GameType(tags ...string) Filter { return atomFilter(`\gametype\` + strings.Join(tags, ",")) }

// GameData matches servers advertising all of the given hidden tags.
func GameData(tags ...string) Filter { return atomFilter(`\gamedata\` + strings.Join(tags, ",")) }

// GameDataOr matches servers advertising any of the given hidden tags.
func GameDataOr(tags ...string) Filter { return atomFilter(`\gamedataor\` + strings.Join(tags, ",")) }

// NameMatch matches servers whose hostname fits the given wildcard pattern.
func NameMatch(pattern string) Filter { return atomFilter(`\name_match\` + pattern) }

// VersionMatch matches servers whose version fits the given wildcard pattern.
func VersionMatch(pattern string) Filter { return atomFilter(`\version_match\` + pattern) }

// CollapseAddrHash returns only one server per unique IP address.
func CollapseAddrHash() Filter { return atomFilter(`\collapse_addr_hash\1`) }

// GameAddr matches only the server at the given address.
func GameAddr(addr netip.AddrPort) Filter { return atomFilter(`\gameaddr\` + addr.String()) }

type compositeFilter struct {
	tag      string
	children []Filter
}

func (c compositeFilter) String() string {
	var b strings.Builder
	b.WriteString(`\`)
	b.WriteString(c.tag)
	b.WriteString(`\`)
	b.WriteString(strconv.Itoa(len(c.children)))
	for _, child := range c.children {
		b.WriteString(child.String())
	}
	return b.String()
}

// Nor matches servers that satisfy none of the given filters.
func Nor(filters ...Filter) Filter { return compositeFilter{tag: "nor", children: filters} }

// Nand matches servers that do not satisfy all of the given filters.
func Nand(filters ...Filter) Filter { return compositeFilter{tag: "nand", children: filters} }

// renderFilters concatenates filters in order, the wire form sent as the
// master server request's filter string.
func renderFilters(filters []Filter) string {
	var b strings.Builder
	for _, f := range filters {
		b.WriteString(f.String())
	}
	return b.String()
}
