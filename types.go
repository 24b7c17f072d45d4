package a2s

// ModData describes the mod block embedded in an old-format info response
// when the server reports itself as running a mod.
type ModData struct {
	Link         string
	DownloadLink string
	Version      int32
	Size         int32
	MPOnly       bool
	CustomDLL    bool
}

// InfoOld is the 'm' (obsolete GoldSrc) variant of the A2S_INFO response.
type InfoOld struct {
	Address     string
	Name        string
	Map         string
	Folder      string
	Game        string
	Players     uint8
	MaxPlayers  uint8
	Protocol    uint8
	ServerType  uint8
	Environment uint8

	// IsPrivate is (byte != 0): true means the server requires a password.
	// The wire byte historically meant "visibility", so the polarity is the
	// opposite of some older client libraries that read it as "is public".
	IsPrivate bool

	ModData *ModData

	VACSecured bool
	BotsNum    uint8
}

// SourceTV describes the optional SourceTV relay advertised by ExtraData.
type SourceTV struct {
	Port uint16 // wire type is a signed int16; ports never negative, widened unsigned
	Name string
}

// ExtraData is the EDF-gated tail of an InfoNew response. Each pointer field
// is nil exactly when its EDF bit was clear on the wire.
type ExtraData struct {
	EDF byte

	Port     *uint16   // bit 0x80; wire type is a signed int16, widened unsigned (see SourceTV.Port)
	SteamID  *uint64   // bit 0x10
	SourceTV *SourceTV // bit 0x40
	Keywords *string   // bit 0x20
	GameID   *uint64   // bit 0x01
}

// EDF bit masks, checked independently per field (no bit implies another).
const (
	edfPort     = 0x80
	edfSteamID  = 0x10
	edfSourceTV = 0x40
	edfKeywords = 0x20
	edfGameID   = 0x01
)

// InfoNew is the 'I' (current Source engine) variant of the A2S_INFO
// response.
type InfoNew struct {
	Protocol    uint8
	Name        string
	Map         string
	Folder      string
	Game        string
	SteamAppID  int16
	Players     uint8
	MaxPlayers  uint8
	Bots        uint8
	ServerType  uint8
	Environment uint8
	IsVisible   bool
	VACSecured  bool
	Version     string
	Extra       ExtraData
}

// Info is the tagged union of the two A2S_INFO response variants. Exactly
// one of Old or New is populated, discriminated by the wire response kind
// ('m' or 'I').
type Info struct {
	Old *InfoOld
	New *InfoNew
}

// IsOld reports whether the response was the obsolete 'm' variant.
func (i Info) IsOld() bool { return i.Old != nil }

// Player is one entry of a PlayersList.
type Player struct {
	Index    uint8
	Name     string
	Score    int32
	Duration float32 // seconds
}

// PlayersList is the full A2S_PLAYER response.
type PlayersList struct {
	Players []Player
}

// Rule is one server cvar/value pair reported by A2S_RULES.
type Rule struct {
	Key   string
	Value string
}

// RulesList is the full A2S_RULES response. AdvisoryCount is the on-wire
// uint16 count, which may disagree with len(Rules) — see DESIGN.md's open
// question decision. Rules reflects what was actually parseable.
type RulesList struct {
	AdvisoryCount uint16
	Rules         []Rule
}
