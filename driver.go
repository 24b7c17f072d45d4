package a2s

import (
	"context"

	"github.com/steamquery/a2s/internal/wire"
)

// Request and response kind bytes (§4.3).
const (
	reqInfo       byte = 0x54 // 'T'
	reqPlayer     byte = 0x55 // 'U'
	reqRules      byte = 0x56 // 'V'
	respChallenge byte = 0x41 // 'A'
	respInfoOld   byte = 0x6D // 'm'
	respInfoNew   byte = 0x49 // 'I'
	respPlayers   byte = 0x44 // 'D'
	respRules     byte = 0x45 // 'E'
)

const infoPayload = "Source Engine Query\x00"

// challengePlaceholder is the FF FF FF FF sent in place of a real challenge
// value the first time a challenge-gated request is issued.
const challengePlaceholder = 0xFFFFFFFF

func envelope(kind byte, rest ...[]byte) []byte {
	w := wire.NewWriter()
	w.Uint8(0xFF)
	w.Uint8(0xFF)
	w.Uint8(0xFF)
	w.Uint8(0xFF)
	w.Uint8(kind)
	b := w.Bytes()
	for _, r := range rest {
		b = append(b, r...)
	}
	return b
}

// Driver performs one raw A2S operation at a time over Transport. It never
// retries and never performs the challenge dance itself (§4.3, §9) — that is
// Client's job. Driver is safe to use directly by callers who want full
// control over challenge handling and retry policy.
type Driver struct {
	Transport Transport
	Variant   SplitVariant
}

// NewDriver wraps an already-connected Transport.
func NewDriver(t Transport, variant SplitVariant) *Driver {
	return &Driver{Transport: t, Variant: variant}
}

// Info issues an A2S_INFO request and returns whichever response variant the
// server replied with. If the server answers with a challenge instead (some
// GoldSrc builds gate A2S_INFO too), the returned error is an
// *UnknownHeaderError with IsChallenge() true.
func (d *Driver) Info(ctx context.Context) (Info, error) {
	req := envelope(reqInfo, []byte(infoPayload))
	if err := d.Transport.Send(req); err != nil {
		return Info{}, err
	}

	payload, err := ReadPayload(ctx, d.Transport, d.Variant)
	if err != nil {
		return Info{}, err
	}

	r := wire.NewReader(payload)
	kind, err := r.Uint8()
	if err != nil {
		return Info{}, newParseError("info", "kind", r.Offset())
	}

	switch kind {
	case respInfoNew:
		info, err := parseInfoNew(r.Remaining())
		if err != nil {
			return Info{}, err
		}
		return Info{New: info}, nil
	case respInfoOld:
		info, err := parseInfoOld(r.Remaining())
		if err != nil {
			return Info{}, err
		}
		return Info{Old: info}, nil
	case respChallenge:
		return Info{}, unknownHeaderWithChallenge(kind, r.Remaining(), respInfoNew, respInfoOld)
	default:
		return Info{}, &UnknownHeaderError{Got: kind, Expected: []byte{respInfoNew, respInfoOld}}
	}
}

// PlayerChallenge requests the challenge nonce required before A2S_PLAYER.
func (d *Driver) PlayerChallenge(ctx context.Context) (uint32, error) {
	return d.challenge(ctx, reqPlayer)
}

// RulesChallenge requests the challenge nonce required before A2S_RULES.
func (d *Driver) RulesChallenge(ctx context.Context) (uint32, error) {
	return d.challenge(ctx, reqRules)
}

func (d *Driver) challenge(ctx context.Context, kind byte) (uint32, error) {
	req := envelope(kind, le32(challengePlaceholder))
	if err := d.Transport.Send(req); err != nil {
		return 0, err
	}

	payload, err := ReadPayload(ctx, d.Transport, d.Variant)
	if err != nil {
		return 0, err
	}

	r := wire.NewReader(payload)
	respKind, err := r.Uint8()
	if err != nil {
		return 0, newParseError("challenge", "kind", r.Offset())
	}
	if respKind != respChallenge {
		return 0, &UnknownHeaderError{Got: respKind, Expected: []byte{respChallenge}}
	}

	ch, err := r.Uint32()
	if err != nil {
		return 0, newParseError("challenge", "value", r.Offset())
	}
	return ch, nil
}

// Players issues an A2S_PLAYER request using a challenge obtained from
// PlayerChallenge. If the server has rotated its challenge in the meantime,
// the returned error is an *UnknownHeaderError with IsChallenge() true
// carrying the new value.
func (d *Driver) Players(ctx context.Context, challenge uint32) (*PlayersList, error) {
	req := envelope(reqPlayer, le32(challenge))
	if err := d.Transport.Send(req); err != nil {
		return nil, err
	}

	payload, err := ReadPayload(ctx, d.Transport, d.Variant)
	if err != nil {
		return nil, err
	}

	r := wire.NewReader(payload)
	kind, err := r.Uint8()
	if err != nil {
		return nil, newParseError("players", "kind", r.Offset())
	}
	if kind == respChallenge {
		return nil, unknownHeaderWithChallenge(kind, r.Remaining(), respPlayers)
	}
	if kind != respPlayers {
		return nil, &UnknownHeaderError{Got: kind, Expected: []byte{respPlayers}}
	}

	return parsePlayers(r.Remaining())
}

// Rules issues an A2S_RULES request using a challenge obtained from
// RulesChallenge.
func (d *Driver) Rules(ctx context.Context, challenge uint32) (*RulesList, error) {
	req := envelope(reqRules, le32(challenge))
	if err := d.Transport.Send(req); err != nil {
		return nil, err
	}

	payload, err := ReadPayload(ctx, d.Transport, d.Variant)
	if err != nil {
		return nil, err
	}
	payload = stripRulesPrefix(payload)

	r := wire.NewReader(payload)
	kind, err := r.Uint8()
	if err != nil {
		return nil, newParseError("rules", "kind", r.Offset())
	}
	if kind == respChallenge {
		return nil, unknownHeaderWithChallenge(kind, r.Remaining(), respRules)
	}
	if kind != respRules {
		return nil, &UnknownHeaderError{Got: kind, Expected: []byte{respRules}}
	}

	return parseRules(r.Remaining())
}

func unknownHeaderWithChallenge(got byte, rest []byte, expected ...byte) error {
	e := &UnknownHeaderError{Got: got, Expected: expected}
	r := wire.NewReader(rest)
	if ch, err := r.Uint32(); err == nil {
		e.Challenge = ch
		e.hasChall = true
	}
	return e
}

func le32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}
