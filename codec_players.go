package a2s

import "github.com/steamquery/a2s/internal/wire"

// parsePlayers decodes the body of a 'D' A2S_PLAYER response. The leading
// count is advisory: parsing continues greedily until the buffer is
// exhausted or a field doesn't fit, and the returned slice reflects what
// was actually parseable rather than the declared count (§4.2).
func parsePlayers(body []byte) (*PlayersList, error) {
	r := wire.NewReader(body)

	count, err := r.Uint8()
	if err != nil {
		return nil, newParseError("players", "count", r.Offset())
	}

	list := &PlayersList{Players: make([]Player, 0, count)}
	for r.Len() > 0 {
		var p Player

		index, err := r.Uint8()
		if err != nil {
			break
		}
		p.Index = index

		name, err := r.CString()
		if err != nil {
			break
		}
		p.Name = name

		score, err := r.Int32()
		if err != nil {
			break
		}
		p.Score = score

		duration, err := r.Float32()
		if err != nil {
			break
		}
		p.Duration = duration

		list.Players = append(list.Players, p)
	}

	return list, nil
}
