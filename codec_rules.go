package a2s

import "github.com/steamquery/a2s/internal/wire"

// rulesSkipPrefix is an undocumented quirk some servers exhibit: an extra
// four 0xFF bytes ahead of the 'E' response kind, distinct from the normal
// single-packet envelope header. stripRulesPrefix tolerates it whenever
// present; the set of server builds that do this is not documented
// upstream (see DESIGN.md), so this is not gated by any detected server
// version. It must run before the response kind byte is read (§9), so the
// driver's rules dispatch calls it ahead of the tag-byte check rather than
// parseRules seeing it internally.
var rulesSkipPrefix = [4]byte{0xFF, 0xFF, 0xFF, 0xFF}

func stripRulesPrefix(payload []byte) []byte {
	if len(payload) >= 4 && [4]byte(payload[:4]) == rulesSkipPrefix {
		return payload[4:]
	}
	return payload
}

// parseRules decodes the body of an 'E' A2S_RULES response, once the
// driver has already consumed any FF-prefix and the tag byte itself. The
// leading uint16 count is advisory: parsing continues greedily until the
// buffer is exhausted, and the returned Rules slice reflects what was
// actually parseable rather than AdvisoryCount (§4.2, §9).
func parseRules(body []byte) (*RulesList, error) {
	r := wire.NewReader(body)

	count, err := r.Uint16()
	if err != nil {
		return nil, newParseError("rules", "count", r.Offset())
	}

	list := &RulesList{AdvisoryCount: count, Rules: make([]Rule, 0, count)}
	for r.Len() > 0 {
		key, err := r.CString()
		if err != nil {
			break
		}
		value, err := r.CString()
		if err != nil {
			break
		}
		list.Rules = append(list.Rules, Rule{Key: key, Value: value})
	}

	return list, nil
}
