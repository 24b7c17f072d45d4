package a2s

import "github.com/steamquery/a2s/internal/wire"

// parseExtraData reads the edf bitmask then applies each bit's fields in
// the fixed wire order (§3). Each bit is checked independently — clearing
// one never implies another is absent or present.
func parseExtraData(r *wire.Reader) (ExtraData, error) {
	edf, err := r.Uint8()
	if err != nil {
		return ExtraData{}, newParseError("extra_data", "edf", r.Offset())
	}
	ed := ExtraData{EDF: edf}

	if edf&edfPort != 0 {
		port, err := r.Uint16()
		if err != nil {
			return ExtraData{}, newParseError("extra_data", "port", r.Offset())
		}
		ed.Port = &port
	}

	if edf&edfSteamID != 0 {
		id, err := r.Uint64()
		if err != nil {
			return ExtraData{}, newParseError("extra_data", "server_steamid", r.Offset())
		}
		ed.SteamID = &id
	}

	if edf&edfSourceTV != 0 {
		port, err := r.Uint16()
		if err != nil {
			return ExtraData{}, newParseError("extra_data", "port_source_tv", r.Offset())
		}
		name, err := r.CString()
		if err != nil {
			return ExtraData{}, newParseError("extra_data", "name_source_tv", r.Offset())
		}
		ed.SourceTV = &SourceTV{Port: port, Name: name}
	}

	if edf&edfKeywords != 0 {
		kw, err := r.CString()
		if err != nil {
			return ExtraData{}, newParseError("extra_data", "keywords", r.Offset())
		}
		ed.Keywords = &kw
	}

	if edf&edfGameID != 0 {
		id, err := r.Uint64()
		if err != nil {
			return ExtraData{}, newParseError("extra_data", "gameid", r.Offset())
		}
		ed.GameID = &id
	}

	return ed, nil
}

// encodeExtraData appends the wire form of ed to w, recomputing edf from
// which optional fields are non-nil rather than trusting ed.EDF. This is
// the inverse of parseExtraData and is exercised by the round-trip tests.
func encodeExtraData(w *wire.Writer, ed ExtraData) {
	var edf byte
	if ed.Port != nil {
		edf |= edfPort
	}
	if ed.SteamID != nil {
		edf |= edfSteamID
	}
	if ed.SourceTV != nil {
		edf |= edfSourceTV
	}
	if ed.Keywords != nil {
		edf |= edfKeywords
	}
	if ed.GameID != nil {
		edf |= edfGameID
	}

	w.Uint8(edf)
	if ed.Port != nil {
		w.Uint16(*ed.Port)
	}
	if ed.SteamID != nil {
		w.Uint64(*ed.SteamID)
	}
	if ed.SourceTV != nil {
		w.Uint16(ed.SourceTV.Port)
		w.CString(ed.SourceTV.Name)
	}
	if ed.Keywords != nil {
		w.CString(*ed.Keywords)
	}
	if ed.GameID != nil {
		w.Uint64(*ed.GameID)
	}
}
