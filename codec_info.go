package a2s

import "github.com/steamquery/a2s/internal/wire"

// parseInfoOld decodes the body of an 'm' (obsolete GoldSrc) A2S_INFO
// response. The leading 'm' tag has already been consumed by the driver.
func parseInfoOld(body []byte) (*InfoOld, error) {
	r := wire.NewReader(body)
	info := &InfoOld{}
	var err error

	if info.Address, err = r.CString(); err != nil {
		return nil, newParseError("info_old", "address", r.Offset())
	}
	if info.Name, err = r.CString(); err != nil {
		return nil, newParseError("info_old", "name", r.Offset())
	}
	if info.Map, err = r.CString(); err != nil {
		return nil, newParseError("info_old", "map", r.Offset())
	}
	if info.Folder, err = r.CString(); err != nil {
		return nil, newParseError("info_old", "folder", r.Offset())
	}
	if info.Game, err = r.CString(); err != nil {
		return nil, newParseError("info_old", "game", r.Offset())
	}
	if info.Players, err = r.Uint8(); err != nil {
		return nil, newParseError("info_old", "players", r.Offset())
	}
	if info.MaxPlayers, err = r.Uint8(); err != nil {
		return nil, newParseError("info_old", "max_players", r.Offset())
	}
	if info.Protocol, err = r.Uint8(); err != nil {
		return nil, newParseError("info_old", "protocol", r.Offset())
	}
	if info.ServerType, err = r.Uint8(); err != nil {
		return nil, newParseError("info_old", "server_type", r.Offset())
	}
	if info.Environment, err = r.Uint8(); err != nil {
		return nil, newParseError("info_old", "environment", r.Offset())
	}

	isPrivate, err := r.Uint8()
	if err != nil {
		return nil, newParseError("info_old", "is_private", r.Offset())
	}
	info.IsPrivate = isPrivate != 0

	modFlag, err := r.Uint8()
	if err != nil {
		return nil, newParseError("info_old", "mod_flag", r.Offset())
	}
	if modFlag == 1 {
		mod, err := parseModData(r)
		if err != nil {
			return nil, err
		}
		info.ModData = mod
	}

	vac, err := r.Uint8()
	if err != nil {
		return nil, newParseError("info_old", "vac_secured", r.Offset())
	}
	info.VACSecured = vac != 0

	if info.BotsNum, err = r.Uint8(); err != nil {
		return nil, newParseError("info_old", "bots_num", r.Offset())
	}

	return info, nil
}

func parseModData(r *wire.Reader) (*ModData, error) {
	m := &ModData{}
	var err error

	if m.Link, err = r.CString(); err != nil {
		return nil, newParseError("mod_data", "link", r.Offset())
	}
	if m.DownloadLink, err = r.CString(); err != nil {
		return nil, newParseError("mod_data", "download_link", r.Offset())
	}
	if err = r.Skip(1); err != nil { // reserved NUL terminator byte
		return nil, newParseError("mod_data", "reserved", r.Offset())
	}
	if m.Version, err = r.Int32(); err != nil {
		return nil, newParseError("mod_data", "version", r.Offset())
	}
	if m.Size, err = r.Int32(); err != nil {
		return nil, newParseError("mod_data", "size", r.Offset())
	}

	mpOnly, err := r.Uint8()
	if err != nil {
		return nil, newParseError("mod_data", "mp_only", r.Offset())
	}
	m.MPOnly = mpOnly != 0

	customDLL, err := r.Uint8()
	if err != nil {
		return nil, newParseError("mod_data", "custom_dll", r.Offset())
	}
	m.CustomDLL = customDLL != 0

	return m, nil
}

// parseInfoNew decodes the body of an 'I' (current Source engine)
// A2S_INFO response. The leading 'I' tag has already been consumed by the
// driver.
func parseInfoNew(body []byte) (*InfoNew, error) {
	r := wire.NewReader(body)
	info := &InfoNew{}
	var err error

	if info.Protocol, err = r.Uint8(); err != nil {
		return nil, newParseError("info_new", "protocol", r.Offset())
	}
	if info.Name, err = r.CString(); err != nil {
		return nil, newParseError("info_new", "name", r.Offset())
	}
	if info.Map, err = r.CString(); err != nil {
		return nil, newParseError("info_new", "map", r.Offset())
	}
	if info.Folder, err = r.CString(); err != nil {
		return nil, newParseError("info_new", "folder", r.Offset())
	}
	if info.Game, err = r.CString(); err != nil {
		return nil, newParseError("info_new", "game", r.Offset())
	}
	if info.SteamAppID, err = r.Int16(); err != nil {
		return nil, newParseError("info_new", "steamid", r.Offset())
	}
	if info.Players, err = r.Uint8(); err != nil {
		return nil, newParseError("info_new", "players", r.Offset())
	}
	if info.MaxPlayers, err = r.Uint8(); err != nil {
		return nil, newParseError("info_new", "max_players", r.Offset())
	}
	if info.Bots, err = r.Uint8(); err != nil {
		return nil, newParseError("info_new", "bots", r.Offset())
	}
	if info.ServerType, err = r.Uint8(); err != nil {
		return nil, newParseError("info_new", "server_type", r.Offset())
	}
	if info.Environment, err = r.Uint8(); err != nil {
		return nil, newParseError("info_new", "environment", r.Offset())
	}

	visible, err := r.Uint8()
	if err != nil {
		return nil, newParseError("info_new", "is_visible", r.Offset())
	}
	info.IsVisible = visible != 0

	vac, err := r.Uint8()
	if err != nil {
		return nil, newParseError("info_new", "vac_secured", r.Offset())
	}
	info.VACSecured = vac != 0

	if info.Version, err = r.CString(); err != nil {
		return nil, newParseError("info_new", "version", r.Offset())
	}

	extra, err := parseExtraData(r)
	if err != nil {
		return nil, err
	}
	info.Extra = extra

	return info, nil
}

// encodeInfoNew appends the wire form of info to w. It is the inverse of
// parseInfoNew, used by the ExtraData round-trip tests.
func encodeInfoNew(w *wire.Writer, info *InfoNew) {
	w.Uint8(info.Protocol)
	w.CString(info.Name)
	w.CString(info.Map)
	w.CString(info.Folder)
	w.CString(info.Game)
	w.Int16(info.SteamAppID)
	w.Uint8(info.Players)
	w.Uint8(info.MaxPlayers)
	w.Uint8(info.Bots)
	w.Uint8(info.ServerType)
	w.Uint8(info.Environment)
	if info.IsVisible {
		w.Uint8(1)
	} else {
		w.Uint8(0)
	}
	if info.VACSecured {
		w.Uint8(1)
	} else {
		w.Uint8(0)
	}
	w.CString(info.Version)
	encodeExtraData(w, info.Extra)
}
