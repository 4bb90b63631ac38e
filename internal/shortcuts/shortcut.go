package shortcuts

import (
	"strconv"

	"emustation/internal/appid"
	"emustation/internal/vdf"
)

// Field keys as Steam writes them.
const (
	FieldAppID               = "appid"
	FieldAppName             = "AppName"
	FieldExe                 = "Exe"
	FieldStartDir            = "StartDir"
	FieldIcon                = "icon"
	FieldShortcutPath        = "ShortcutPath"
	FieldLaunchOptions       = "LaunchOptions"
	FieldIsHidden            = "IsHidden"
	FieldAllowDesktopConfig  = "AllowDesktopConfig"
	FieldAllowOverlay        = "AllowOverlay"
	FieldOpenVR              = "OpenVR"
	FieldDevkit              = "Devkit"
	FieldDevkitGameID        = "DevkitGameID"
	FieldDevkitOverrideAppID = "DevkitOverrideAppID"
	FieldLastPlayTime        = "LastPlayTime"
	FieldFlatpakAppID        = "FlatpakAppID"
	FieldSortAs              = "sortas"
	FieldTags                = "tags"

	legacyAppName = "appname"
	legacyExe     = "exe"
)

// canonicalOrder is the order owned fields are written in for records the
// merge creates or rewrites.
var canonicalOrder = []string{
	FieldAppID,
	FieldAppName,
	FieldExe,
	FieldStartDir,
	FieldIcon,
	FieldShortcutPath,
	FieldLaunchOptions,
	FieldIsHidden,
	FieldAllowDesktopConfig,
	FieldAllowOverlay,
	FieldOpenVR,
	FieldDevkit,
	FieldDevkitGameID,
	FieldDevkitOverrideAppID,
	FieldLastPlayTime,
	FieldFlatpakAppID,
	FieldSortAs,
	FieldTags,
}

// Shortcut is one registry record.
type Shortcut struct {
	fields *vdf.Map
}

// FromMap wraps an existing record map without copying it.
func FromMap(m *vdf.Map) *Shortcut {
	if m == nil {
		m = vdf.NewMap()
	}
	return &Shortcut{fields: m}
}

// Fields exposes the underlying ordered map.
func (s *Shortcut) Fields() *vdf.Map { return s.fields }

// Clone returns a deep copy.
func (s *Shortcut) Clone() *Shortcut { return &Shortcut{fields: s.fields.Clone()} }

// AppID returns the stored identifier. Older tools wrote it as a decimal
// string; both forms are accepted.
func (s *Shortcut) AppID() (uint32, bool) {
	v, ok := s.fields.Get(FieldAppID)
	if !ok {
		return 0, false
	}
	if n, ok := v.Int(); ok {
		return appid.FromSigned(n), true
	}
	if str, ok := v.Str(); ok {
		n, err := strconv.ParseUint(str, 10, 32)
		if err == nil {
			return uint32(n), true
		}
		if signed, err := strconv.ParseInt(str, 10, 32); err == nil {
			return appid.FromSigned(int32(signed)), true
		}
	}
	return 0, false
}

// Name returns AppName, falling back to the legacy lowercase key.
func (s *Shortcut) Name() string {
	if name, ok := s.fields.GetString(FieldAppName); ok {
		return name
	}
	name, _ := s.fields.GetString(legacyAppName)
	return name
}

func (s *Shortcut) matches(name string) bool {
	if v, ok := s.fields.GetString(FieldAppName); ok && v == name {
		return true
	}
	v, ok := s.fields.GetString(legacyAppName)
	return ok && v == name
}

// Exe returns the quoted executable path.
func (s *Shortcut) Exe() string {
	if v, ok := s.fields.GetString(FieldExe); ok {
		return v
	}
	v, _ := s.fields.GetString(legacyExe)
	return v
}

func (s *Shortcut) StartDir() string      { return s.str(FieldStartDir) }
func (s *Shortcut) Icon() string          { return s.str(FieldIcon) }
func (s *Shortcut) LaunchOptions() string { return s.str(FieldLaunchOptions) }

// LastPlayTime returns the last-played unix timestamp, zero if unset.
func (s *Shortcut) LastPlayTime() int64 {
	v, _ := s.fields.GetInt(FieldLastPlayTime)
	return int64(uint32(v))
}

// Hidden reports the IsHidden flag.
func (s *Shortcut) Hidden() bool {
	v, _ := s.fields.GetInt(FieldIsHidden)
	return v != 0
}

// Tags returns the tag values in order.
func (s *Shortcut) Tags() []string {
	m, ok := s.fields.GetMap(FieldTags)
	if !ok {
		return nil
	}
	tags := make([]string, 0, m.Len())
	for _, e := range m.Entries() {
		if v, ok := e.Value.Str(); ok {
			tags = append(tags, v)
		}
	}
	return tags
}

func (s *Shortcut) str(key string) string {
	v, _ := s.fields.GetString(key)
	return v
}

// canonicalize rebuilds the record with owned fields first in canonical
// order, followed by the remaining fields in their existing order.
func (s *Shortcut) canonicalize() {
	owned := make(map[string]struct{}, len(canonicalOrder))
	out := vdf.NewMap()
	for _, key := range canonicalOrder {
		owned[key] = struct{}{}
		if v, ok := s.fields.Get(key); ok {
			out.Append(key, v)
		}
	}
	for _, e := range s.fields.Entries() {
		if _, ok := owned[e.Key]; ok {
			continue
		}
		out.Append(e.Key, e.Value)
	}
	s.fields = out
}
