package platform

// Entry maps an executable-name fragment to a platform.
type Entry struct {
	Key      string `json:"key"`
	Platform string `json:"platform"`
}

// builtin is searched in order; the first key contained in the executable
// name wins.
var builtin = []Entry{
	{"yuzu", "Switch"},
	{"ryujinx", "Switch"},
	{"eden", "Switch"},
	{"citra", "3DS"},
	{"pcsx2", "PS2"},
	{"dolphin", "GameCube/Wii"},
	{"snes9x", "SNES"},
	{"zsnes", "SNES"},
	{"bsnes", "SNES"},
	{"retroarch", "RetroArch"},
	{"mame", "Arcade"},
	{"epsxe", "PS1"},
	{"duckstation", "PS1"},
	{"melonds", "DS"},
	{"desmume", "DS"},
	{"project64", "N64"},
	{"cemu", "Wii U"},
	{"rpcs3", "PS3"},
	{"xemu", "Xbox"},
	{"cxbx", "Xbox"},
	{"openemu", "Multi"},
	{"mednafen", "Multi"},
	{"fceux", "NES"},
	{"nestopia", "NES"},
	{"visualboyadvance", "GBA"},
	{"mgba", "GBA"},
	{"no$gba", "GBA"},
	{"mupen64", "N64"},
	{"genplus", "Genesis"},
	{"fusion", "Genesis"},
	{"kega", "Genesis"},
	{"ppsspp", "PSP"},
	{"vita3k", "Vita"},
	{"citra-qt", "3DS"},
	{"redream", "Dreamcast"},
	{"flycast", "Dreamcast"},
	{"openmsx", "MSX"},
	{"fs-uae", "Amiga"},
	{"vice", "C64"},
	{"higan", "Multi"},
	{"mess", "Multi"},
}

// Builtin returns a copy of the built-in table.
func Builtin() []Entry {
	return append([]Entry(nil), builtin...)
}
