// Package vdf reads and writes Valve's KeyValues formats used by the Steam
// client's per-account configuration.
//
// The binary form backs shortcuts.vdf. Each map child is a one byte type tag,
// a NUL-terminated key and a payload; a bare 0x08 byte closes the map. Maps
// are decoded into ordered child lists rather than Go maps so that keys this
// module does not understand, duplicate keys, and the original field order all
// survive a decode/encode cycle byte for byte.
//
// DecodeText parses the quoted text form used by files such as
// localconfig.vdf. It is read-only.
package vdf
