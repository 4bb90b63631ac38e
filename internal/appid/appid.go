package appid

import (
	"hash/crc32"
	"strconv"
	"strings"
)

// shortcutBit marks identifiers that belong to non-Steam shortcuts.
const shortcutBit uint32 = 0x80000000

// NormalizePath converts forward slashes to the backslashes Steam stores.
func NormalizePath(path string) string {
	return strings.ReplaceAll(path, "/", "\\")
}

// Derive returns the shortcut identifier for an executable and display name.
func Derive(executablePath, displayName string) uint32 {
	h := crc32.NewIEEE()
	_, _ = h.Write([]byte(NormalizePath(executablePath)))
	_, _ = h.Write([]byte(displayName))
	return h.Sum32() | shortcutBit
}

// ToSigned reinterprets id as the two's-complement value stored in the
// registry's int32 field.
func ToSigned(id uint32) int32 {
	return int32(id)
}

// FromSigned reverses ToSigned.
func FromSigned(v int32) uint32 {
	return uint32(v)
}

// IsShortcut reports whether id carries the non-Steam shortcut bit.
func IsShortcut(id uint32) bool {
	return id&shortcutBit != 0
}

// GridBase returns the unsigned decimal form Steam uses for artwork names.
func GridBase(id uint32) string {
	return strconv.FormatUint(uint64(id), 10)
}
