// Package appid derives the identifiers Steam assigns to non-Steam shortcuts.
//
// Steam recomputes the value from the shortcut's executable and name, so the
// derivation here must match the client bit for bit: a CRC-32 (IEEE) over the
// backslash-normalized executable path followed by the display name, with the
// high bit forced on to mark the entry as non-native.
//
// The registry stores the value in a signed 32-bit field while collections and
// artwork file names use the unsigned form. ToSigned and FromSigned convert
// between the two without relying on platform integer widths.
package appid
