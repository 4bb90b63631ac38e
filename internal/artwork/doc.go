// Package artwork downloads SteamGridDB artwork into an account's grid
// directory under the file names Steam looks for.
//
// Every failure here is non-fatal: a lookup that goes wrong is logged and the
// caller simply gets no icon. Existing files are never re-downloaded.
package artwork
