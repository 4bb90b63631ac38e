// Package collections edits Steam's per-account collection ledger,
// cloud-storage-namespace-1.json.
//
// The ledger is a JSON array of [key, record] pairs sorted by key. Each
// user collection record carries a text version, a unix timestamp and a
// "value" field that is itself JSON text describing the collection's name
// and member app ids. Steam notices edits by the version and timestamp, so
// both move only when membership actually changes. Fields this package does
// not understand are kept in their original order.
package collections
