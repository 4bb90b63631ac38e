// Package library runs a sync: it registers a batch of discovered ROMs as
// Steam shortcuts for one or more accounts and groups them into a named
// collection.
//
// Inputs are validated and every account is resolved before anything is
// written. Each account is then processed under an advisory lock: load the
// registry, fetch artwork, merge, save, and attach the collection. Artwork
// and collection failures are logged and do not fail the sync.
package library
