// Package main hosts the emustation CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration and the Steam userdata
// directory once per invocation, then hands off to the internal packages:
// scanning ROM folders, syncing shortcuts and collections, listing what Steam
// already has, and managing the platform mapping. Keep commands thin; logic
// belongs in internal/.
package main
