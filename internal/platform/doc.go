// Package platform guesses the collection name for an emulator from its
// executable name. A built-in table covers common emulators; user entries
// stored in a JSONC mapping file take precedence.
package platform
