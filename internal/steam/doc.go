// Package steam locates a Steam installation's userdata directory and the
// per-account files emustation edits: shortcuts.vdf, the grid artwork
// directory, and the cloud-storage collection ledger.
package steam
