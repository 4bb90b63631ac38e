// Package shortcuts models Steam's non-Steam game registry (shortcuts.vdf)
// and merges discovered ROM entries into it.
//
// Records are thin wrappers over ordered vdf maps: the fields this package
// owns have typed accessors, everything else is carried through untouched.
// Merge is additive. It updates records whose display name matches a
// discovered entry, appends the rest, and never deletes. Records the merge
// does not touch are re-encoded byte for byte.
package shortcuts
