package collections

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"emustation/internal/services"
)

// KeyPrefix marks ledger pairs that describe user collections.
const KeyPrefix = "user-collections."

// Ledger is a decoded cloud-storage namespace file.
type Ledger struct {
	pairs []pair
}

type pair struct {
	key    string
	record *object
}

// Collection is a read-only view of one user collection.
type Collection struct {
	Key       string
	ID        string
	Name      string
	Added     []uint32
	Version   string
	Timestamp int64
}

// AttachResult describes what Attach did.
type AttachResult struct {
	Key     string
	Created bool
	// Changed is true when membership grew (always true for Created).
	Changed bool
	// NewMembers counts identifiers that were not already in the collection.
	NewMembers int
	Version    string
	Total      int
}

// Parse decodes ledger bytes. Pairs must be two-element arrays of a string
// key and an object record.
func Parse(data []byte) (*Ledger, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, services.Wrap(services.ErrFormat, "collections", "parse", "ledger is not a JSON array", err)
	}
	l := &Ledger{pairs: make([]pair, 0, len(raw))}
	for i, elem := range raw {
		var parts []json.RawMessage
		if err := json.Unmarshal(elem, &parts); err != nil || len(parts) != 2 {
			return nil, services.Wrap(services.ErrFormat, "collections", "parse",
				fmt.Sprintf("entry %d is not a [key, record] pair", i), err)
		}
		var key string
		if err := json.Unmarshal(parts[0], &key); err != nil {
			return nil, services.Wrap(services.ErrFormat, "collections", "parse",
				fmt.Sprintf("entry %d key is not a string", i), err)
		}
		rec := newObject()
		if err := json.Unmarshal(parts[1], rec); err != nil {
			return nil, services.Wrap(services.ErrFormat, "collections", "parse",
				fmt.Sprintf("entry %q record is not an object", key), err)
		}
		l.pairs = append(l.pairs, pair{key: key, record: rec})
	}
	return l, nil
}

// Bytes serializes the ledger as compact JSON.
func (l *Ledger) Bytes() ([]byte, error) {
	parts := make([][2]any, len(l.pairs))
	for i, p := range l.pairs {
		parts[i] = [2]any{p.key, p.record}
	}
	data, err := encodeCompact(parts)
	if err != nil {
		return nil, services.Wrap(services.ErrFormat, "collections", "encode", "", err)
	}
	return data, nil
}

// Len returns the number of pairs.
func (l *Ledger) Len() int { return len(l.pairs) }

// Keys returns the pair keys in ledger order.
func (l *Ledger) Keys() []string {
	keys := make([]string, len(l.pairs))
	for i, p := range l.pairs {
		keys[i] = p.key
	}
	return keys
}

// Collections lists readable user collections in ledger order. Deleted
// collections (no value document) are omitted.
func (l *Ledger) Collections() []Collection {
	var out []Collection
	for _, p := range l.pairs {
		doc, ok := p.document()
		if !ok {
			continue
		}
		name, _ := doc.getString("name")
		id, _ := doc.getString("id")
		var added []uint32
		if m, err := decodeMembers(doc); err == nil {
			added = m.ids()
		}
		version, _ := versionOf(p.record)
		ts, _ := timestampOf(p.record)
		out = append(out, Collection{
			Key:       p.key,
			ID:        id,
			Name:      name,
			Added:     added,
			Version:   strconv.FormatUint(version, 10),
			Timestamp: ts,
		})
	}
	return out
}

// Attach adds ids to the collection called name, creating it when absent.
// The pair list is sorted by key afterwards.
func (l *Ledger) Attach(ids []uint32, name string, now time.Time) (AttachResult, error) {
	want := slices.Clone(ids)
	slices.Sort(want)
	want = slices.Compact(want)
	if want == nil {
		want = []uint32{}
	}

	res, found, err := l.attachExisting(want, name, now)
	if err != nil {
		return AttachResult{}, err
	}
	if !found {
		res, err = l.create(want, name, now)
		if err != nil {
			return AttachResult{}, err
		}
	}
	sort.SliceStable(l.pairs, func(i, j int) bool { return l.pairs[i].key < l.pairs[j].key })
	return res, nil
}

func (l *Ledger) attachExisting(ids []uint32, name string, now time.Time) (AttachResult, bool, error) {
	for _, p := range l.pairs {
		doc, ok := p.document()
		if !ok {
			continue
		}
		if n, _ := doc.getString("name"); n != name {
			continue
		}
		current, err := decodeMembers(doc)
		if err != nil {
			return AttachResult{}, true, services.Wrap(services.ErrFormat, "collections", "attach",
				fmt.Sprintf("collection %q has an unreadable member list", name), err)
		}
		newMembers := current.add(ids)

		version, _ := versionOf(p.record)
		res := AttachResult{Key: p.key, Total: current.len(), NewMembers: newMembers}
		if res.NewMembers == 0 {
			res.Version = strconv.FormatUint(version, 10)
			return res, true, nil
		}

		if err := doc.set("added", current.encode()); err != nil {
			return AttachResult{}, true, err
		}
		if err := p.setDocument(doc); err != nil {
			return AttachResult{}, true, err
		}
		res.Version = strconv.FormatUint(version+1, 10)
		if err := p.record.set("timestamp", now.Unix()); err != nil {
			return AttachResult{}, true, err
		}
		if err := p.record.set("version", res.Version); err != nil {
			return AttachResult{}, true, err
		}
		res.Changed = true
		return res, true, nil
	}
	return AttachResult{}, false, nil
}

func (l *Ledger) create(ids []uint32, name string, now time.Time) (AttachResult, error) {
	id := fmt.Sprintf("uc-%x", now.UnixMilli())
	key := KeyPrefix + id

	doc := newObject()
	if err := doc.set("id", id); err != nil {
		return AttachResult{}, err
	}
	if err := doc.set("name", name); err != nil {
		return AttachResult{}, err
	}
	if err := doc.set("added", ids); err != nil {
		return AttachResult{}, err
	}
	if err := doc.set("removed", []uint32{}); err != nil {
		return AttachResult{}, err
	}

	var maxVersion uint64
	for _, p := range l.pairs {
		if v, ok := versionOf(p.record); ok && v > maxVersion {
			maxVersion = v
		}
	}
	version := strconv.FormatUint(maxVersion+1, 10)

	rec := newObject()
	p := pair{key: key, record: rec}
	if err := rec.set("key", key); err != nil {
		return AttachResult{}, err
	}
	if err := rec.set("timestamp", now.Unix()); err != nil {
		return AttachResult{}, err
	}
	if err := p.setDocument(doc); err != nil {
		return AttachResult{}, err
	}
	if err := rec.set("version", version); err != nil {
		return AttachResult{}, err
	}
	if err := rec.set("strMethodId", "static"); err != nil {
		return AttachResult{}, err
	}
	l.pairs = append(l.pairs, p)

	return AttachResult{
		Key:        key,
		Created:    true,
		Changed:    true,
		NewMembers: len(ids),
		Version:    version,
		Total:      len(ids),
	}, nil
}

// document decodes the nested value text of a user collection pair.
func (p pair) document() (*object, bool) {
	if !strings.HasPrefix(p.key, KeyPrefix) {
		return nil, false
	}
	text, ok := p.record.getString("value")
	if !ok || text == "" {
		return nil, false
	}
	doc := newObject()
	if err := json.Unmarshal([]byte(text), doc); err != nil {
		return nil, false
	}
	return doc, true
}

func (p pair) setDocument(doc *object) error {
	text, err := encodeCompact(doc)
	if err != nil {
		return err
	}
	return p.record.set("value", string(text))
}

// members is a collection's "added" list. Integer entries are kept as
// int64 so signed or out-of-range values written by other tools survive;
// anything that is not an integer is kept verbatim after them.
type members struct {
	ints  []int64
	other []json.RawMessage
}

func decodeMembers(doc *object) (members, error) {
	raw, ok := doc.get("added")
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return members{}, nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return members{}, err
	}
	var m members
	for _, el := range elems {
		if v, ok := memberInt(el); ok {
			m.ints = append(m.ints, v)
			continue
		}
		m.other = append(m.other, el)
	}
	slices.Sort(m.ints)
	m.ints = slices.Compact(m.ints)
	return m, nil
}

// memberInt reads an integer member written as a number, an integral float
// or digit text.
func memberInt(el json.RawMessage) (int64, bool) {
	var num json.Number
	if err := json.Unmarshal(el, &num); err != nil {
		return 0, false
	}
	if v, err := num.Int64(); err == nil {
		return v, true
	}
	f, err := num.Float64()
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// add merges ids into m and returns how many were not already present.
func (m *members) add(ids []uint32) int {
	added := 0
	for _, id := range ids {
		v := int64(id)
		if _, found := slices.BinarySearch(m.ints, v); found {
			continue
		}
		m.ints = append(m.ints, v)
		added++
	}
	slices.Sort(m.ints)
	return added
}

func (m members) len() int { return len(m.ints) + len(m.other) }

// ids returns the members that are valid shortcut identifiers.
func (m members) ids() []uint32 {
	out := []uint32{}
	for _, v := range m.ints {
		if v >= 0 && v <= math.MaxUint32 {
			out = append(out, uint32(v))
		}
	}
	return out
}

func (m members) encode() []json.RawMessage {
	out := make([]json.RawMessage, 0, m.len())
	for _, v := range m.ints {
		out = append(out, json.RawMessage(strconv.FormatInt(v, 10)))
	}
	return append(out, m.other...)
}

// versionOf reads a record's version, which Steam writes as digit text.
func versionOf(rec *object) (uint64, bool) {
	raw, ok := rec.get("version")
	if !ok {
		return 0, false
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		text = string(raw)
	}
	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func timestampOf(rec *object) (int64, bool) {
	raw, ok := rec.get("timestamp")
	if !ok {
		return 0, false
	}
	ts, err := strconv.ParseInt(string(raw), 10, 64)
	return ts, err == nil
}
