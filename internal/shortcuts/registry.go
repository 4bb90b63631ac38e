package shortcuts

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"emustation/internal/fileutil"
	"emustation/internal/logging"
	"emustation/internal/services"
	"emustation/internal/vdf"
)

const rootKey = "shortcuts"

// Registry is the ordered list of shortcut records in one shortcuts.vdf.
// Positional index keys are regenerated on every encode.
type Registry struct {
	root  *vdf.Map
	items []*Shortcut
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{root: vdf.NewMap()}
}

// Len returns the number of records.
func (r *Registry) Len() int { return len(r.items) }

// Shortcuts returns the records in registry order.
func (r *Registry) Shortcuts() []*Shortcut { return r.items }

// Find returns the first record whose display name matches name exactly.
func (r *Registry) Find(name string) (*Shortcut, bool) {
	for _, s := range r.items {
		if s.matches(name) {
			return s, true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the registry.
func (r *Registry) Clone() *Registry {
	out := &Registry{root: r.root.Clone(), items: make([]*Shortcut, len(r.items))}
	for i, s := range r.items {
		out.items[i] = s.Clone()
	}
	return out
}

// DecodeRegistry parses shortcuts.vdf bytes. A root without a "shortcuts"
// map decodes as an empty registry; any other root keys are preserved.
func DecodeRegistry(data []byte) (*Registry, error) {
	root, err := vdf.Decode(data)
	if err != nil {
		return nil, services.Wrap(services.ErrFormat, "shortcuts", "decode", "", err)
	}
	reg := &Registry{root: root}
	list, ok := root.GetMap(rootKey)
	if !ok {
		return reg, nil
	}
	for _, e := range list.Entries() {
		m, ok := e.Value.Map()
		if !ok {
			return nil, services.Wrap(services.ErrFormat, "shortcuts", "decode",
				fmt.Sprintf("entry %q is a %s, not a record", e.Key, e.Value.Kind()), nil)
		}
		reg.items = append(reg.items, FromMap(m))
	}
	return reg, nil
}

// EncodeRegistry serializes reg with records keyed "0", "1", … in order.
func EncodeRegistry(reg *Registry) ([]byte, error) {
	list := vdf.NewMap()
	for i, s := range reg.items {
		list.Append(strconv.Itoa(i), vdf.MapValue(s.fields))
	}
	root := reg.root.Clone()
	if root == nil {
		root = vdf.NewMap()
	}
	root.Set(rootKey, vdf.MapValue(list))
	data, err := vdf.Encode(root)
	if err != nil {
		return nil, services.Wrap(services.ErrFormat, "shortcuts", "encode", "", err)
	}
	return data, nil
}

// Load reads the registry at path. A missing file yields an empty registry.
// A malformed file is logged and also yields an empty registry; only I/O
// failures are returned.
func Load(path string, logger *slog.Logger) (*Registry, error) {
	logger = logging.NewComponentLogger(logger, "shortcuts")
	data, ok, err := fileutil.ReadOptional(path)
	if err != nil {
		return nil, fmt.Errorf("read shortcuts registry: %w", err)
	}
	if !ok {
		logger.Debug("shortcuts registry missing; starting empty", logging.String("path", path))
		return NewRegistry(), nil
	}
	reg, err := DecodeRegistry(data)
	if err != nil {
		var fe *vdf.FormatError
		hint := "file will be rewritten with discovered entries only"
		if errors.As(err, &fe) {
			hint = fmt.Sprintf("corrupt at byte %d; %s", fe.Offset, hint)
		}
		logging.WarnWithContext(logger, "shortcuts registry unreadable; starting empty", "registry_corrupt",
			logging.String("path", path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, hint),
			logging.String(logging.FieldImpact, "existing non-Steam shortcuts for this account will be replaced"),
		)
		return NewRegistry(), nil
	}
	return reg, nil
}

// Save atomically replaces the file at path with the encoded registry.
func Save(path string, reg *Registry) error {
	data, err := EncodeRegistry(reg)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("write shortcuts registry: %w", err)
	}
	return nil
}
