package platform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tailscale/hujson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"emustation/internal/fileutil"
	"emustation/internal/services"
)

// Source says where a guess came from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceBuiltin  Source = "builtin"
	SourceFallback Source = "fallback"
)

// Mapping holds user-defined entries.
type Mapping struct {
	Custom map[string]string `json:"custom"`
}

// Load reads the mapping file at path. Comments and trailing commas are
// allowed. A missing file yields an empty mapping.
func Load(path string) (*Mapping, error) {
	m := &Mapping{Custom: map[string]string{}}
	if strings.TrimSpace(path) == "" {
		return m, nil
	}
	data, ok, err := fileutil.ReadOptional(path)
	if err != nil {
		return nil, fmt.Errorf("read platform mapping: %w", err)
	}
	if !ok || len(bytes.TrimSpace(data)) == 0 {
		return m, nil
	}
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "platform", "load mapping", "invalid JSONC in "+path, err)
	}
	if err := json.Unmarshal(standardized, m); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "platform", "load mapping", "invalid mapping in "+path, err)
	}
	if m.Custom == nil {
		m.Custom = map[string]string{}
	}
	normalized := make(map[string]string, len(m.Custom))
	for k, v := range m.Custom {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			normalized[k] = strings.TrimSpace(v)
		}
	}
	m.Custom = normalized
	return m, nil
}

// Save writes the mapping to path atomically.
func Save(path string, m *Mapping) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode platform mapping: %w", err)
	}
	return fileutil.WriteFileAtomic(path, append(data, '\n'))
}

// Set stores a custom entry. Keys are matched case-insensitively.
func (m *Mapping) Set(key, platform string) error {
	key = strings.ToLower(strings.TrimSpace(key))
	platform = strings.TrimSpace(platform)
	if key == "" || platform == "" {
		return services.Wrap(services.ErrValidation, "platform", "set", "key and platform are required", nil)
	}
	if m.Custom == nil {
		m.Custom = map[string]string{}
	}
	m.Custom[key] = platform
	return nil
}

// CustomEntries returns the custom entries in match order: longest key
// first, ties broken alphabetically.
func (m *Mapping) CustomEntries() []Entry {
	entries := make([]Entry, 0, len(m.Custom))
	for k, v := range m.Custom {
		entries = append(entries, Entry{Key: k, Platform: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if len(entries[i].Key) != len(entries[j].Key) {
			return len(entries[i].Key) > len(entries[j].Key)
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// Guess returns the platform for an emulator executable path.
func (m *Mapping) Guess(exe string) (string, Source) {
	key := ExeKey(exe)
	if key == "" {
		return "", SourceFallback
	}
	if m != nil {
		for _, e := range m.CustomEntries() {
			if strings.Contains(key, e.Key) {
				return e.Platform, SourceCustom
			}
		}
	}
	for _, e := range builtin {
		if strings.Contains(key, e.Key) {
			return e.Platform, SourceBuiltin
		}
	}
	return capitalize(key), SourceFallback
}

// capitalize upper-cases the first letter of an already lowercase key, so
// "yuzu-cmd" becomes "Yuzu-cmd".
func capitalize(key string) string {
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError {
		return key
	}
	return cases.Upper(language.Und).String(string(r)) + key[size:]
}

// ExeKey lowercases the executable's base name without its extension. Both
// path separators are honored so Windows paths work on any host.
func ExeKey(exe string) string {
	exe = strings.TrimSpace(strings.Trim(exe, `"`))
	if i := strings.LastIndexAny(exe, `/\`); i >= 0 {
		exe = exe[i+1:]
	}
	if i := strings.LastIndexByte(exe, '.'); i > 0 {
		exe = exe[:i]
	}
	return strings.ToLower(exe)
}
