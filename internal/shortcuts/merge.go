package shortcuts

import (
	"slices"
	"strings"
	"time"

	"emustation/internal/appid"
	"emustation/internal/config"
	"emustation/internal/vdf"
)

// Entry is one discovered game.
type Entry struct {
	DisplayName string
	Path        string
	// IconPath is the cached artwork to reference, empty when none.
	IconPath string
}

// MergeOptions carries the per-sync values written into every record.
type MergeOptions struct {
	Executable    string
	LaunchOptions string
	Now           time.Time
}

// Result summarizes a merge pass.
type Result struct {
	Processed int
	Created   int
	Updated   int
	// Identifiers is the sorted, distinct set of identifiers for the
	// discovered entries.
	Identifiers []uint32
}

// Merge reconciles discovered entries against existing and returns the new
// registry. existing is not modified. Matching is by exact display name
// against both existing records and records created earlier in this pass.
func Merge(existing *Registry, discovered []Entry, opts MergeOptions) (*Registry, Result) {
	var out *Registry
	if existing == nil {
		out = NewRegistry()
	} else {
		out = existing.Clone()
	}
	template := opts.LaunchOptions
	if template == "" {
		template = config.RomPlaceholder
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	exe := QuotePath(opts.Executable)
	startDir := QuotePath(dirname(opts.Executable))

	var res Result
	for _, entry := range discovered {
		id := appid.Derive(opts.Executable, entry.DisplayName)
		res.Identifiers = append(res.Identifiers, id)
		res.Processed++

		launch := strings.ReplaceAll(template, config.RomPlaceholder, `"`+entry.Path+`"`)
		if s, ok := out.Find(entry.DisplayName); ok {
			f := s.fields
			f.Set(FieldAppID, vdf.Int32(appid.ToSigned(id)))
			f.Set(FieldAppName, vdf.String(entry.DisplayName))
			f.Set(FieldExe, vdf.String(exe))
			f.Set(FieldStartDir, vdf.String(startDir))
			f.Set(FieldLaunchOptions, vdf.String(launch))
			f.Set(FieldLastPlayTime, vdf.Int32(int32(now.Unix())))
			f.Set(FieldDevkitOverrideAppID, vdf.Int32(0))
			f.Set(FieldFlatpakAppID, vdf.String(""))
			f.Set(FieldSortAs, vdf.String(""))
			if entry.IconPath != "" {
				f.Set(FieldIcon, vdf.String(entry.IconPath))
			}
			if !f.Has(FieldTags) {
				f.Set(FieldTags, vdf.MapValue(vdf.NewMap()))
			}
			f.Delete(legacyAppName)
			f.Delete(legacyExe)
			s.canonicalize()
			res.Updated++
			continue
		}

		f := vdf.NewMap()
		f.Append(FieldAppID, vdf.Int32(appid.ToSigned(id)))
		f.Append(FieldAppName, vdf.String(entry.DisplayName))
		f.Append(FieldExe, vdf.String(exe))
		f.Append(FieldStartDir, vdf.String(startDir))
		f.Append(FieldIcon, vdf.String(entry.IconPath))
		f.Append(FieldShortcutPath, vdf.String(""))
		f.Append(FieldLaunchOptions, vdf.String(launch))
		f.Append(FieldIsHidden, vdf.Int32(0))
		f.Append(FieldAllowDesktopConfig, vdf.Int32(1))
		f.Append(FieldAllowOverlay, vdf.Int32(1))
		f.Append(FieldOpenVR, vdf.Int32(0))
		f.Append(FieldDevkit, vdf.Int32(0))
		f.Append(FieldDevkitGameID, vdf.String(""))
		f.Append(FieldDevkitOverrideAppID, vdf.Int32(0))
		f.Append(FieldLastPlayTime, vdf.Int32(int32(now.Unix())))
		f.Append(FieldFlatpakAppID, vdf.String(""))
		f.Append(FieldSortAs, vdf.String(""))
		f.Append(FieldTags, vdf.MapValue(vdf.NewMap()))
		out.items = append(out.items, FromMap(f))
		res.Created++
	}

	slices.Sort(res.Identifiers)
	res.Identifiers = slices.Compact(res.Identifiers)
	return out, res
}

// QuotePath wraps path in double quotes with Windows separators, the form
// Steam expects in Exe and StartDir.
func QuotePath(path string) string {
	return `"` + appid.NormalizePath(path) + `"`
}

// dirname returns the parent of a path written with either separator.
func dirname(path string) string {
	p := appid.NormalizePath(path)
	i := strings.LastIndexByte(p, '\\')
	switch {
	case i < 0:
		return ""
	case i == 0:
		return `\`
	}
	dir := p[:i]
	if strings.HasSuffix(dir, ":") {
		dir += `\`
	}
	return dir
}
