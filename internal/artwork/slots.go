package artwork

import (
	"path/filepath"

	"emustation/internal/appid"
	"emustation/internal/artwork/steamgriddb"
)

// Slot is one artwork file Steam reads for a shortcut.
type Slot struct {
	Name   string
	Kind   steamgriddb.Kind
	Suffix string
	Accept func(steamgriddb.Image) bool
}

var (
	SlotPortrait  = Slot{Name: "portrait grid", Kind: steamgriddb.KindGrid, Suffix: "p", Accept: steamgriddb.Image.Portrait}
	SlotLandscape = Slot{Name: "landscape grid", Kind: steamgriddb.KindGrid, Suffix: "", Accept: steamgriddb.Image.Landscape}
	SlotHero      = Slot{Name: "hero", Kind: steamgriddb.KindHero, Suffix: "_hero"}
	SlotIcon      = Slot{Name: "icon", Kind: steamgriddb.KindIcon, Suffix: "_icon"}
	SlotLogo      = Slot{Name: "logo", Kind: steamgriddb.KindLogo, Suffix: "_logo"}
)

// Slots lists every slot in download order.
var Slots = []Slot{SlotPortrait, SlotLandscape, SlotHero, SlotIcon, SlotLogo}

// Path returns the file a slot is stored at for identifier id.
func (s Slot) Path(gridDir string, id uint32) string {
	return filepath.Join(gridDir, appid.GridBase(id)+s.Suffix+".png")
}

// pick returns the URL of the first acceptable image.
func (s Slot) pick(images []steamgriddb.Image) (string, bool) {
	for _, img := range images {
		if img.URL == "" {
			continue
		}
		if s.Accept != nil && !s.Accept(img) {
			continue
		}
		return img.URL, true
	}
	return "", false
}

// IconPath returns where the icon slot for id lives.
func IconPath(gridDir string, id uint32) string {
	return SlotIcon.Path(gridDir, id)
}
