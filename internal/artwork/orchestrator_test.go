package artwork

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/iotest"

	"emustation/internal/artwork/steamgriddb"
	"emustation/internal/services"
)

type fakeCatalog struct {
	mu        sync.Mutex
	searches  int
	downloads []string
	images    map[steamgriddb.Kind][]steamgriddb.Image
	searchErr error
	failURL   string
	// truncateURL yields a few bytes and then a read error.
	truncateURL string
}

func (f *fakeCatalog) SearchGame(_ context.Context, name string) (*steamgriddb.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return &steamgriddb.Game{ID: 99, Name: name}, nil
}

func (f *fakeCatalog) Images(_ context.Context, kind steamgriddb.Kind, _ int64) ([]steamgriddb.Image, error) {
	return f.images[kind], nil
}

func (f *fakeCatalog) Download(_ context.Context, url string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if url == f.failURL {
		return nil, services.Wrap(services.ErrNetwork, "steamgriddb", "download image", "cdn unavailable", nil)
	}
	f.downloads = append(f.downloads, url)
	if url == f.truncateURL {
		return io.NopCloser(io.MultiReader(strings.NewReader("PN"), iotest.ErrReader(io.ErrUnexpectedEOF))), nil
	}
	return io.NopCloser(strings.NewReader(url)), nil
}

func newFake() *fakeCatalog {
	return &fakeCatalog{images: map[steamgriddb.Kind][]steamgriddb.Image{
		steamgriddb.KindGrid: {
			{URL: "landscape", Width: 920, Height: 430},
			{URL: "portrait", Width: 600, Height: 900},
		},
		steamgriddb.KindHero: {{URL: "hero", Width: 1920, Height: 620}},
		steamgriddb.KindIcon: {{URL: "icon", Width: 256, Height: 256}},
		steamgriddb.KindLogo: {{URL: "logo", Width: 800, Height: 300}},
	}}
}

func TestFetchDownloadsAllSlots(t *testing.T) {
	grid := t.TempDir()
	fake := newFake()
	o, err := New(fake, nil)
	if err != nil {
		t.Fatal(err)
	}

	const id uint32 = 3421780262
	icon, ok := o.Fetch(context.Background(), Request{Name: "Super Game", ID: id, GridDir: grid})
	if !ok || icon != filepath.Join(grid, "3421780262_icon.png") {
		t.Fatalf("icon = %q, %v", icon, ok)
	}

	want := map[string]string{
		"3421780262p.png":     "portrait",
		"3421780262.png":      "landscape",
		"3421780262_hero.png": "hero",
		"3421780262_icon.png": "icon",
		"3421780262_logo.png": "logo",
	}
	for name, content := range want {
		data, err := os.ReadFile(filepath.Join(grid, name))
		if err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
		if string(data) != content {
			t.Errorf("%s = %q, want %q", name, data, content)
		}
	}
}

func TestFetchSkipsExistingSlots(t *testing.T) {
	grid := t.TempDir()
	const id uint32 = 0x80000001
	for _, slot := range Slots {
		if err := os.WriteFile(slot.Path(grid, id), []byte("old"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	fake := newFake()
	o, err := New(fake, nil)
	if err != nil {
		t.Fatal(err)
	}
	icon, ok := o.Fetch(context.Background(), Request{Name: "X", ID: id, GridDir: grid})
	if !ok || icon != IconPath(grid, id) {
		t.Fatalf("icon = %q, %v", icon, ok)
	}
	if fake.searches != 0 || len(fake.downloads) != 0 {
		t.Fatalf("expected no network calls, got %d searches %v downloads", fake.searches, fake.downloads)
	}
}

func TestFetchFailuresAreNonFatal(t *testing.T) {
	grid := t.TempDir()
	fake := newFake()
	fake.failURL = "icon"
	o, err := New(fake, nil)
	if err != nil {
		t.Fatal(err)
	}
	res := o.FetchAll(context.Background(), []Request{{Name: "X", ID: 0x80000002, GridDir: grid}}, nil)
	if res[0].IconPath != "" {
		t.Fatalf("icon should be absent, got %q", res[0].IconPath)
	}
	if res[0].Downloaded != 4 {
		t.Fatalf("downloaded = %d, want 4", res[0].Downloaded)
	}

	for _, searchErr := range []error{
		errors.New("boom"),
		services.Wrap(services.ErrNetwork, "steamgriddb", "query", "returned 500", nil),
		services.Wrap(services.ErrConfiguration, "steamgriddb", "query", "returned 401", nil),
	} {
		fake.searchErr = searchErr
		got := o.FetchAll(context.Background(), []Request{{Name: "Y", ID: 0x80000003, GridDir: grid}}, nil)
		if got[0].IconPath != "" || !errors.Is(got[0].Err, searchErr) {
			t.Fatalf("search failure %v: result %+v", searchErr, got[0])
		}
	}
}

func TestFetchDiscardsInterruptedDownload(t *testing.T) {
	grid := t.TempDir()
	fake := newFake()
	fake.truncateURL = "hero"
	o, err := New(fake, nil)
	if err != nil {
		t.Fatal(err)
	}
	const id uint32 = 0x80000005
	res := o.FetchAll(context.Background(), []Request{{Name: "X", ID: id, GridDir: grid}}, nil)
	if res[0].Downloaded != 4 {
		t.Fatalf("downloaded = %d, want 4", res[0].Downloaded)
	}
	if _, err := os.Stat(SlotHero.Path(grid, id)); !os.IsNotExist(err) {
		t.Fatalf("partial hero must not be left behind: %v", err)
	}
	entries, err := os.ReadDir(grid)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected only the four finished slots, got %d files", len(entries))
	}
}

func TestFetchWithoutCatalog(t *testing.T) {
	grid := t.TempDir()
	o, err := New(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := o.Fetch(context.Background(), Request{Name: "X", ID: 0x80000004, GridDir: grid}); ok {
		t.Fatal("expected no icon without a catalog")
	}
}

func TestFetchAllOrderAndCache(t *testing.T) {
	grid := t.TempDir()
	fake := newFake()
	o, err := New(fake, nil, WithConcurrency(4))
	if err != nil {
		t.Fatal(err)
	}
	reqs := []Request{
		{Name: "Same", ID: 0x80000010, GridDir: filepath.Join(grid, "a")},
		{Name: "Same", ID: 0x80000010, GridDir: filepath.Join(grid, "b")},
		{Name: "Other", ID: 0x80000011, GridDir: filepath.Join(grid, "a")},
	}
	var order []int
	results := o.FetchAll(context.Background(), reqs, func(i int, res Result) {
		order = append(order, i)
	})
	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Fatalf("progress order = %v", order)
	}
	for i, res := range results {
		if res.Request != reqs[i] {
			t.Fatalf("result %d out of order: %+v", i, res.Request)
		}
		if res.IconPath == "" {
			t.Errorf("result %d missing icon", i)
		}
	}
	if fake.searches != 2 {
		t.Fatalf("searches = %d, want 2 (name cache)", fake.searches)
	}
}

func TestSlotPick(t *testing.T) {
	images := []steamgriddb.Image{{URL: "", Width: 1, Height: 2}, {URL: "wide", Width: 3, Height: 1}}
	if _, ok := SlotPortrait.pick(images); ok {
		t.Fatal("portrait slot should reject images without URL or wrong aspect")
	}
	if url, ok := SlotLandscape.pick(images); !ok || url != "wide" {
		t.Fatalf("landscape pick = %q %v", url, ok)
	}
	if url, ok := SlotHero.pick(images); !ok || url != "wide" {
		t.Fatalf("hero pick = %q %v", url, ok)
	}
}
