package launchpad

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/phanxgames/launchpad/store"
)

// panelFixture is a panel with its toolbar at the origin and 100x100 cards
// stacked from y=28. Card centers sit at y=78, 178, 278, ...
type panelFixture struct {
	scene   *Scene
	panel   *Panel
	st      *store.Store
	path    string
	groupID string
	ids     map[string]string
	opened  []store.Entry
}

func testPanelConfig() PanelConfig {
	return PanelConfig{Layout: "scroll", Width: 200, CardWidth: 100, CardHeight: 100}
}

// newPanelFixture seeds a group with entries a, b (unpinned), c and d, then
// shows it.
func newPanelFixture(t *testing.T) *panelFixture {
	t.Helper()
	f := &panelFixture{
		path: filepath.Join(t.TempDir(), store.SettingsFile),
		ids:  make(map[string]string),
	}
	st, err := store.Open(f.path)
	if err != nil {
		t.Fatal(err)
	}
	lib := store.NewLibrary()
	g, err := lib.CreateGroup("Favourites")
	if err != nil {
		t.Fatal(err)
	}
	f.groupID = g.ID
	for _, e := range []store.Entry{
		{Name: "a", Mode: "normal", Pinned: true},
		{Name: "b", Mode: "normal"},
		{Name: "c", Mode: "ranked", Pinned: true},
		{Name: "d", Mode: "team", Pinned: true},
	} {
		added, err := lib.AddEntry(g.ID, e)
		if err != nil {
			t.Fatal(err)
		}
		f.ids[e.Name] = added.ID
	}
	if err := st.SetLibrary(lib); err != nil {
		t.Fatal(err)
	}
	if err := st.Save(); err != nil {
		t.Fatal(err)
	}
	f.open(t, st)
	return f
}

func (f *panelFixture) open(t *testing.T, st *store.Store) {
	t.Helper()
	f.scene = NewScene()
	p, err := NewPanel(f.scene, st, PanelOptions{
		Config: testPanelConfig(),
		OnOpen: func(e store.Entry) { f.opened = append(f.opened, e) },
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Show(f.groupID); err != nil {
		t.Fatal(err)
	}
	f.panel = p
	f.st = st
}

// reload reads the settings file back from disk.
func (f *panelFixture) reload(t *testing.T) (*store.Store, *store.Library) {
	t.Helper()
	st, err := store.Open(f.path)
	if err != nil {
		t.Fatal(err)
	}
	lib, err := st.Library()
	if err != nil {
		t.Fatal(err)
	}
	return st, lib
}

func (f *panelFixture) cardNames() []string {
	var out []string
	for _, c := range f.panel.List().Children() {
		out = append(out, c.UserData.(store.Entry).Name)
	}
	return out
}

func (f *panelFixture) groupNames(lib *store.Library) []string {
	g, err := lib.Group(f.groupID)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range g.Entries {
		out = append(out, e.Name)
	}
	return out
}

func TestPanelShowsPinnedInOrder(t *testing.T) {
	f := newPanelFixture(t)
	assertOrder(t, f.cardNames(), "a", "c", "d")

	if c := f.panel.Card(f.ids["c"]); c == nil || c.Key != f.ids["c"] {
		t.Errorf("Card(c) = %v", c)
	}
	if f.panel.Card(f.ids["b"]) != nil {
		t.Error("unpinned entry should have no card")
	}
	if f.panel.GroupID() != f.groupID {
		t.Errorf("GroupID = %q, want %q", f.panel.GroupID(), f.groupID)
	}
}

func TestPanelShowUnknownGroup(t *testing.T) {
	f := newPanelFixture(t)
	err := f.panel.Show("missing")
	if !errors.Is(err, store.ErrGroupNotFound) {
		t.Errorf("Show(missing) = %v, want ErrGroupNotFound", err)
	}
	assertOrder(t, f.cardNames(), "a", "c", "d")
}

func TestPanelShowKeepsCardsWhenSettingsWriteFails(t *testing.T) {
	f := newPanelFixture(t)
	// A scalar at "panel" leaves no object to hold "panel.group".
	if err := f.st.Set("panel", "locked"); err != nil {
		t.Fatal(err)
	}
	if err := f.panel.Show(f.groupID); err == nil {
		t.Fatal("Show succeeded, want the settings write to fail")
	}
	assertOrder(t, f.cardNames(), "a", "c", "d")
	if f.panel.GroupID() != f.groupID {
		t.Errorf("GroupID = %q, want %q", f.panel.GroupID(), f.groupID)
	}
	press(f.scene, 50, 60)
	release(f.scene, 50, 60)
	if len(f.opened) != 1 || f.opened[0].Name != "a" {
		t.Errorf("opened = %+v, want [a]", f.opened)
	}
}

func TestPanelDragPersistsOrder(t *testing.T) {
	f := newPanelFixture(t)

	press(f.scene, 50, 250)
	move(f.scene, 50, 150)
	release(f.scene, 50, 150)

	assertOrder(t, f.cardNames(), "a", "d", "c")
	if len(f.opened) != 0 {
		t.Error("the click that follows a drop should not open the entry")
	}

	_, lib := f.reload(t)
	// b is unpinned and keeps its slot.
	assertOrder(t, f.groupNames(lib), "a", "b", "d", "c")
}

func TestPanelDropFlashesCard(t *testing.T) {
	f := newPanelFixture(t)
	press(f.scene, 50, 250)
	move(f.scene, 50, 150)
	release(f.scene, 50, 150)

	d := f.panel.Card(f.ids["d"])
	if d.Alpha != flashAlpha {
		t.Errorf("Alpha = %v right after the drop, want %v", d.Alpha, flashAlpha)
	}
	for i := 0; i < 30; i++ {
		f.scene.updateTweens(1.0 / 60)
	}
	if d.Alpha < 0.99 {
		t.Errorf("Alpha = %v after the flash, want ~1", d.Alpha)
	}
}

func TestPanelClickOpens(t *testing.T) {
	f := newPanelFixture(t)

	press(f.scene, 50, 60)
	release(f.scene, 50, 60)

	if len(f.opened) != 1 || f.opened[0].Name != "a" {
		t.Fatalf("opened = %+v, want [a]", f.opened)
	}
	_, lib := f.reload(t)
	if len(lib.Recent) != 1 || lib.Recent[0].Name != "a" {
		t.Errorf("recent = %+v, want a remembered", lib.Recent)
	}
	assertOrder(t, f.groupNames(lib), "a", "b", "c", "d")
}

func TestPanelUnpin(t *testing.T) {
	f := newPanelFixture(t)

	// The unpin button of card a: x 80..98, y 108..126.
	press(f.scene, 89, 117)
	if f.panel.Reorder().State() != GestureIdle {
		t.Fatal("pressing the unpin button started a drag")
	}
	release(f.scene, 89, 117)

	assertOrder(t, f.cardNames(), "c", "d")
	if len(f.opened) != 0 {
		t.Error("unpin should not open the entry")
	}
	_, lib := f.reload(t)
	pinned, err := lib.Pinned(f.groupID)
	if err != nil {
		t.Fatal(err)
	}
	if len(pinned) != 2 {
		t.Errorf("pinned = %d, want 2", len(pinned))
	}
	assertOrder(t, f.groupNames(lib), "a", "b", "c", "d")
}

func TestPanelActionStripDoesNotDrag(t *testing.T) {
	f := newPanelFixture(t)

	// Inside card a's action strip but away from the button.
	press(f.scene, 20, 117)
	move(f.scene, 20, 250)
	release(f.scene, 20, 250)

	assertOrder(t, f.cardNames(), "a", "c", "d")
}

func TestPanelToggleLayoutPersists(t *testing.T) {
	f := newPanelFixture(t)

	press(f.scene, 10, 10)
	release(f.scene, 10, 10)

	if f.panel.LayoutMode() != LayoutWrap {
		t.Fatalf("LayoutMode = %v, want wrap", f.panel.LayoutMode())
	}
	st, _ := f.reload(t)
	if got := st.String(SettingLayout, ""); got != "wrap" {
		t.Errorf("saved layout = %q, want wrap", got)
	}

	f.open(t, st)
	if f.panel.LayoutMode() != LayoutWrap {
		t.Error("a new panel should start in the saved layout")
	}
}

func TestPanelWrapDrag(t *testing.T) {
	f := newPanelFixture(t)
	if err := f.panel.SetLayoutMode(LayoutWrap); err != nil {
		t.Fatal(err)
	}
	// Two cards per row: a (0,28) c (100,28) / d (0,128).
	// Drop d right of a's center.
	press(f.scene, 50, 178)
	move(f.scene, 70, 80)
	release(f.scene, 70, 80)

	assertOrder(t, f.cardNames(), "a", "d", "c")
	_, lib := f.reload(t)
	assertOrder(t, f.groupNames(lib), "a", "b", "d", "c")
}

func TestPanelBadSavedLayoutFallsBack(t *testing.T) {
	f := newPanelFixture(t)
	st, _ := f.reload(t)
	if err := st.Set(SettingLayout, "bogus"); err != nil {
		t.Fatal(err)
	}
	f.open(t, st)
	if f.panel.LayoutMode() != LayoutScroll {
		t.Error("an unreadable saved layout should fall back to scroll")
	}
	if got := len(f.cardNames()); got != 3 {
		t.Errorf("cards after reload = %d, want 3", got)
	}
}
