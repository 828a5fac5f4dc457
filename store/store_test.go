package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", SettingsFile)
	s, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "scroll", s.String("panel.layout", "scroll"))
	assert.False(t, s.Dirty())

	// Nothing changed, nothing written.
	require.NoError(t, s.Save())
	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFile)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := Open(path)
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestSetGetRoundTripThroughDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFile)
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Set("panel.layout", "wrap"))
	require.NoError(t, s.Set("automation.autoStart", true))
	require.NoError(t, s.Set("automation.startDelay", 2.5))
	require.NoError(t, s.Set("scratch", "x"))
	require.NoError(t, s.Delete("scratch"))
	require.True(t, s.Dirty())
	require.NoError(t, s.Save())
	require.False(t, s.Dirty())

	again, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "wrap", again.String("panel.layout", "scroll"))
	assert.True(t, again.Bool("automation.autoStart", false))
	assert.InDelta(t, 2.5, again.Float("automation.startDelay", 0), 1e-9)
	assert.False(t, again.Get("scratch").Exists())

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLibraryPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFile)
	s, err := Open(path)
	require.NoError(t, err)

	lib, err := s.Library()
	require.NoError(t, err)
	assert.Equal(t, DefaultRecentLimit, lib.RecentLimit)

	g, err := lib.CreateGroup("main")
	require.NoError(t, err)
	for _, id := range []string{"g1", "g2", "g3"} {
		_, err := lib.AddEntry(g.ID, Entry{ID: id, Name: id, Pinned: true})
		require.NoError(t, err)
	}
	require.NoError(t, lib.ReorderGroup(g.ID, []string{"g1", "g3", "g2"}))
	require.NoError(t, s.SetLibrary(lib))
	require.NoError(t, s.Set("panel.layout", "wrap"))
	require.NoError(t, s.Save())

	reopened, err := Open(path)
	require.NoError(t, err)
	got, err := reopened.Library()
	require.NoError(t, err)
	group, err := got.Group(g.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"g1", "g3", "g2"}, entryIDs(group.Entries))
	assert.Equal(t, "wrap", reopened.String("panel.layout", ""), "settings beside the library survive")
}

func TestDataDirOverride(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	t.Setenv("LAUNCHPAD_DATA_DIR", dir)

	got, err := DataDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	file, err := DataFile(SettingsFile)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, SettingsFile), file)
}
