package file

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
)

func TestCacheStore_SaveLoad(t *testing.T) {
	dir := t.TempDir()
	store, err := NewCacheStore(dir)
	require.NoError(t, err)

	_, err = store.Load("quote")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	doc := []byte(`{"timestamp":"2025-01-01T00:00:00Z","quote":{"content":"x"}}`)
	require.NoError(t, store.Save("quote", doc))

	got, err := store.Load("quote")
	require.NoError(t, err)
	assert.Equal(t, doc, got)
	assert.FileExists(t, filepath.Join(dir, "quote_cache.json"))
}

func TestCacheStore_SaveReplacesWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	store, err := NewCacheStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save("poetry", []byte("first")))
	require.NoError(t, store.Save("poetry", []byte("second")))

	got, err := store.Load("poetry")
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestCacheStore_ListAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewCacheStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Save("vps", []byte("{}")))
	require.NoError(t, store.Save("hackernews", []byte("{}")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0600))

	entries, err := store.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "hackernews", entries[0].Name)
	assert.Equal(t, "vps", entries[1].Name)
	assert.Equal(t, int64(2), entries[1].Size)

	require.NoError(t, store.Delete("vps"))
	require.NoError(t, store.Delete("vps"), "deleting twice is fine")

	entries, err = store.List()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCacheStore_RejectsPathNames(t *testing.T) {
	store, err := NewCacheStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "../etc", "a/b", ".."} {
		assert.ErrorIs(t, store.Save(name, []byte("x")), domain.ErrInvalidInput, name)
	}
}

func TestStateStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStateStore(dir)
	require.NoError(t, err)

	var st domain.PaginationState
	assert.ErrorIs(t, store.Load("hackernews", &st), domain.ErrNotFound)

	require.NoError(t, store.Save("hackernews", domain.PaginationState{CurrentPage: 3}))
	require.NoError(t, store.Load("hackernews", &st))
	assert.Equal(t, 3, st.CurrentPage)

	raw, err := os.ReadFile(filepath.Join(dir, "hackernews_state.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"current_page": 3}`, string(raw))
}

func TestStateStore_Corrupt(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStateStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.Path("hackernews"), []byte("{\"current_page\":"), 0600))

	var st domain.PaginationState
	assert.ErrorIs(t, store.Load("hackernews", &st), domain.ErrCacheCorrupt)
}

func TestFrameSink_WriteFrame(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewFrameSink(dir)
	require.NoError(t, err)

	img := image.NewGray(image.Rect(0, 0, 8, 4))
	img.SetGray(1, 1, color.Gray{Y: 255})
	require.NoError(t, sink.WriteFrame(domain.ModeKindQuote, img))

	f, err := os.Open(filepath.Join(dir, "screenshot_quote.png"))
	require.NoError(t, err)
	defer f.Close()

	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}
