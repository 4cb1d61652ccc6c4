package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTablesValidate(t *testing.T) {
	tables := Default()
	require.NoError(t, tables.Validate())

	assert.Len(t, tables.Boot, 11)
	assert.Len(t, tables.Dialogue, 9)
	assert.Len(t, tables.SystemChecks, 5)
	assert.Len(t, tables.Runes, 6)
	assert.Equal(t, "GRIMOIRE READY", tables.ReadyMessage())
	assert.True(t, tables.Boot[9].IsBlank())
}

func TestGlyphFallback(t *testing.T) {
	tables := &Tables{Glyphs: []string{"*", ""}}
	assert.Equal(t, "*", tables.Glyph(0))
	assert.Equal(t, FallbackGlyph, tables.Glyph(1))
	assert.Equal(t, FallbackGlyph, tables.Glyph(7))
	assert.Equal(t, FallbackGlyph, tables.Glyph(-1))
}

func TestValidateReportsEveryProblem(t *testing.T) {
	tables := Default()
	tables.Dialogue = nil
	tables.SystemChecks = append(tables.SystemChecks, Check{Name: "MANA_FLOW", Display: "Again"})
	tables.Glyphs = []string{"*", "*"}
	tables.Loading = []string{"Loading...", ""}
	tables.Boot[0].Kind = "shout"

	err := tables.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyTable))
	assert.True(t, errors.Is(err, ErrDuplicateName))
	assert.True(t, errors.Is(err, ErrDuplicateGlyph))
	assert.True(t, errors.Is(err, ErrMissingReady))
	assert.True(t, errors.Is(err, ErrUnknownKind))
}

func TestCloneDoesNotShareBacking(t *testing.T) {
	orig := Default()
	c := orig.Clone()
	c.Runes[0].Display = "Changed"
	c.Boot = append(c.Boot, BootEntry{Text: "extra", Kind: BootInfo})

	assert.Equal(t, "Sigil Alpha", orig.Runes[0].Display)
	assert.Len(t, orig.Boot, 11)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content.yaml")
	data := `
runes:
  - name: ONE
    display: Rune One
  - name: TWO
    display: Rune Two
lines:
  harmony: "Perfect."
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	tables, err := Load(path)
	require.NoError(t, err)

	assert.Len(t, tables.Runes, 2)
	assert.Equal(t, "Rune Two", tables.Runes[1].Display)
	assert.Equal(t, "Perfect.", tables.Lines.Harmony)
	// Untouched tables and lines keep their defaults.
	assert.Len(t, tables.SystemChecks, 5)
	assert.Equal(t, "The runes drift out of harmony.", tables.Lines.Disharmony)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	tables, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), tables)
}

func TestLoadRejectsInvalidContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte("system_checks: []\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyTable)
}

func TestMarshalRoundTripsThroughLoad(t *testing.T) {
	tables := Default()
	tables.Lines.Prompt = "SPELLBOOK>"
	data, err := tables.Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, tables, loaded)
}

type stepSource struct{ v []float64 }

func (s *stepSource) Float64() float64 {
	f := s.v[0]
	s.v = append(s.v[1:], f)
	return f
}

func TestStaticLine(t *testing.T) {
	src := &stepSource{v: []float64{0, 0.999999, 0.5}}
	line := StaticLine(src, 3)
	assert.Equal(t, 3, utf8.RuneCountInString(line))
	assert.Equal(t, "░▐▀", line)
	assert.Empty(t, StaticLine(src, 0))
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lines:\n  prompt: \"A>\"\n"), 0644))

	changes := make(chan *Tables, 4)
	w := NewWatcher(path, func(tables *Tables, err error) {
		if err != nil {
			return
		}
		select {
		case changes <- tables:
		default:
		}
	}, nil)
	w.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("lines:\n  prompt: \"B>\"\n"), 0644))

	select {
	case tables := <-changes:
		assert.Equal(t, "B>", tables.Lines.Prompt)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}
