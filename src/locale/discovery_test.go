package locale

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTree(t *testing.T, files ...string) afero.Fs {
	t.Helper()

	fsys := afero.NewMemMapFs()

	for _, name := range files {
		err := afero.WriteFile(fsys, name, []byte("{}"), 0o644)
		require.NoError(t, err)
	}

	return fsys
}

func TestDiscover(t *testing.T) {
	fsys := newTree(t,
		"/work/a/b/en.json",
		"/work/a/b/fr.json",
		"/work/a/b/readme.md",
	)

	matches, err := Discover(fsys, "/work", "a/b/<locale_code>.json", DiscoverOptions{})
	require.NoError(t, err)

	assert.ElementsMatch(t, []Match{
		{Path: "a/b/en.json", Locale: "en"},
		{Path: "a/b/fr.json", Locale: "fr"},
	}, matches)
}

func TestDiscover_NestedLocaleDirectories(t *testing.T) {
	fsys := newTree(t,
		"/work/config/locales/de/app.yml",
		"/work/config/locales/es/app.yml",
		"/work/config/locales/es/other.yml",
		"/work/config/app.yml",
	)

	matches, err := Discover(fsys, "/work", "./config/locales/<locale_code>/app.yml", DiscoverOptions{})
	require.NoError(t, err)

	assert.ElementsMatch(t, []Match{
		{Path: "config/locales/de/app.yml", Locale: "de"},
		{Path: "config/locales/es/app.yml", Locale: "es"},
	}, matches)
}

func TestDiscover_EmptyPrefix(t *testing.T) {
	fsys := newTree(t,
		"/work/en.json",
		"/work/nl.json",
		"/work/notes.txt",
	)

	matches, err := Discover(fsys, "/work", "<locale_code>.json", DiscoverOptions{})
	require.NoError(t, err)

	assert.ElementsMatch(t, []Match{
		{Path: "en.json", Locale: "en"},
		{Path: "nl.json", Locale: "nl"},
	}, matches)
}

func TestDiscover_EmptySuffix(t *testing.T) {
	fsys := newTree(t,
		"/work/locales/en",
		"/work/locales/it",
		"/work/other/en",
	)

	matches, err := Discover(fsys, "/work", "locales/<locale_code>", DiscoverOptions{})
	require.NoError(t, err)

	assert.ElementsMatch(t, []Match{
		{Path: "locales/en", Locale: "en"},
		{Path: "locales/it", Locale: "it"},
	}, matches)
}

func TestDiscover_DirectoriesAreNotMatched(t *testing.T) {
	fsys := newTree(t, "/work/locales/en.json/nested.txt")

	matches, err := Discover(fsys, "/work", "locales/<locale_code>.json", DiscoverOptions{})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestDiscover_SkipHidden(t *testing.T) {
	fsys := newTree(t,
		"/work/locales/en.json",
		"/work/locales/.fr.json",
		"/work/.cache/locales/de.json",
	)

	all, err := Discover(fsys, "/work", "<locale_code>.json", DiscoverOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	visible, err := Discover(fsys, "/work", "<locale_code>.json", DiscoverOptions{SkipHidden: true})
	require.NoError(t, err)
	assert.Equal(t, []Match{{Path: "locales/en.json", Locale: "locales/en"}}, visible)
}

func TestDiscover_Errors(t *testing.T) {
	fsys := newTree(t, "/work/en.json")

	tests := []struct {
		name     string
		root     string
		template string
		err      error
	}{
		{name: "missing root", root: "/missing", template: "<locale_code>.json", err: ErrNotFound},
		{name: "root is a file", root: "/work/en.json", template: "<locale_code>.json", err: ErrInvalidRoot},
		{name: "no placeholder", root: "/work", template: "en.json", err: ErrInvalidTemplate},
		{name: "two placeholders", root: "/work", template: "<locale_code>/<locale_code>.json", err: ErrInvalidTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches, err := Discover(fsys, tt.root, tt.template, DiscoverOptions{})
			require.ErrorIs(t, err, tt.err)
			assert.Nil(t, matches)
		})
	}
}
