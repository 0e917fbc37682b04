package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/freshext/freshext/internal/extension"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryJSON(name, version, url, directory string) string {
	return fmt.Sprintf(`{"name":%q,"entrypoint":%q,"version":%q,"url":%q,"method":"git","directory":%q}`,
		name, name, version, url, directory)
}

func TestParse(t *testing.T) {
	root := t.TempDir()
	data := fmt.Sprintf(`{"version": 0.1, "extensions": [%s, %s]}`,
		entryJSON("Foo", "1.0", "https://git.example/foo.git", ""),
		entryJSON("Bar", "2.1", "https://github.com/FreshRSS/Extensions", "xExtension-Bar"))

	cat, err := Parse([]byte(data), root)
	require.NoError(t, err)
	assert.Equal(t, SupportedSchemaVersion, cat.Version)
	require.Len(t, cat.Entries, 2)
	assert.Equal(t, "foo", cat.Entries[0].PackageID)
	assert.Equal(t, "xExtension-Bar", cat.Entries[1].PackageID)
	assert.False(t, cat.Entries[0].Installed)
}

func TestParseSchemaVersionMismatch(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"newer version", `{"version": 0.2, "extensions": []}`},
		{"string version", `{"version": "1.0", "extensions": []}`},
		{"string form of the supported version", `{"version": "0.1", "extensions": []}`},
		{"missing version", `{"extensions": []}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cat, err := Parse([]byte(test.data), t.TempDir())
			assert.Nil(t, cat)
			var serr *SchemaVersionError
			assert.ErrorAs(t, err, &serr)
		})
	}
}

func TestDerivePackageID(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		directory string
		expected  string
	}{
		{"xExtension directory wins over url", "https://git.example/whatever.git", "xExtension-Foo", "xExtension-Foo"},
		{"git suffix stripped", "https://example.com/ext/bar.git", "", "bar"},
		{"trailing slash removed", "https://example.com/ext/baz/", "", "baz"},
		{"plain url path", "https://github.com/someone/xExtension-Quux", "", "xExtension-Quux"},
		{"other directory ignored", "https://example.com/repo.git", "subdir", "repo"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			raw := entryJSON("Foo", "1.0", test.url, test.directory)
			entry, err := DeriveEntry([]byte(raw), t.TempDir())
			require.NoError(t, err)
			assert.Equal(t, test.expected, entry.PackageID)
		})
	}
}

func TestDerivePackageIDEmpty(t *testing.T) {
	raw := entryJSON("Foo", "1.0", "https://example.com/", "")
	entry, err := DeriveEntry([]byte(raw), t.TempDir())
	assert.Nil(t, entry)
	var verr *extension.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func installExtension(t *testing.T, root, pkg, metadata string) {
	t.Helper()
	dir := filepath.Join(root, pkg)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, extension.MetadataFile), []byte(metadata), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, extension.MainFile), []byte("<?php"), 0644))
}

func TestDeriveEntryInstalledState(t *testing.T) {
	root := t.TempDir()
	installExtension(t, root, "foo", `{"name":"Foo","entrypoint":"Foo","version":"0.9"}`)

	entry, err := DeriveEntry([]byte(entryJSON("Foo", "1.0", "https://git.example/foo.git", "")), root)
	require.NoError(t, err)
	assert.True(t, entry.Installed)
	assert.Equal(t, "0.9", entry.InstalledVersion)
}

func TestIsInstalled(t *testing.T) {
	root := t.TempDir()
	installExtension(t, root, "foo", `{"name":"Foo","entrypoint":"Foo"}`)

	// descriptor without the main file doesn't count as installed
	dir := filepath.Join(root, "partial")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, extension.MetadataFile), []byte("{}"), 0644))

	assert.True(t, IsInstalled(root, "foo"))
	assert.False(t, IsInstalled(root, "partial"))
	assert.False(t, IsInstalled(root, "missing"))
}

func TestListAndFind(t *testing.T) {
	root := t.TempDir()
	data := fmt.Sprintf(`{"version": 0.1, "extensions": [%s, %s]}`,
		entryJSON("Foo", "1.0", "https://git.example/foo.git", ""),
		entryJSON("Bar", "2.1", "https://git.example/bar.git", ""))
	cat, err := Parse([]byte(data), root)
	require.NoError(t, err)

	all, err := cat.List("")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	only, err := cat.List("bar")
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "Bar", only[0].Name)

	_, err = cat.List("nope")
	var nferr *NotFoundError
	assert.ErrorAs(t, err, &nferr)

	entry, err := cat.Find("foo")
	require.NoError(t, err)
	assert.Equal(t, "Foo", entry.Name)
}

func TestFindAmbiguous(t *testing.T) {
	root := t.TempDir()
	dup := entryJSON("Foo", "1.0", "https://git.example/foo.git", "")
	data := fmt.Sprintf(`{"version": 0.1, "extensions": [%s, %s]}`, dup, dup)
	cat, err := Parse([]byte(data), root)
	require.NoError(t, err)

	_, err = cat.Find("foo")
	var nferr *NotFoundError
	require.ErrorAs(t, err, &nferr)
	assert.True(t, nferr.Ambiguous)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	data := fmt.Sprintf(`{"version": 0.1, "extensions": [%s]}`,
		entryJSON("Foo", "1.0", "https://git.example/foo.git", ""))
	require.NoError(t, os.WriteFile(filepath.Join(root, File), []byte(data), 0644))

	cat, err := Load(root)
	require.NoError(t, err)
	assert.Len(t, cat.Entries, 1)
}
