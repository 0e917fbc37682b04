package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/freshext/freshext/internal/extension"
	"github.com/freshext/freshext/internal/util"
)

const (
	// File is the local cache of the remote registry, read fresh on every command.
	File = "extensions.json"

	// SupportedSchemaVersion is the only registry format this tool understands.
	SupportedSchemaVersion = "0.1"

	// DefaultURL is where the update command refreshes the catalog from.
	DefaultURL = "https://raw.githubusercontent.com/FreshRSS/Extensions/master/extensions.json"

	// OfficialURLPrefix marks entries hosted in the official registry repository.
	OfficialURLPrefix = "https://github.com/FreshRSS/Extensions"
)

type SchemaVersionError struct {
	Version string
}

func (e *SchemaVersionError) Error() string {
	return fmt.Sprintf("unsupported catalog schema version %q (expected %s)", e.Version, SupportedSchemaVersion)
}

type NotFoundError struct {
	PackageID string
	Ambiguous bool
}

func (e *NotFoundError) Error() string {
	if e.Ambiguous {
		return fmt.Sprintf("package id %q matches more than one catalog entry", e.PackageID)
	}
	if e.PackageID == "" {
		return "no extensions found in catalog"
	}
	return fmt.Sprintf("no extension named %q in catalog", e.PackageID)
}

// Entry is one row of the registry augmented with its derived package id and
// the local installation state observed when the catalog was loaded.
type Entry struct {
	extension.Metadata

	URL       string `json:"url"`
	Method    string `json:"method"`
	Directory string `json:"directory,omitempty"`

	PackageID        string `json:"packageId"`
	Installed        bool   `json:"installed"`
	InstalledVersion string `json:"installedVersion,omitempty"`
}

// Official reports whether the entry is hosted in the official registry
// repository as opposed to a community one.
func (e *Entry) Official() bool {
	return strings.HasPrefix(strings.ToLower(e.URL), strings.ToLower(OfficialURLPrefix))
}

type Catalog struct {
	Version string
	Entries []*Entry
}

// Load reads and parses the catalog cache file under root, probing root for
// each entry's installation state.
func Load(root string) (*Catalog, error) {
	data, err := os.ReadFile(filepath.Join(root, File))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", File, err)
	}
	return Parse(data, root)
}

// Parse decodes a registry document. The declared schema version must be the
// JSON number matching SupportedSchemaVersion before any entry is looked at;
// a string "0.1" is not a valid version tag.
func Parse(data []byte, root string) (*Catalog, error) {
	var raw struct {
		Version    any               `json:"version"`
		Extensions []json.RawMessage `json:"extensions"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	version, ok := raw.Version.(json.Number)
	if !ok || version.String() != SupportedSchemaVersion {
		return nil, &SchemaVersionError{Version: versionString(raw.Version)}
	}
	cat := &Catalog{Version: version.String()}
	for i, rawEntry := range raw.Extensions {
		entry, err := DeriveEntry(rawEntry, root)
		if err != nil {
			return nil, fmt.Errorf("failed to parse catalog entry %d: %w", i, err)
		}
		cat.Entries = append(cat.Entries, entry)
	}
	return cat, nil
}

func versionString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// DeriveEntry builds an Entry from one raw registry record: the descriptor
// fields follow the metadata rules, the package id is derived from the source
// location and the installation state is probed against root. The package id
// is pure text manipulation; the installed check is the only filesystem read.
func DeriveEntry(raw []byte, root string) (*Entry, error) {
	md, err := extension.ParseMetadata(raw)
	if err != nil {
		return nil, err
	}
	var src struct {
		URL       string `json:"url"`
		Method    string `json:"method"`
		Directory string `json:"directory"`
	}
	if err := json.Unmarshal(raw, &src); err != nil {
		return nil, &extension.ValidationError{Message: fmt.Sprintf("invalid catalog entry: %s", err)}
	}
	entry := &Entry{
		Metadata:  *md,
		URL:       src.URL,
		Method:    src.Method,
		Directory: src.Directory,
	}
	pkg, err := derivePackageID(entry.URL, entry.Directory)
	if err != nil {
		return nil, err
	}
	entry.PackageID = pkg
	if IsInstalled(root, pkg) {
		entry.Installed = true
		if installed, err := extension.ReadMetadata(filepath.Join(root, pkg)); err == nil {
			entry.InstalledVersion = installed.Version
		}
	}
	return entry, nil
}

// derivePackageID computes the canonical local folder name for an entry. A
// source subdirectory following the xExtension- naming convention wins
// outright, otherwise the last segment of the URL path is used with any
// trailing slash removed and everything from the first dot dropped (so a
// .git suffix disappears).
func derivePackageID(sourceURL, directory string) (string, error) {
	if strings.HasPrefix(directory, "xExtension-") {
		return directory, nil
	}
	u, err := url.Parse(sourceURL)
	if err != nil {
		return "", &extension.ValidationError{Message: fmt.Sprintf("invalid source url %q: %s", sourceURL, err)}
	}
	path := strings.TrimSuffix(u.Path, "/")
	segment := path[strings.LastIndex(path, "/")+1:]
	pkg, _, _ := strings.Cut(segment, ".")
	if pkg == "" || pkg == "." {
		return "", &extension.ValidationError{Message: fmt.Sprintf("cannot derive a package id from url %q", sourceURL)}
	}
	return pkg, nil
}

// IsInstalled reports whether root contains a directory for pkg holding both
// the descriptor and the main extension file. It rereads the filesystem on
// every call so callers never act on stale state.
func IsInstalled(root, pkg string) bool {
	return util.Exists(filepath.Join(root, pkg, extension.MetadataFile)) &&
		util.Exists(filepath.Join(root, pkg, extension.MainFile))
}

// List returns the entries matching filter, or every entry when filter is
// empty. An empty result (including an empty catalog) is a NotFoundError.
func (c *Catalog) List(filter string) ([]*Entry, error) {
	var matches []*Entry
	for _, entry := range c.Entries {
		if filter == "" || entry.PackageID == filter {
			matches = append(matches, entry)
		}
	}
	if len(matches) == 0 {
		return nil, &NotFoundError{PackageID: filter}
	}
	return matches, nil
}

// Find resolves exactly one entry for pkg. Zero matches and ambiguous
// matches (a stale or duplicated registry) are both rejected.
func (c *Catalog) Find(pkg string) (*Entry, error) {
	matches, err := c.List(pkg)
	if err != nil {
		return nil, err
	}
	if len(matches) > 1 {
		return nil, &NotFoundError{PackageID: pkg, Ambiguous: true}
	}
	return matches[0], nil
}
