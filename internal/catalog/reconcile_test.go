package catalog

import (
	"testing"

	"github.com/freshext/freshext/internal/extension"
	"github.com/stretchr/testify/assert"
)

func entryFor(name, version, installedVersion, url string) *Entry {
	return &Entry{
		Metadata:         extension.Metadata{Name: name, Entrypoint: name, Version: version},
		URL:              url,
		Method:           "git",
		PackageID:        name,
		Installed:        installedVersion != "",
		InstalledVersion: installedVersion,
	}
}

func TestReconcileUpgradable(t *testing.T) {
	entries := []*Entry{
		entryFor("stale", "1.1", "1.0", "https://git.example/stale.git"),
		entryFor("current", "2.0", "2.0", "https://git.example/current.git"),
		entryFor("absent", "3.0", "", "https://git.example/absent.git"),
	}

	report := Reconcile(entries, nil)
	if assert.Len(t, report.Upgradable, 1) {
		assert.Equal(t, "stale", report.Upgradable[0].PackageID)
	}
}

func TestReconcileLocalOnly(t *testing.T) {
	entries := []*Entry{
		entryFor("known", "1.0", "1.0", "https://git.example/known.git"),
	}
	installed := []*extension.Metadata{
		{Name: "known", Entrypoint: "known", Version: "1.0"},
		{Name: "homegrown", Entrypoint: "homegrown"},
	}

	report := Reconcile(entries, installed)
	if assert.Len(t, report.LocalOnly, 1) {
		assert.Equal(t, "homegrown", report.LocalOnly[0].Name)
	}
}

func TestOfficial(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		official bool
	}{
		{"official url", "https://github.com/FreshRSS/Extensions", true},
		{"official url with subpath", "https://github.com/FreshRSS/Extensions/tree/master/xExtension-Foo", true},
		{"case differences", "https://GitHub.com/freshrss/extensions", true},
		{"community repo", "https://github.com/someone/xExtension-Foo", false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			entry := entryFor("x", "1.0", "", test.url)
			assert.Equal(t, test.official, entry.Official())
		})
	}
}
