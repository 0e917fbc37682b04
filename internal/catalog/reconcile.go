package catalog

import "github.com/freshext/freshext/internal/extension"

// Report is the read-only comparison of catalog state against what is
// actually installed.
type Report struct {
	// Upgradable lists installed entries whose installed version differs from
	// the catalog version. Versions are compared as strings: an extension is
	// current only when the strings match exactly.
	Upgradable []*Entry
	// LocalOnly lists installed extensions whose entrypoint matches no
	// catalog entry.
	LocalOnly []*extension.Metadata
}

// Reconcile compares catalog entries against the installed set. It is a pure
// function over its inputs.
func Reconcile(entries []*Entry, installed []*extension.Metadata) *Report {
	report := &Report{}
	for _, entry := range entries {
		if entry.Installed && entry.InstalledVersion != entry.Version {
			report.Upgradable = append(report.Upgradable, entry)
		}
	}
	for _, md := range installed {
		known := false
		for _, entry := range entries {
			if entry.Entrypoint == md.Entrypoint {
				known = true
				break
			}
		}
		if !known {
			report.LocalOnly = append(report.LocalOnly, md)
		}
	}
	return report
}
