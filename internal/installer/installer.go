package installer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/agentuity/go-common/logger"
	"github.com/freshext/freshext/internal/catalog"
	"github.com/freshext/freshext/internal/extension"
	"github.com/freshext/freshext/internal/perms"
	"github.com/freshext/freshext/internal/util"
)

type AlreadyInstalledError struct {
	PackageID string
}

func (e *AlreadyInstalledError) Error() string {
	return fmt.Sprintf("%s is already installed", e.PackageID)
}

type UnsupportedMethodError struct {
	Method string
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf("unsupported fetch method %q (only git is supported)", e.Method)
}

type VersionResolutionError struct {
	Version    string
	Candidates []string
}

func (e *VersionResolutionError) Error() string {
	return fmt.Sprintf("failed to checkout version %q (tried %s)", e.Version, strings.Join(e.Candidates, ", "))
}

// SourceControl is the version control capability the orchestrator drives.
// The production implementation uses go-git; tests inject fakes.
type SourceControl interface {
	Clone(ctx context.Context, url, dest string) error
	Fetch(ctx context.Context, dest string) error
	Checkout(ctx context.Context, dest, ref string) error
}

// PermissionReconciler makes installed files servable after a copy. Failures
// are advisory and never fail the install.
type PermissionReconciler interface {
	Reconcile(path string) perms.Outcome
}

type Options struct {
	// AllowExisting permits installing over an already installed extension,
	// which is how upgrades work.
	AllowExisting bool
}

// Installer materializes catalog entries into the extensions directory using
// a per-package scratch clone as the staging area.
type Installer struct {
	logger   logger.Logger
	root     string
	cacheDir string
	scm      SourceControl
	perms    PermissionReconciler
}

func New(logger logger.Logger, root, cacheDir string, scm SourceControl, perms PermissionReconciler) *Installer {
	return &Installer{logger: logger, root: root, cacheDir: cacheDir, scm: scm, perms: perms}
}

// CandidateRefs returns the checkout candidates for a version, tried in
// order. Registries are inconsistent about tag naming (v1.2 vs 1.2 vs an
// untagged branch), so progressively looser candidates are attempted before
// giving up, ending at the remote default branch.
func CandidateRefs(version string) []string {
	return []string{
		"v" + version,
		version,
		"origin/" + version,
		"origin/v" + version,
		"origin/HEAD",
	}
}

// Install fetches entry's source at its published version and copies it into
// place. Nothing under the target directory is touched until the scratch
// clone has been checked out and validated; from the copy step onward a
// failure can leave a partially written target behind.
func (i *Installer) Install(ctx context.Context, entry *catalog.Entry, opts Options) (*extension.Metadata, error) {
	target := filepath.Join(i.root, entry.PackageID)
	if !opts.AllowExisting && util.Exists(filepath.Join(target, extension.MetadataFile)) {
		return nil, &AlreadyInstalledError{PackageID: entry.PackageID}
	}
	if entry.Method != "git" {
		return nil, &UnsupportedMethodError{Method: entry.Method}
	}

	scratch := filepath.Join(i.cacheDir, entry.PackageID)
	// a clone interrupted part way through leaves no .git/config, so the next
	// run falls back to cloning again
	if util.Exists(filepath.Join(scratch, ".git", "config")) {
		i.logger.Debug("scratch clone exists at %s, fetching updates", scratch)
		if err := i.scm.Fetch(ctx, scratch); err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", entry.URL, err)
		}
	} else {
		i.logger.Debug("cloning %s into %s", entry.URL, scratch)
		if err := i.scm.Clone(ctx, entry.URL, scratch); err != nil {
			return nil, fmt.Errorf("failed to clone %s: %w", entry.URL, err)
		}
	}

	ref, err := i.checkout(ctx, scratch, entry.Version)
	if err != nil {
		return nil, err
	}
	i.logger.Debug("checked out %s", ref)

	srcDir := filepath.Join(scratch, entry.Directory)
	if _, err := extension.ReadMetadata(srcDir); err != nil {
		return nil, fmt.Errorf("fetched source for %s is not a valid extension: %w", entry.PackageID, err)
	}

	i.logger.Debug("copying %s into %s", srcDir, target)
	if err := util.CopyDir(srcDir, target); err != nil {
		return nil, fmt.Errorf("failed to copy %s into place: %w", entry.PackageID, err)
	}

	md, err := extension.ReadMetadata(target)
	if err != nil {
		return nil, fmt.Errorf("installed %s but its metadata is unreadable: %w", entry.PackageID, err)
	}

	if i.perms != nil {
		outcome := i.perms.Reconcile(target)
		switch outcome.Kind {
		case perms.OutcomeAlreadyServable:
			i.logger.Debug("already running as %s, leaving ownership alone", outcome.Account)
		case perms.OutcomeChanged:
			i.logger.Info("changed ownership of %s to %s", target, outcome.Account)
		case perms.OutcomeManual:
			i.logger.Warn("could not make %s servable: %s", target, outcome.Reason)
		}
	}
	return md, nil
}

func (i *Installer) checkout(ctx context.Context, scratch, version string) (string, error) {
	candidates := CandidateRefs(version)
	for _, ref := range candidates {
		i.logger.Debug("trying to checkout %s", ref)
		if err := i.scm.Checkout(ctx, scratch, ref); err != nil {
			i.logger.Trace("checkout %s failed: %s", ref, err)
			continue
		}
		return ref, nil
	}
	return "", &VersionResolutionError{Version: version, Candidates: candidates}
}
