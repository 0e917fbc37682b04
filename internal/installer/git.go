package installer

import (
	"context"
	"errors"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// GitSourceControl implements SourceControl with go-git, so no git binary is
// required on the host.
type GitSourceControl struct{}

func (GitSourceControl) Clone(ctx context.Context, url, dest string) error {
	repo, err := git.PlainCloneContext(ctx, dest, false, &git.CloneOptions{
		URL:  url,
		Tags: git.AllTags,
	})
	if err != nil {
		return err
	}
	return setRemoteHead(repo)
}

// setRemoteHead records the remote default branch as refs/remotes/origin/HEAD.
// The git CLI writes this symref at clone time but go-git does not, and the
// origin/HEAD checkout candidate cannot resolve without it. Right after a
// clone HEAD still points at the default branch, so its name is the target.
func setRemoteHead(repo *git.Repository) error {
	head, err := repo.Head()
	if err != nil {
		return err
	}
	ref := plumbing.NewSymbolicReference(
		plumbing.NewRemoteHEADReferenceName("origin"),
		plumbing.NewRemoteReferenceName("origin", head.Name().Short()),
	)
	return repo.Storer.SetReference(ref)
}

func (GitSourceControl) Fetch(ctx context.Context, dest string) error {
	repo, err := git.PlainOpen(dest)
	if err != nil {
		return err
	}
	err = repo.FetchContext(ctx, &git.FetchOptions{Tags: git.AllTags})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	return err
}

// Checkout resolves ref as a revision (tag, branch or remote ref) and forces
// the worktree onto it, matching what git checkout --force does.
func (GitSourceControl) Checkout(ctx context.Context, dest, ref string) error {
	repo, err := git.PlainOpen(dest)
	if err != nil {
		return err
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return err
	}
	return wt.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true})
}
