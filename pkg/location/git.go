// pkg/location/git.go
package location

import (
	"context"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/arc-language/libcairo/pkg/build"
)

// Git is a repository checked out at a tag, branch or commit.
// With none of them set the default branch is used.
type Git struct {
	URL    string
	Tag    string
	Branch string
	Commit string
}

// NewGit creates a location for the repository at url
func NewGit(url string) *Git {
	return &Git{URL: url}
}

// GitHub creates a location for github.com/<owner>/<repo>
func GitHub(owner, repo string) *Git {
	return NewGit(fmt.Sprintf("https://github.com/%s/%s.git", owner, repo))
}

// WithTag checks out the given tag
func (g *Git) WithTag(tag string) *Git {
	g.Tag = tag
	return g
}

// WithBranch checks out the given branch
func (g *Git) WithBranch(branch string) *Git {
	g.Branch = branch
	return g
}

// WithCommit checks out the given commit
func (g *Git) WithCommit(commit string) *Git {
	g.Commit = commit
	return g
}

func (g *Git) Kind() Kind { return KindGit }

func (g *Git) String() string {
	switch {
	case g.Commit != "":
		return g.URL + "@" + g.Commit
	case g.Tag != "":
		return g.URL + "@" + g.Tag
	case g.Branch != "":
		return g.URL + "@" + g.Branch
	default:
		return g.URL
	}
}

// EnsureSources clones the repository into dir
func (g *Git) EnsureSources(ctx context.Context, dir string, bc *build.Context) error {
	ok, err := populated(dir)
	if err != nil {
		return unavailable(g, err)
	}
	if ok {
		bc.Logger().Debugf("Sources already present in %s", dir)
		return nil
	}

	opts := &git.CloneOptions{
		URL: g.URL,
	}
	switch {
	case g.Commit != "":
		// Arbitrary commits cannot be fetched shallowly
	case g.Tag != "":
		opts.ReferenceName = plumbing.NewTagReferenceName(g.Tag)
		opts.SingleBranch = true
		opts.Depth = 1
	case g.Branch != "":
		opts.ReferenceName = plumbing.NewBranchReferenceName(g.Branch)
		opts.SingleBranch = true
		opts.Depth = 1
	default:
		opts.Depth = 1
	}

	bc.Logger().Infof("Cloning %s", g)
	repo, err := git.PlainCloneContext(ctx, dir, false, opts)
	if err != nil {
		os.RemoveAll(dir)
		return unavailable(g, fmt.Errorf("git clone failed: %w", err))
	}

	if err := g.checkoutCommit(repo, dir); err != nil {
		return err
	}

	bc.Logger().Infof("✓ Cloned %s into %s", g, dir)
	return nil
}

// checkoutCommit moves the clone in dir to the pinned commit. On failure the
// clone is removed so the next run does not take it for resolved sources.
func (g *Git) checkoutCommit(repo *git.Repository, dir string) error {
	if g.Commit == "" {
		return nil
	}

	wt, err := repo.Worktree()
	if err == nil {
		err = wt.Checkout(&git.CheckoutOptions{Hash: plumbing.NewHash(g.Commit)})
	}
	if err != nil {
		os.RemoveAll(dir)
		return unavailable(g, fmt.Errorf("checking out %s: %w", g.Commit, err))
	}
	return nil
}
