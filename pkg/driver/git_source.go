package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// GitFetcher clones repositories into a cache directory, keeping one checkout
// per resolved commit.
type GitFetcher struct {
	cacheDir string
}

// NewGitFetcher returns nil when cacheDir is empty.
func NewGitFetcher(cacheDir string) *GitFetcher {
	if cacheDir == "" {
		return nil
	}
	return &GitFetcher{cacheDir: cacheDir}
}

// Fetch returns the checkout directory and the commit hash ref resolved to.
func (g *GitFetcher) Fetch(ref GitRef) (string, string, error) {
	if g == nil {
		return "", "", errors.New("git fetcher unavailable")
	}
	url := strings.TrimSpace(ref.URL)
	if url == "" {
		return "", "", fmt.Errorf("git: repository URL required")
	}
	baseDir := filepath.Join(g.cacheDir, "git", sanitizePathSegment(url))
	return ensureGitCheckout(baseDir, url, strings.TrimSpace(ref.Rev))
}

func ensureGitCheckout(baseDir, url, rev string) (string, string, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return "", "", err
	}

	// A pinned commit that is already checked out needs no network access.
	if rev != "" {
		existing := filepath.Join(baseDir, sanitizePathSegment(rev))
		if _, err := os.Stat(existing); err == nil {
			return existing, rev, nil
		}
	}

	tmpDir, err := os.MkdirTemp(baseDir, "git-fetch-*")
	if err != nil {
		return "", "", err
	}
	if err := os.RemoveAll(tmpDir); err != nil {
		return "", "", err
	}

	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{URL: url})
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("git clone %s: %w", url, err)
	}

	hash, err := resolveRevision(repo, rev)
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}

	targetDir := filepath.Join(baseDir, sanitizePathSegment(hash.String()))
	if _, err := os.Stat(targetDir); err == nil {
		_ = os.RemoveAll(tmpDir)
		return targetDir, hash.String(), nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", fmt.Errorf("git checkout %s: %w", hash, err)
	}

	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return "", "", err
	}
	return targetDir, hash.String(), nil
}

// resolveRevision accepts a commit, tag or branch name. Branches other than
// the default one only exist as remote-tracking refs after a clone.
func resolveRevision(repo *git.Repository, rev string) (*plumbing.Hash, error) {
	if rev == "" {
		rev = "HEAD"
	}
	candidates := []string{rev, "refs/tags/" + rev, "refs/remotes/origin/" + rev}
	var firstErr error
	for _, candidate := range candidates {
		hash, err := repo.ResolveRevision(plumbing.Revision(candidate))
		if err == nil {
			return hash, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, fmt.Errorf("resolve revision %s: %w", rev, firstErr)
}

func sanitizePathSegment(segment string) string {
	segment = strings.TrimSpace(segment)
	if segment == "" {
		return "head"
	}
	var b strings.Builder
	for _, r := range segment {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	result := b.String()
	if strings.Trim(result, ".") == "" {
		return "head"
	}
	return result
}
