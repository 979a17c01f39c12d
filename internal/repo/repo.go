// Package repo reads the trigger coordinates of a local git checkout:
// the HEAD commit and the owner/name of the origin remote.
package repo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// DefaultRemote is the remote whose URL identifies the hosted repository.
const DefaultRemote = "origin"

// Local is an opened git checkout.
type Local struct {
	repo *git.Repository
	dir  string
}

// Open opens the git repository containing dir, searching parent
// directories for the .git directory.
func Open(dir string) (*Local, error) {
	r, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", dir, err)
	}
	return &Local{repo: r, dir: dir}, nil
}

// Root returns the top-level directory of the working tree.
func (l *Local) Root() (string, error) {
	wt, err := l.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("opening worktree: %w", err)
	}
	return wt.Filesystem.Root(), nil
}

// HeadSHA returns the commit HEAD points at.
func (l *Local) HeadSHA() (string, error) {
	head, err := l.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", fmt.Errorf("repository at %s has no commits", l.dir)
		}
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

// RemoteURL returns the first URL configured for the named remote.
func (l *Local) RemoteURL(name string) (string, error) {
	remote, err := l.repo.Remote(name)
	if err != nil {
		return "", fmt.Errorf("remote %q: %w", name, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("remote %q has no URL", name)
	}
	return urls[0], nil
}

// OwnerRepo returns the owner and repository name of the origin remote.
func (l *Local) OwnerRepo() (string, string, error) {
	url, err := l.RemoteURL(DefaultRemote)
	if err != nil {
		return "", "", err
	}
	return ParseOwnerRepo(url)
}

// ParseOwnerRepo extracts owner and repository name from a remote URL or an
// "owner/repo" slug. Supported forms:
//   - https://github.com/owner/repo(.git)
//   - git@github.com:owner/repo(.git)
//   - ssh://git@github.com/owner/repo(.git)
//   - owner/repo
func ParseOwnerRepo(url string) (string, string, error) {
	normalized := normalizeGitURL(url)
	parts := strings.Split(normalized, "/")

	// host/owner/repo for URLs, owner/repo for slugs.
	if len(parts) < 2 {
		return "", "", fmt.Errorf("cannot determine owner/repo from %q", url)
	}
	owner, name := parts[len(parts)-2], parts[len(parts)-1]
	if owner == "" || name == "" {
		return "", "", fmt.Errorf("cannot determine owner/repo from %q", url)
	}
	return owner, name, nil
}

// normalizeGitURL strips scheme, user info and the .git suffix, leaving
// host/owner/repo (or owner/repo for slugs). Case is preserved because the
// result is used for API routing.
func normalizeGitURL(url string) string {
	url = strings.TrimSpace(url)
	url = strings.TrimSuffix(url, "/")
	url = strings.TrimSuffix(url, ".git")

	// Handle SSH URLs: git@host:owner/repo → host/owner/repo
	if strings.HasPrefix(url, "git@") {
		url = strings.TrimPrefix(url, "git@")
		url = strings.Replace(url, ":", "/", 1)
	}

	for _, scheme := range []string{"https://", "http://", "ssh://", "git://"} {
		url = strings.TrimPrefix(url, scheme)
	}

	// Drop user info such as git@ or x-access-token:...@
	if at := strings.LastIndex(url, "@"); at >= 0 {
		url = url[at+1:]
	}

	return strings.TrimSuffix(url, "/")
}
