// Package vcs wraps the git operations the session orchestrator needs:
// listing changed files and committing the journal updates.
package vcs

import (
	"fmt"
	"sort"
	"time"

	git "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/object"
)

// Committer is the version-control collaborator interface.
type Committer interface {
	// ChangedFiles returns the paths with uncommitted changes.
	ChangedFiles() ([]string, error)
	// Commit stages the given paths and commits them, returning the
	// commit hash.
	Commit(message string, paths []string) (string, error)
}

// Repo implements Committer over a local git worktree.
type Repo struct {
	repo        *git.Repository
	authorName  string
	authorEmail string
}

// Open opens the git repository at path.
func Open(path, authorName, authorEmail string) (*Repo, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("vcs: open %s: %w", path, err)
	}
	if authorName == "" {
		authorName = "dagaz"
	}
	if authorEmail == "" {
		authorEmail = "dagaz@localhost"
	}
	return &Repo{repo: repo, authorName: authorName, authorEmail: authorEmail}, nil
}

// ChangedFiles returns every worktree path whose status is not
// unmodified, sorted for stable output.
func (r *Repo) ChangedFiles() ([]string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("vcs: worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("vcs: status: %w", err)
	}

	var out []string
	for path, st := range status {
		if st.Worktree == git.Unmodified && st.Staging == git.Unmodified {
			continue
		}
		out = append(out, path)
	}
	sort.Strings(out)
	return out, nil
}

// Commit stages paths and records a commit. Paths that cannot be staged
// (already deleted, outside the worktree) are skipped; an empty staging
// set is not an error and yields an empty hash.
func (r *Repo) Commit(message string, paths []string) (string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("vcs: worktree: %w", err)
	}

	staged := 0
	for _, p := range paths {
		if _, addErr := wt.Add(p); addErr == nil {
			staged++
		}
	}
	if staged == 0 {
		return "", nil
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  r.authorName,
			Email: r.authorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("vcs: commit: %w", err)
	}
	return hash.String(), nil
}

var _ Committer = (*Repo)(nil)
