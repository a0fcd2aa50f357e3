// Package gitident resolves the identity a saved message is keyed by: the
// repository root path and the checked-out branch name.
//
// Both queries degrade to documented fallback values instead of failing;
// lacking repository identity must never block message preservation.
package gitident

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"

	"github.com/msgkeep/cli/cmd/msgkeep/cli/logging"
	"github.com/msgkeep/cli/cmd/msgkeep/cli/paths"
)

// UnknownBranch is the fallback branch name when the branch cannot be
// determined (not a repository, detached HEAD, git missing).
const UnknownBranch = "unknown"

// Locator resolves the cache-key identity. The methods never fail; failures
// degrade to fallback values.
type Locator interface {
	// Branch returns the current branch name, or UnknownBranch.
	Branch(ctx context.Context) string
	// Root returns the repository root, or the absolute working directory.
	Root(ctx context.Context) string
}

// Git is the Locator backed by the local git repository.
type Git struct{}

var _ Locator = Git{}

// Branch returns the checked-out branch name. Uses go-git first, then the
// git CLI as fallback (handles worktree layouts go-git can't open). Returns
// UnknownBranch if neither can determine a branch.
func (Git) Branch(ctx context.Context) string {
	name, err := resolveBranch(ctx)
	if err != nil {
		logging.Warn(ctx, "failed to resolve branch, using fallback",
			slog.String("fallback", UnknownBranch),
			slog.Any("error", err),
		)
		return UnknownBranch
	}
	return name
}

// Root returns the repository top-level directory. Falls back to the
// absolute current working directory when not inside a repository.
func (Git) Root(ctx context.Context) string {
	root, err := paths.RepoRoot()
	if err != nil {
		cwd, wdErr := os.Getwd()
		if wdErr != nil {
			cwd = "."
		}
		abs, absErr := filepath.Abs(cwd)
		if absErr != nil {
			abs = cwd
		}
		logging.Warn(ctx, "failed to resolve repository root, using working directory",
			slog.String("fallback", abs),
			slog.Any("error", err),
		)
		return abs
	}
	return root
}

// resolveBranch determines the current branch, or an error explaining why it
// could not.
func resolveBranch(ctx context.Context) (string, error) {
	// go-git first: no subprocess, works without the git binary installed.
	repo, err := git.PlainOpenWithOptions(".", &git.PlainOpenOptions{DetectDotGit: true})
	if err == nil {
		head, headErr := repo.Head()
		if headErr == nil && head.Name().IsBranch() {
			return head.Name().Short(), nil
		}
	}

	// Fallback to the git CLI. Prints an empty line on detached HEAD.
	cmd := exec.CommandContext(ctx, "git", "branch", "--show-current")
	output, err := cmd.Output()
	if err != nil {
		return "", err //nolint:wrapcheck // fallback path, caller logs and discards
	}
	name := strings.TrimSpace(string(output))
	if name == "" {
		return "", errors.New("detached HEAD, no current branch")
	}
	return name, nil
}
