// Package preserve brackets a commit-message check with save/clear
// semantics: the candidate message is persisted before the check runs, kept
// when the check fails, and cleared when it succeeds. The next 'git commit'
// can then offer the preserved text back to the user instead of losing it.
package preserve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/msgkeep/cli/cmd/msgkeep/cli/gitident"
	"github.com/msgkeep/cli/cmd/msgkeep/cli/logging"
	"github.com/msgkeep/cli/cmd/msgkeep/cli/normalize"
	"github.com/msgkeep/cli/cmd/msgkeep/cli/store"
	"github.com/msgkeep/cli/redact"
)

// ErrMissingMessageFile indicates the guard was constructed without the path
// to the commit message file. This is an integration error in the calling
// hook, not a runtime condition, and fails loudly instead of degrading.
var ErrMissingMessageFile = errors.New("no commit message file provided: the hook was likely invoked without the expected file argument")

// Options configures guard construction.
type Options struct {
	// CommentChar is the comment marker stripped during normalization.
	// Defaults to "#".
	CommentChar string

	// Redact scans the normalized message for secrets before persisting.
	Redact bool

	// Out receives the rejection echo when a check fails.
	// Defaults to os.Stdout.
	Out io.Writer
}

// guardState tracks the guard's single-use lifecycle.
type guardState int

const (
	stateCreated guardState = iota
	stateEntered
	stateResolved
)

// Guard is a single-use scoped operation around one commit-message check.
// State machine: Created -> Entered(saved) -> Committed(deleted) or
// Aborted(kept). No other transitions.
type Guard struct {
	store      *store.Store
	message    string
	repository string
	branch     string
	hookName   string
	out        io.Writer
	state      guardState
}

// New reads and normalizes the message file, resolves the repository
// identity, and returns a guard ready to Run. A missing message file is
// treated as an empty message; a missing file *argument* is an error.
func New(ctx context.Context, st *store.Store, loc gitident.Locator, msgFile, hookName string, opts Options) (*Guard, error) {
	if msgFile == "" {
		return nil, ErrMissingMessageFile
	}

	marker := opts.CommentChar
	if marker == "" {
		marker = "#"
	}

	raw, err := os.ReadFile(msgFile) //nolint:gosec // path is the hook's positional argument
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read commit message file: %w", err)
		}
		logging.Warn(ctx, "commit message file missing, treating as empty",
			slog.String("path", msgFile),
		)
		raw = nil
	}

	message := normalize.Clean(string(raw), marker)
	if opts.Redact {
		message = redact.Message(message)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	g := &Guard{
		store:      st,
		message:    message,
		repository: loc.Root(ctx),
		branch:     loc.Branch(ctx),
		hookName:   hookName,
		out:        out,
		state:      stateCreated,
	}

	logging.Debug(ctx, "guard created",
		slog.String("repository", g.repository),
		slog.String("branch", g.branch),
		slog.String("hook", g.hookName),
	)

	return g, nil
}

// Message returns the normalized message the guard operates on.
func (g *Guard) Message() string {
	return g.message
}

// Run executes check under the guard. The message is saved before the check
// runs; on success the saved entry for this exact (repository, branch, hook)
// triple is removed, on failure it is kept and the check's error is returned
// unchanged. Storage failures propagate: best-effort preservation matters
// less than not silently losing the user's work.
func (g *Guard) Run(ctx context.Context, check func(message string) error) error {
	if err := g.Begin(ctx); err != nil {
		return err
	}

	if checkErr := check(g.message); checkErr != nil {
		g.Rollback(ctx)
		return checkErr
	}

	return g.Commit(ctx)
}

// Begin persists the message and transitions the guard to Entered.
func (g *Guard) Begin(ctx context.Context) error {
	if g.state != stateCreated {
		return errors.New("guard already used")
	}

	if err := g.store.Save(ctx, g.repository, g.branch, g.hookName, g.message); err != nil {
		return fmt.Errorf("failed to preserve commit message: %w", err)
	}

	g.state = stateEntered
	logging.Info(ctx, "commit message preserved",
		slog.String("repository", g.repository),
		slog.String("branch", g.branch),
		slog.String("hook", g.hookName),
	)
	return nil
}

// Commit removes the entry saved by Begin. Precise per-hook deletion, not a
// blanket clear: entries accumulated by other hooks stay untouched.
func (g *Guard) Commit(ctx context.Context) error {
	if g.state != stateEntered {
		return errors.New("guard not entered")
	}
	g.state = stateResolved

	err := g.store.Remove(ctx, store.Filter{
		Repository: g.repository,
		Branch:     g.branch,
		HookName:   g.hookName,
	})
	if err != nil {
		return fmt.Errorf("failed to clear preserved commit message: %w", err)
	}

	logging.Info(ctx, "check passed, preserved message cleared",
		slog.String("hook", g.hookName),
	)
	return nil
}

// Rollback leaves the saved entry in place for later restoration and echoes
// the message so it isn't lost even if caching itself failed.
func (g *Guard) Rollback(ctx context.Context) {
	if g.state != stateEntered {
		return
	}
	g.state = stateResolved

	fmt.Fprintf(g.out, "Commit message rejected. Original content:\n%s\n", g.message)
	logging.Info(ctx, "check failed, message kept for restoration",
		slog.String("hook", g.hookName),
	)
}
