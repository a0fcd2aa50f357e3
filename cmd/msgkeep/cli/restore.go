package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/msgkeep/cli/cmd/msgkeep/cli/dedupe"
	"github.com/msgkeep/cli/cmd/msgkeep/cli/gitident"
	"github.com/msgkeep/cli/cmd/msgkeep/cli/logging"
	"github.com/msgkeep/cli/cmd/msgkeep/cli/store"
)

func newRestoreCmd() *cobra.Command {
	var dump bool
	var anyIdentity bool

	cmd := &cobra.Command{
		Use:   "restore <commit-msg-file>",
		Short: "Splice preserved commit messages back into the message file",
		Long: `Reads any commit messages preserved for the current repository and branch,
deduplicates them, and rewrites the commit message file so the editor shows
them to the user. Preserved entries are cleared as part of restoration.

Intended to run from a prepare-commit-msg or early pre-commit hook.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithComponent(cmd.Context(), "restore")
			st, err := openStore()
			if err != nil {
				return err
			}
			return runRestore(ctx, cmd.OutOrStdout(), st, gitident.Git{}, args[0], dump, anyIdentity)
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "print cached messages and exit without restoring")
	cmd.Flags().BoolVar(&anyIdentity, "any", false, "operate across all repositories and branches")

	return cmd
}

// runRestore implements the restore flow: query, optionally dump, clear
// before rewrite, deduplicate, and overwrite the message file.
func runRestore(ctx context.Context, out io.Writer, st *store.Store, loc gitident.Locator, msgFile string, dump, anyIdentity bool) error {
	var filter store.Filter
	if !anyIdentity {
		filter = store.Filter{
			Repository: loc.Root(ctx),
			Branch:     loc.Branch(ctx),
		}
	}
	logging.Info(ctx, "restoring preserved messages",
		slog.String("repository", filter.Repository),
		slog.String("branch", filter.Branch),
		slog.Bool("any", anyIdentity),
	)

	messages, err := st.Query(ctx, filter)
	if err != nil {
		return err
	}

	if dump {
		if len(messages) == 0 {
			fmt.Fprintln(out, "No cached messages")
			return nil
		}
		for _, m := range messages {
			fmt.Fprintf(out, "Saved %s by %s (repository %s, branch %s):\n%s\n",
				m.Created.Format(time.RFC3339), m.HookName, m.Repository, m.Branch, m.Content)
		}
		return nil
	}

	// Clear before rewriting so a crash past this point can't re-offer the
	// same content on the very next run.
	if err := st.Remove(ctx, filter); err != nil {
		return err
	}

	existing, err := os.ReadFile(msgFile) //nolint:gosec // path is the hook's positional argument
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to read commit message file: %w", err)
		}
		existing = nil
	}

	messages = dedupe.Messages(messages)
	content := buildRestoredContent(messages, string(existing))

	if err := os.WriteFile(msgFile, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write commit message file: %w", err)
	}

	logging.Info(ctx, "commit message file rewritten",
		slog.String("path", msgFile),
		slog.Int("restored", len(messages)),
	)
	return nil
}

// buildRestoredContent formats deduplicated messages as provenance-commented
// blocks. Existing file content is appended behind a separator comment only
// when both sides are non-empty.
func buildRestoredContent(messages []store.SavedMessage, existing string) string {
	blocks := make([]string, 0, len(messages))
	for _, m := range messages {
		blocks = append(blocks, fmt.Sprintf("# Saved %s by %s hook\n%s",
			m.Created.Format(time.RFC3339), m.HookName, m.Content))
	}

	content := strings.Join(blocks, "\n\n")
	if content != "" && existing != "" {
		content = content + "\n# Existing commit message content\n" + existing
	}
	return content
}
