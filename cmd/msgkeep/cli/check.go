package cli

import (
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/msgkeep/cli/cmd/msgkeep/cli/gitident"
	"github.com/msgkeep/cli/cmd/msgkeep/cli/logging"
	"github.com/msgkeep/cli/cmd/msgkeep/cli/preserve"
)

func newCheckCmd() *cobra.Command {
	var hookName string

	cmd := &cobra.Command{
		Use:   "check <commit-msg-file> -- <command> [args...]",
		Short: "Run a commit-message check, preserving the message if it fails",
		Long: `Wraps an arbitrary commit-message validation command. The candidate message
is normalized and preserved before the command runs. If the command succeeds
the preserved entry is cleared; if it fails the entry is kept so the next
'msgkeep restore' can offer the message back to the user, and the command's
exit status is propagated.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithComponent(cmd.Context(), "check")
			ctx = logging.WithHook(ctx, hookName)

			msgFile := args[0]
			command := args[1:]
			start := time.Now()

			st, err := openStore()
			if err != nil {
				return err
			}

			cfg := loadSettings()
			guard, err := preserve.New(ctx, st, gitident.Git{}, msgFile, hookName, preserve.Options{
				CommentChar: cfg.CommentChar,
				Redact:      cfg.RedactionEnabled(),
			})
			if err != nil {
				return err
			}

			runErr := guard.Run(ctx, func(_ string) error {
				c := exec.CommandContext(ctx, command[0], command[1:]...) //nolint:gosec // command is the caller's hook script
				c.Stdin = os.Stdin
				c.Stdout = os.Stdout
				c.Stderr = os.Stderr
				return c.Run() //nolint:wrapcheck // the check's error must reach the caller unchanged
			})
			logging.LogDuration(ctx, slog.LevelDebug, "check completed", start,
				slog.Bool("success", runErr == nil),
			)
			if runErr != nil {
				var exitErr *exec.ExitError
				if errors.As(runErr, &exitErr) {
					// The guard already echoed the rejected message and the
					// command printed its own diagnostics.
					return NewSilentError(runErr)
				}
				return runErr
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&hookName, "hook", "commit-msg", "name of the check, recorded with the preserved message")

	return cmd
}
