package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/msgkeep/cli/cmd/msgkeep/cli/logging"
)

const longHelp = `
msgkeep preserves commit messages across failed pre-commit and commit-msg
hook runs so you don't have to retype them.

Wrap a commit-message check with 'msgkeep check' to save the candidate
message before the check runs; install 'msgkeep restore' as an early hook to
splice any preserved messages back into the commit message file on the next
attempt.
`

// Version information (can be set at build time)
var (
	Version = "dev"
	Commit  = "unknown"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "msgkeep",
		Short: "Preserve commit messages across failed hook runs",
		Long:  longHelp,
		// Let main.go handle error printing to avoid duplication
		SilenceErrors: true,
		// Hide completion command from help but keep it functional
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			// Logging failures fall back to stderr, never block the hook
			logging.SetLogLevelGetter(GetLogLevel)
			_ = logging.Init()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			logging.Close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newRestoreCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("msgkeep %s (%s)\n", Version, Commit)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
