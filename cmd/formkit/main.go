// Command formkit hosts the demo forms and inspects formkit configuration.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vango-dev/formkit/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode is 2 for configuration errors and 1 otherwise.
func exitCode(err error) int {
	if errors.HasCode(err, "C001") || errors.HasCode(err, "C002") {
		return 2
	}
	return 1
}

func newRootCmd() *cobra.Command {
	var noColor bool

	rootCmd := &cobra.Command{
		Use:   "formkit",
		Short: "Server-driven forms with declarative validation",
		Long: `formkit serves live forms whose state and validation run on the server.

Each browser connection drives one form controller over a WebSocket.
Field rules are checked as the user types, errors are shown once a
field has been touched, and accepted submissions are archived.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor || os.Getenv("NO_COLOR") != "" || !isTerminalWriter(cmd.OutOrStdout()) {
				errors.DisableColors()
			} else {
				errors.EnableColors()
			}
		},
	}
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		serveCmd(),
		checkCmd(),
		explainCmd(),
		versionCmd(),
	)
	return rootCmd
}

func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && errors.IsTerminal(f)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	mark := "✓"
	if errors.ColorsEnabled() {
		mark = "\033[32m✓\033[0m"
	}
	fmt.Fprintf(w, "%s %s\n", mark, fmt.Sprintf(format, args...))
}

// info prints an indented info line.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
