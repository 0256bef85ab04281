/*
File    : dragon/cmd/dragon/cmd/repl.go
Author  : yukatan1701
Contact : yukatan1701(@github.com)
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yukatan1701/dragon/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive Dragon session",
	Long: `Start an interactive session with a persistent global scope.
Blocks and function definitions may span lines; the continuation prompt
stays up until the entry is complete.`,
	Args: cobra.NoArgs,
	RunE: startRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func startRepl(_ *cobra.Command, _ []string) error {
	r := repl.NewRepl(Version)
	r.PrintBannerInfo(os.Stderr)
	if err := r.Start(os.Stdout); err != nil {
		return reportError(err)
	}
	return nil
}
