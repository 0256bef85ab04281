/*
File    : dragon/cmd/dragon/cmd/root.go
Author  : yukatan1701
Contact : yukatan1701(@github.com)
*/

// Package cmd wires the dragon CLI: run, lex, postfix and repl
// subcommands over the lexer/parser/eval pipeline.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version is the interpreter version reported by --version.
var Version = "1.0.0"

var redColor = color.New(color.FgRed)

var rootCmd = &cobra.Command{
	Use:   "dragon",
	Short: "Dragon interpreter",
	Long: `dragon is a Go implementation of the Dragon scripting language.

Dragon is a small, line-oriented, dynamically-typed language: each
function body compiles to per-line postfix programs that execute on a
value stack. Programs start at top level and may define functions whose
bodies end at a top-level return.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.MaximumNArgs(1),
	// `dragon file.dr` is shorthand for `dragon run file.dr`.
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return runScript(cmd, args)
		}
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadSource reads the program text for a subcommand, either from the
// file argument or from the --eval flag.
func loadSource(args []string, evalExpr string) (src, name string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) != 1 {
		return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
	}
	content, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to open file `%s`: %w", args[0], err)
	}
	return string(content), args[0], nil
}

// reportError prints a pipeline error the way the original interpreter
// does: red, on stderr, one line. The caller returns the error so the
// process exits non-zero.
func reportError(err error) error {
	redColor.Fprintf(os.Stderr, "%v\n", err)
	return err
}
