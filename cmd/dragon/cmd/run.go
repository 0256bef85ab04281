/*
File    : dragon/cmd/dragon/cmd/run.go
Author  : yukatan1701
Contact : yukatan1701(@github.com)
*/
package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/yukatan1701/dragon/eval"
	"github.com/yukatan1701/dragon/lexer"
	"github.com/yukatan1701/dragon/parser"
)

var (
	evalExpr string
	debug    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Dragon source file or inline program",
	Long: `Execute a Dragon program from a file or an inline string.

Examples:
  # Run a script file
  dragon run script.dr

  # Evaluate inline code
  dragon run -e "println 1 + 2 * 3"

  # Trace execution to stderr
  dragon run --debug script.dr`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "run inline code instead of reading from file")
	runCmd.Flags().BoolVar(&debug, "debug", false, "trace execution to stderr")
}

func runScript(_ *cobra.Command, args []string) error {
	src, _, err := loadSource(args, evalExpr)
	if err != nil {
		return reportError(err)
	}
	lex, err := lexer.New(strings.NewReader(src))
	if err != nil {
		return reportError(err)
	}
	funcs, err := parser.New(lex).Parse()
	if err != nil {
		return reportError(err)
	}
	interp := eval.New(funcs)
	interp.Debug = debug
	if err := interp.Run(); err != nil {
		return reportError(err)
	}
	return nil
}
