/*
File    : dragon/cmd/dragon/cmd/postfix.go
Author  : yukatan1701
Contact : yukatan1701(@github.com)
*/
package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yukatan1701/dragon/lexer"
	"github.com/yukatan1701/dragon/parser"
)

var postfixCmd = &cobra.Command{
	Use:   "postfix [file]",
	Short: "Compile a Dragon source file and print the postfix programs",
	Long: `Compile a Dragon program and print, for every function, its parameter
list and the per-line postfix form including the synthesized jumps.
Useful for inspecting how control flow is lowered.

Examples:
  dragon postfix script.dr
  dragon postfix -e "println 1 + 2 * 3"`,
	Args: cobra.MaximumNArgs(1),
	RunE: postfixScript,
}

func init() {
	rootCmd.AddCommand(postfixCmd)

	postfixCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "compile inline code instead of reading from file")
}

func postfixScript(cmd *cobra.Command, args []string) error {
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
	funcs.Dump(os.Stdout)
	return nil
}
