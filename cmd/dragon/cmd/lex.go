/*
File    : dragon/cmd/dragon/cmd/lex.go
Author  : yukatan1701
Contact : yukatan1701(@github.com)
*/
package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yukatan1701/dragon/lexer"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Dragon source file and print the token lines",
	Long: `Tokenize a Dragon program and print one numbered line of tokens per
source line. Useful for inspecting how the lexer classifies the input.

Examples:
  dragon lex script.dr
  dragon lex -e "x = 1 + 2"`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
}

func lexScript(cmd *cobra.Command, args []string) error {
	src, _, err := loadSource(args, evalExpr)
	if err != nil {
		return reportError(err)
	}
	lex, err := lexer.New(strings.NewReader(src))
	if err != nil {
		return reportError(err)
	}
	lex.Dump(os.Stdout)
	return nil
}
