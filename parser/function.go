/*
File    : dragon/parser/function.go
Author  : yukatan1701
Contact : yukatan1701(@github.com)
*/
package parser

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/yukatan1701/dragon/lexer"
)

// Function is a compiled Dragon function: its name, the ordered parameter
// names, and the postfix program. Postfix is addressed by zero-based line
// index; the synthesized jump fragments target these indices.
type Function struct {
	Name    string
	Params  []string
	Postfix [][]*lexer.Token
}

// FuncMap maps function names to compiled functions. It always contains
// the synthetic @global entry holding the top-level statements.
type FuncMap map[string]*Function

// Dump writes the parameter list and per-line postfix of every function
// to w, in the format of the original interpreter's debug output. The
// @global function prints first, user functions follow in name order.
func (fm FuncMap) Dump(w io.Writer) {
	names := make([]string, 0, len(fm))
	for name := range fm {
		if name != lexer.GlobalFunc {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	ordered := append([]string{lexer.GlobalFunc}, names...)
	for _, name := range ordered {
		fn, ok := fm[name]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "Function `%s`:\n", fn.Name)
		fmt.Fprintf(w, "Parameters: (%s)\n", strings.Join(fn.Params, ", "))
		fmt.Fprintln(w, "Postfix:")
		for _, line := range fn.Postfix {
			for _, tok := range line {
				fmt.Fprintf(w, "%s ", tok)
			}
			fmt.Fprintln(w, ";")
		}
		fmt.Fprintln(w)
	}
}
