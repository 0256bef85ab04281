/*
File    : dragon/cmd/dragon/cmd/scenarios_test.go
Author  : yukatan1701
Contact : yukatan1701(@github.com)
*/
package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukatan1701/dragon/eval"
	"github.com/yukatan1701/dragon/lexer"
	"github.com/yukatan1701/dragon/parser"
)

// pipeline runs src through lex, compile and execute, returning stdout.
func pipeline(src string) (string, error) {
	lex, err := lexer.New(strings.NewReader(src))
	if err != nil {
		return "", err
	}
	funcs, err := parser.New(lex).Parse()
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	interp := eval.New(funcs)
	interp.SetWriter(&out)
	err = interp.Run()
	return out.String(), err
}

// TestExamples executes every script under examples/ and snapshots its
// output.
func TestExamples(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "..", "examples", "*.dr"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			content, err := os.ReadFile(path)
			require.NoError(t, err)
			out, err := pipeline(string(content))
			require.NoError(t, err)
			snaps.MatchSnapshot(t, out)
		})
	}
}

// TestPipeline_Outputs pins the exact stdout of the canonical programs.
func TestPipeline_Outputs(t *testing.T) {
	tests := []struct {
		Name     string
		Src      string
		Expected string
	}{
		{
			Name:     "arithmetic",
			Src:      "println 1 + 2 * 3\nreturn",
			Expected: "7\n",
		},
		{
			Name: "while_sum",
			Src: `i = 0
s = 0
while i < 5
s = s + i
i = i + 1
endwhile
println s
return`,
			Expected: "10\n",
		},
		{
			Name: "abs",
			Src: `function abs(x)
if x < 0
return -x
else
return x
endif
return 0
println abs(-3)
println abs(4)
return`,
			Expected: "3\n4\n",
		},
		{
			Name: "globals",
			Src: `g = 10
function bump()
global g
g = g + 1
return
bump()
bump()
println g
return`,
			Expected: "12\n",
		},
	}
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			out, err := pipeline(test.Src)
			require.NoError(t, err)
			assert.Equal(t, test.Expected, out)
		})
	}
}

// TestPipeline_Errors checks that each phase reports with its own
// bracketed prefix.
func TestPipeline_Errors(t *testing.T) {
	tests := []struct {
		Name   string
		Src    string
		Prefix string
	}{
		{"lex", "x = 12abc\nreturn", "[PARSER EXCEPTION]"},
		{"syntax", "if true\nprintln 1\nreturn", "[SYNTAX EXCEPTION]"},
		{"runtime", `println "a" < "b"` + "\nreturn", "[RUNTIME EXCEPTION]"},
	}
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			_, err := pipeline(test.Src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.Prefix)
		})
	}
}

// TestDumps snapshots the lex and postfix debug output for a small
// program, pinning the lowering of a while block.
func TestDumps(t *testing.T) {
	src := `i = 0
while i < 2
i = i + 1
endwhile
println i
return`

	lex, err := lexer.New(strings.NewReader(src))
	require.NoError(t, err)
	var tokenDump bytes.Buffer
	lex.Dump(&tokenDump)
	snaps.MatchSnapshot(t, tokenDump.String())

	funcs, err := parser.New(lex).Parse()
	require.NoError(t, err)
	var postfixDump bytes.Buffer
	funcs.Dump(&postfixDump)
	snaps.MatchSnapshot(t, postfixDump.String())
}

// TestLoadSource covers the input selection of the subcommands.
func TestLoadSource(t *testing.T) {
	src, name, err := loadSource(nil, "println 1")
	require.NoError(t, err)
	assert.Equal(t, "println 1", src)
	assert.Equal(t, "<eval>", name)

	path := filepath.Join(t.TempDir(), "prog.dr")
	require.NoError(t, os.WriteFile(path, []byte("println 2\nreturn\n"), 0o644))
	src, name, err = loadSource([]string{path}, "")
	require.NoError(t, err)
	assert.Equal(t, "println 2\nreturn\n", src)
	assert.Equal(t, path, name)

	_, _, err = loadSource(nil, "")
	assert.Error(t, err)

	_, _, err = loadSource([]string{filepath.Join(t.TempDir(), "missing.dr")}, "")
	assert.Error(t, err)
}
