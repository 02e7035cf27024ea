package diag_test

import (
	"strings"
	"testing"

	"github.com/kylelemons/godebug/diff"
	"github.com/stretchr/testify/require"

	"github.com/ecl-lang/eclc/lang/diag"
	"github.com/ecl-lang/eclc/lang/token"
)

func pos(file string, line, col int) token.Position {
	return token.Position{Filename: file, Line: line, ColStart: col, ColEnd: col + 1}
}

func TestErrorStringIncludesPositionWhenValid(t *testing.T) {
	e := &diag.Error{Kind: diag.Simple, Pos: pos("t.ecl", 3, 5), Msg: "unresolved identifier %q"}
	require.Contains(t, e.Error(), "t.ecl:3:5")
	require.Contains(t, e.Error(), "unresolved identifier")
}

func TestErrorStringOmitsPositionWhenSynthesized(t *testing.T) {
	e := &diag.Error{Kind: diag.Internal, Msg: "unreachable"}
	require.Equal(t, "internal compiler error: unreachable", e.Error())
}

func TestListSortOrdersByFileThenLineThenColumn(t *testing.T) {
	var l diag.List
	l.Add(diag.Simple, pos("b.ecl", 1, 1), "in b")
	l.Add(diag.Simple, pos("a.ecl", 2, 1), "in a, line 2")
	l.Add(diag.Simple, pos("a.ecl", 1, 5), "in a, line 1 col 5")
	l.Add(diag.Simple, pos("a.ecl", 1, 1), "in a, line 1 col 1")
	l.Sort()

	var order []string
	for _, e := range l {
		order = append(order, e.Msg)
	}
	require.Equal(t, []string{
		"in a, line 1 col 1",
		"in a, line 1 col 5",
		"in a, line 2",
		"in b",
	}, order)
}

func TestListErrSummarizesMultipleErrors(t *testing.T) {
	var l diag.List
	require.Nil(t, l.Err())

	l.Add(diag.Simple, pos("t.ecl", 1, 1), "first")
	require.Equal(t, l[0], l.Err())

	l.Add(diag.Simple, pos("t.ecl", 2, 1), "second")
	err := l.Err()
	require.Error(t, err)
	require.Contains(t, err.Error(), "and 1 more errors")
}

// TestListRenderedReportMatchesExpectedLayout renders a sorted diagnostic
// list one error per line and diffs it against the expected report layout,
// the same godebug-diff-based comparison the teacher's own golden-file test
// helper (internal/filetest.DiffCustom) performs.
func TestListRenderedReportMatchesExpectedLayout(t *testing.T) {
	var l diag.List
	l.Add(diag.Grammar, pos("main.ecl", 5, 2), "unknown resolver function %q", "Foo::Bar")
	l.Add(diag.Simple, pos("main.ecl", 2, 10), "unresolved identifier %q", "x")
	l.Sort()

	var lines []string
	for _, e := range l {
		lines = append(lines, e.Error())
	}
	got := strings.Join(lines, "\n")

	want := strings.Join([]string{
		`main.ecl:2:10: error: unresolved identifier "x"`,
		`main.ecl:5:2: grammar error: unknown resolver function "Foo::Bar"`,
	}, "\n")

	if patch := diff.Diff(want, got); patch != "" {
		t.Errorf("diagnostic report mismatch:\n%s", patch)
	}
}
