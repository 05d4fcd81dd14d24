package bibsin

import (
	"strings"
	"testing"

	"github.com/drgo/core/tu"
)

func TestMacroConcat(t *testing.T) {
	src := `@string{and = " and "}
@string{names = "J" # and # "B"}`
	s, _ := parseTestInput(t, src, Options{})
	text, ok := s.MacroText("names", "test.bib", 0)
	tu.Equal(t, ok, true)
	tu.Equal(t, text, "J and B")
	// stored macro text keeps its surrounding spaces
	and, _ := s.MacroText("and", "test.bib", 0)
	tu.Equal(t, and, " and ")
}

// regression: a number-valued macro expanded in a later session parse
func TestMacroNumberReexpansion(t *testing.T) {
	s := NewSession(Options{})
	_, err := s.Parse(strings.NewReader(`@string{year = 1995}`), "a.bib")
	tu.Equal(t, err, nil, tu.FailNow)
	const entry = `@article{k, year = year}`
	n, err := s.Parse(strings.NewReader(entry), "b.bib")
	tu.Equal(t, err, nil, tu.FailNow)
	tu.Equal(t, regularRecords(n)[0].Field("year"), "1995")
	// parse and expand again: the macro table must be intact
	n, err = s.Parse(strings.NewReader(entry), "b.bib")
	tu.Equal(t, err, nil, tu.FailNow)
	tu.Equal(t, regularRecords(n)[0].Field("year"), "1995")
	tu.Equal(t, s.WarningCount(), 0)
}

func TestUndefinedMacro(t *testing.T) {
	s, n := parseTestInput(t, `@article{k, journal = jcp # " letters"}`, Options{})
	// undefined reference warns and expands to the empty string
	tu.Equal(t, regularRecords(n)[0].Field("journal"), "letters")
	tu.Equal(t, s.WarningCount(), 1)
}

func TestMacroRedefinition(t *testing.T) {
	src := `@string{jan = "January"}
@string{jan = "Jan."}`
	s, _ := parseTestInput(t, src, Options{})
	text, _ := s.MacroText("jan", "test.bib", 0)
	tu.Equal(t, text, "Jan.")
	tu.Equal(t, s.WarningCount(), 1)
}

func TestNoStoreMacros(t *testing.T) {
	s, _ := parseTestInput(t, `@string{jan = "January"}`,
		Options{Process: ProcessDefault | NoStoreMacros})
	tu.Equal(t, s.MacroLength("jan"), 0)
}

func TestRawParsing(t *testing.T) {
	s, n := parseTestInput(t, `@article{k, title = "A" # mid # "Z"}`,
		Options{Process: Raw})
	val := regularRecords(n)[0].Fields()[0].Value()
	tu.Equal(t, len(val.Parts()), 3, tu.FailNow)
	tu.Equal(t, val.Parts()[1].Kind == MacroRef, true)
	tu.Equal(t, s.WarningCount(), 0) // nothing expanded, nothing to warn about

	// expansion on demand; idempotent
	s.AddMacroText("mid", "-", "test.bib", 0)
	text := s.ProcessValue(val, Expand|Paste, true)
	tu.Equal(t, text, "A-Z")
	tu.Equal(t, s.ProcessValue(val, Expand|Paste, true), "A-Z")
	tu.Equal(t, len(val.Parts()), 1)
	tu.Equal(t, val.Parts()[0].Kind == StringLit, true)
}

func TestPasteWithoutExpand(t *testing.T) {
	s, n := parseTestInput(t, `@article{k, title = "A " # "B" # mid # "C"}`,
		Options{Process: Raw})
	val := regularRecords(n)[0].Fields()[0].Value()
	s.ProcessValue(val, Paste, true)
	// adjacent literals pasted; the macro reference stays put
	tu.Equal(t, len(val.Parts()), 3)
	tu.Equal(t, val.Parts()[0].Text, "A B")
	tu.Equal(t, val.Parts()[1].Kind == MacroRef, true)
}

func TestCollapse(t *testing.T) {
	s := NewSession(Options{})
	val := &Value{parts: []SimpleValue{{Kind: StringLit, Text: "  too \n   many\tspaces  ", Delim: '"'}}}
	tu.Equal(t, s.ProcessValue(val, Expand|Collapse, false), "too many spaces")
	// without replace the value is untouched
	tu.Equal(t, val.Parts()[0].Text, "  too \n   many\tspaces  ")
}

func TestMacroDefNotCollapsed(t *testing.T) {
	// whitespace collapsing is deferred until a regular value using the
	// macro is processed
	src := `@string{sep = "  and  "}
@article{k, author = "A" # sep # "B"}`
	s, n := parseTestInput(t, src, Options{})
	sep, _ := s.MacroText("sep", "test.bib", 0)
	tu.Equal(t, sep, "  and  ")
	tu.Equal(t, regularRecords(n)[0].Field("author"), "A and B")
}

func TestMacroAPI(t *testing.T) {
	s := NewSession(Options{})
	s.AddMacroText("jcp", "J. Chem. Phys.", "test.bib", 1)
	tu.Equal(t, s.MacroLength("JCP"), len("J. Chem. Phys."))
	s.DeleteMacro("jcp")
	tu.Equal(t, s.MacroLength("jcp"), 0)
	s.AddMacroText("a", "1", "", 0)
	s.AddMacroText("b", "2", "", 0)
	s.DeleteAllMacros()
	tu.Equal(t, s.MacroLength("a")+s.MacroLength("b"), 0)
	_, ok := s.MacroText("a", "", 0)
	tu.Equal(t, ok, false)
	tu.Equal(t, s.WarningCount(), 1) // undefined lookup warns
}
