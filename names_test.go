package bibsin

import (
	"strings"
	"testing"

	"github.com/drgo/core/tu"
)

func joined(ss []string) string { return strings.Join(ss, "|") }

func TestSplitList(t *testing.T) {
	s := NewSession(Options{})
	l := s.SplitList("Candy and Apples AnD {Green Eggs and Ham}", "and", "test.bib", 1, "author")
	tu.Equal(t, l.Len(), 3, tu.FailNow)
	tu.Equal(t, l.At(0), "Candy")
	tu.Equal(t, l.At(1), "Apples")
	tu.Equal(t, l.At(2), "{Green Eggs and Ham}")
	tu.Equal(t, s.WarningCount(), 0)
}

func TestSplitListEdges(t *testing.T) {
	s := NewSession(Options{})
	// leading and trailing delimiters are absorbed, not split on
	l := s.SplitList("and Apples and", "and", "", 0, "author")
	tu.Equal(t, l.Len(), 1)
	tu.Equal(t, l.At(0), "and Apples and")

	// adjacent delimiters yield a null substring and a warning
	l = s.SplitList("Candy and and Apples", "and", "", 0, "author")
	tu.Equal(t, l.Len(), 3, tu.FailNow)
	tu.Equal(t, l.At(0), "Candy")
	tu.Equal(t, l.Null(1), true)
	tu.Equal(t, l.At(2), "Apples")
	tu.Equal(t, s.WarningCount(), 1)

	// a delimiter needs whitespace on both sides
	l = s.SplitList("Sandy Beaches", "and", "", 0, "author")
	tu.Equal(t, l.Len(), 1)
}

// joining the split parts with the delimiter restores the input modulo
// whitespace at the split points
func TestSplitListJoinLaw(t *testing.T) {
	s := NewSession(Options{})
	inputs := []string{
		"A and B and C",
		"  A   and B ",
		"{a and b} and c",
		"One",
	}
	for _, in := range inputs {
		parts := s.SplitList(in, "and", "", 0, "x").Strings()
		back := strings.Join(parts, " and ")
		tu.Equal(t, collapseSpace(back), collapseSpace(in))
	}
}

func TestSplitNamePlain(t *testing.T) {
	s := NewSession(Options{})
	n := s.SplitName("John von Neumann", "", 0, 0)
	tu.Equal(t, joined(n.Part(FirstPart)), "John")
	tu.Equal(t, joined(n.Part(VonPart)), "von")
	tu.Equal(t, joined(n.Part(LastPart)), "Neumann")
	tu.Equal(t, n.PartLen(JrPart), 0)

	n = s.SplitName("Donald E. Knuth", "", 0, 0)
	tu.Equal(t, joined(n.Part(FirstPart)), "Donald|E.")
	tu.Equal(t, joined(n.Part(LastPart)), "Knuth")

	n = s.SplitName("Sartre", "", 0, 0)
	tu.Equal(t, n.PartLen(FirstPart), 0)
	tu.Equal(t, joined(n.Part(LastPart)), "Sartre")
}

func TestSplitNameComma(t *testing.T) {
	s := NewSession(Options{})
	n := s.SplitName("van der Graaf, Horace Q.", "", 0, 0)
	tu.Equal(t, joined(n.Part(FirstPart)), "Horace|Q.")
	tu.Equal(t, joined(n.Part(VonPart)), "van|der")
	tu.Equal(t, joined(n.Part(LastPart)), "Graaf")
}

// the lowercase scan must stop at structural commas
func TestSplitNameTwoCommas(t *testing.T) {
	s := NewSession(Options{})
	n := s.SplitName("von der foo, jr, Joe", "", 0, 0)
	tu.Equal(t, joined(n.Part(FirstPart)), "Joe")
	tu.Equal(t, joined(n.Part(VonPart)), "von|der")
	tu.Equal(t, joined(n.Part(LastPart)), "foo")
	tu.Equal(t, joined(n.Part(JrPart)), "jr")
}

func TestSplitNameExtraCommas(t *testing.T) {
	s := NewSession(Options{})
	n := s.SplitName("foo, jr, Joe, Bob", "", 7, 2)
	// extras beyond two commas are ignored with a warning
	tu.Equal(t, joined(n.Part(LastPart)), "foo")
	tu.Equal(t, joined(n.Part(JrPart)), "jr")
	tu.Equal(t, joined(n.Part(FirstPart)), "Joe|Bob")
	// one warning for the extra comma, one for promoting foo to last
	tu.Equal(t, s.WarningCount(), 2)
}

func TestSplitNameTrailingVon(t *testing.T) {
	s := NewSession(Options{})
	// a lowercase run that reaches the final token surrenders it to last
	n := s.SplitName("jean de la fontaine", "", 0, 0)
	tu.Equal(t, joined(n.Part(VonPart)), "jean|de|la")
	tu.Equal(t, joined(n.Part(LastPart)), "fontaine")
	tu.Equal(t, s.WarningCount(), 1)
}

func TestSplitNameDegenerate(t *testing.T) {
	s := NewSession(Options{})
	// whitespace-only input yields zero tokens without error
	n := s.SplitName("   ", "", 0, 0)
	tu.Equal(t, len(n.Tokens()), 0)
	n = s.SplitName("", "", 0, 0)
	tu.Equal(t, len(n.Tokens()), 0)
	n = s.SplitName("  Knuth  ", "", 0, 0)
	tu.Equal(t, joined(n.Part(LastPart)), "Knuth")

	// unbalanced braces swallow the rest into a single token
	n = s.SplitName("{Foo bar", "", 0, 0)
	tu.Equal(t, len(n.Tokens()), 1)
	tu.Equal(t, n.Tokens()[0], "{Foo bar")
}

// the four parts are disjoint and together cover the token list
func TestSplitNameCoverage(t *testing.T) {
	s := NewSession(Options{})
	names := []string{
		"John von Neumann",
		"van der Graaf, Horace Q.",
		"von der foo, jr, Joe",
		"Sartre",
		"Charles Louis Xavier Joseph de la Vall{\\'e}e Poussin",
	}
	for _, in := range names {
		n := s.SplitName(in, "", 0, 0)
		count := 0
		for _, p := range []NamePart{FirstPart, VonPart, LastPart, JrPart} {
			count += n.PartLen(p)
		}
		tu.Equal(t, count, len(n.Tokens()))
	}
}

func TestTokenCase(t *testing.T) {
	cases := []struct {
		tok string
		low bool
	}{
		{"von", true},
		{"Neumann", false},
		{"{\\foo x}y", true}, // significant char is the x inside the special character
		{"{\\'E}cole", false},
		{"{von} Neumann", false}, // braced group skipped, N decides... per-token input only
		{"{Von}", false},         // no significant letter at level 0
		{"123", false},
		{"d'Arcy", true},
	}
	for _, c := range cases {
		tu.Equal(t, lowercaseToken([]byte(c.tok)), c.low)
	}
}

func TestTokenizeSentinels(t *testing.T) {
	toks, commas := tokenizeName("van der Graaf, Horace Q.")
	tu.Equal(t, toks.Len(), 5)
	tu.Equal(t, len(commas), 1)
	tu.Equal(t, commas[0], 3)
	// the separator byte after each substring is overwritten with NUL;
	// the final token ends the buffer and needs none
	tu.Equal(t, strings.Count(string(toks.buf), "\x00"), 4)
}
