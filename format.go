package bibsin

import "strings"

// PartFormat describes how one part of a name is rendered.
type PartFormat struct {
	// Abbrev renders each token as its abbreviation instead of
	// verbatim.
	Abbrev bool
	// PrePart and PostPart surround the whole part; omitted when the
	// part has no tokens.
	PrePart, PostPart string
	// PreToken and PostToken surround each token. When abbreviating,
	// PostToken follows every component of a hyphenated token
	// (Jean-Paul with PostToken "." gives J.-P.).
	PreToken, PostToken string
	// InterToken joins the tokens of the part.
	InterToken string
	// SuppressSingleLetter drops PostToken after a token that is
	// already a single letter (the S in Harry S Truman). Off by
	// default: the historical behavior always appends.
	SuppressSingleLetter bool
}

// NameFormat drives FormatName: which parts appear, in what order,
// and how each is rendered.
type NameFormat struct {
	Order []NamePart
	Parts [4]PartFormat
}

// DefaultNameFormat renders "first von last, jr" with all tokens
// verbatim and single-space joins.
func DefaultNameFormat() *NameFormat {
	f := &NameFormat{Order: []NamePart{FirstPart, VonPart, LastPart, JrPart}}
	for p := range f.Parts {
		f.Parts[p].InterToken = " "
		f.Parts[p].PostPart = " "
	}
	f.Parts[LastPart].PostPart = ""
	f.Parts[JrPart] = PartFormat{PrePart: ", ", InterToken: " "}
	return f
}

// AbbrevFirstFormat is DefaultNameFormat with the first-name tokens
// abbreviated and terminated by periods: "J.-P. Sartre".
func AbbrevFirstFormat() *NameFormat {
	f := DefaultNameFormat()
	f.Parts[FirstPart].Abbrev = true
	f.Parts[FirstPart].PostToken = "."
	return f
}

// FormatName renders a split name under the given format. An
// abbreviated token gets the closing braces its cut prefix needs; all
// other token text is copied as it is, so the output carries balanced
// braces whenever every token of the name does. A token whose braces
// are unbalanced is not rebalanced.
func FormatName(n *Name, f *NameFormat) string {
	var sb strings.Builder
	for _, p := range f.Order {
		toks := n.Part(p)
		if len(toks) == 0 {
			continue
		}
		pf := &f.Parts[p]
		sb.WriteString(pf.PrePart)
		for i, tok := range toks {
			if i > 0 {
				sb.WriteString(pf.InterToken)
			}
			renderToken(&sb, tok, pf)
		}
		sb.WriteString(pf.PostPart)
	}
	return sb.String()
}

func renderToken(sb *strings.Builder, tok string, pf *PartFormat) {
	sb.WriteString(pf.PreToken)
	if !pf.Abbrev {
		sb.WriteString(tok)
		if !(pf.SuppressSingleLetter && len(tok) == 1) {
			sb.WriteString(pf.PostToken)
		}
		return
	}
	// hyphenated tokens abbreviate component by component
	for i, comp := range splitCompound(tok) {
		if i > 0 {
			sb.WriteByte('-')
		}
		prefix, closers := abbrevPrefix(comp)
		sb.WriteString(prefix)
		for ; closers > 0; closers-- {
			sb.WriteByte('}')
		}
		if !(pf.SuppressSingleLetter && len(comp) == 1) {
			sb.WriteString(pf.PostToken)
		}
	}
}

// splitCompound splits a token on hyphens at brace level 0.
func splitCompound(tok string) []string {
	var out []string
	level := 0
	start := 0
	for i := 0; i < len(tok); i++ {
		switch tok[i] {
		case '{':
			level++
		case '}':
			if level > 0 {
				level--
			}
		case '-':
			if level == 0 {
				out = append(out, tok[start:i])
				start = i + 1
			}
		}
	}
	return append(out, tok[start:])
}

// abbrevPrefix returns the prefix of comp up to and including its
// significant character (the same rules that classify token case) and
// the number of closing braces the caller must append to restore
// balance. A component with no significant letter is returned whole.
func abbrevPrefix(comp string) (string, int) {
	level := 0
	i := 0
	for i < len(comp) {
		switch ch := comp[i]; {
		case ch == '{' && level == 0 && i+1 < len(comp) && comp[i+1] == '\\':
			j := i + 2
			for j < len(comp) && isLetter(comp[j]) {
				j++
			}
			if j == i+2 && j < len(comp) {
				j++ // single-character control sequence
			}
			d := 1
			for j < len(comp) && d > 0 {
				switch comp[j] {
				case '{':
					d++
				case '}':
					d--
				default:
					if isLetter(comp[j]) {
						return comp[:j+1], d
					}
				}
				j++
			}
			i = j
		case ch == '{':
			level++
			i++
		case ch == '}':
			if level > 0 {
				level--
			}
			i++
		case level == 0 && isLetter(ch):
			return comp[:i+1], 0
		default:
			i++
		}
	}
	return comp, 0
}
