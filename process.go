package bibsin

import "strings"

// ProcessOpts selects the value transformations applied after parsing
// and which entry classes they apply to.
type ProcessOpts uint8

const (
	// Expand replaces macro references by their text and performs
	// concatenation; the value becomes a single string literal.
	Expand ProcessOpts = 1 << iota
	// Paste concatenates adjacent string literals. Meaningful on its
	// own only when no macros are present; combine with Expand
	// otherwise.
	Paste
	// Collapse squeezes whitespace runs inside strings to a single
	// space and trims the ends.
	Collapse
	// Macro applies the transformations to @string definitions.
	Macro
	// FieldOpt applies the transformations to regular-entry field values
	// and to @preamble values.
	FieldOpt
	// NoStoreMacros parses and post-processes @string entries without
	// installing them in the session macro table. Warnings raised while
	// expanding the definition are still emitted.
	NoStoreMacros
	// Raw suppresses all post-processing during parsing.
	Raw
)

// ProcessDefault is used when Options.Process is zero.
const ProcessDefault = Expand | Paste | Collapse | Macro | FieldOpt

// ProcessValue applies the transformations selected by opts to v and
// returns the resulting text. With replace set, v itself is rewritten;
// with Expand the result is a single string-literal simple value.
// Nonsensical combinations (Collapse without Expand while macros are
// present) are accepted and transform what they can.
func (s *Session) ProcessValue(v *Value, opts ProcessOpts, replace bool) string {
	return s.processValue(v, opts, replace, "")
}

func (s *Session) processValue(v *Value, opts ProcessOpts, replace bool, file string) string {
	if v == nil {
		return ""
	}
	parts := v.parts
	if opts&Expand != 0 {
		var sb strings.Builder
		for _, p := range parts {
			switch p.Kind {
			case MacroRef:
				if text, ok := s.macros[foldASCII(p.Text)]; ok {
					sb.WriteString(text)
				} else {
					s.warnf(Warn, file, v.line, "undefined macro %q", p.Text)
				}
			default:
				sb.WriteString(p.Text)
			}
		}
		text := sb.String()
		if opts&Collapse != 0 {
			text = collapseSpace(text)
		}
		if replace {
			v.parts = []SimpleValue{{Kind: StringLit, Text: text, Delim: '{'}}
		}
		return text
	}
	// no expansion: paste what is pasteable, collapse inside literals
	out := make([]SimpleValue, 0, len(parts))
	for _, p := range parts {
		if opts&Collapse != 0 && p.Kind == StringLit {
			p.Text = collapseSpace(p.Text)
		}
		if opts&Paste != 0 && p.Kind == StringLit && len(out) > 0 && out[len(out)-1].Kind == StringLit {
			out[len(out)-1].Text += p.Text
			continue
		}
		out = append(out, p)
	}
	if replace {
		v.parts = out
	}
	var sb strings.Builder
	for _, p := range out {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// processRecord applies the session's option set to a freshly parsed
// entry. Macro definitions are always expanded and pasted (never
// collapsed) before installation, as the table stores finished text.
func (s *Session) processRecord(rec *Record, file string) {
	opts := s.process
	if opts&Raw != 0 {
		return
	}
	switch rec.meta {
	case Comment:
		// verbatim
	case MacroDef:
		if opts&Macro == 0 {
			return
		}
		for _, fld := range rec.fields {
			s.processValue(fld.val, Expand|Paste, true, file)
			if opts&NoStoreMacros == 0 {
				s.AddMacro(fld, file, Expand|Paste)
			}
		}
	case Preamble:
		if opts&FieldOpt != 0 {
			s.processValue(rec.body, opts&(Expand|Paste|Collapse), true, file)
		}
	default:
		if opts&FieldOpt == 0 {
			return
		}
		for _, fld := range rec.fields {
			s.processValue(fld.val, opts&(Expand|Paste|Collapse), true, file)
		}
	}
}
