package bibsin

// The macro table lives on the Session: one table per parsing session,
// mutated by @string entries and by the calls below. Names are compared
// after ASCII case folding. Stored text is always fully expanded and
// pasted but never whitespace-collapsed, so a macro expanding to
// " and " keeps its surrounding spaces for later interpolation.

// AddMacroText defines or redefines a macro. Redefinition overwrites
// the old text and emits a warning; file and line position the warning.
func (s *Session) AddMacroText(name, text, file string, line int) {
	name = foldASCII(name)
	if _, ok := s.macros[name]; ok {
		s.warnf(Warn, file, line, "overriding existing definition of macro %q", name)
	}
	s.macros[name] = text
}

// AddMacro installs a @string assignment from the AST. The field's
// value must already be expanded and pasted under opts; callers that
// cannot guarantee this pass opts == 0 and the table post-processes
// the value itself before storing. Whitespace is never collapsed here.
func (s *Session) AddMacro(fld *Field, file string, opts ProcessOpts) {
	if opts&(Expand|Paste) != (Expand|Paste) {
		s.processValue(fld.val, Expand|Paste, true, file)
	}
	s.AddMacroText(fld.key, fld.val.Text(), file, fld.line)
}

// MacroText returns the expansion of name. An undefined macro warns at
// the given position and returns ("", false).
func (s *Session) MacroText(name, file string, line int) (string, bool) {
	text, ok := s.macros[foldASCII(name)]
	if !ok {
		s.warnf(Warn, file, line, "undefined macro %q", name)
		return "", false
	}
	return text, true
}

// MacroLength returns the length of the expansion of name, 0 if
// undefined.
func (s *Session) MacroLength(name string) int {
	return len(s.macros[foldASCII(name)])
}

func (s *Session) DeleteMacro(name string) {
	delete(s.macros, foldASCII(name))
}

func (s *Session) DeleteAllMacros() {
	clear(s.macros)
}
