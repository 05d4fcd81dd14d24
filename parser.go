package bibsin

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Options configures a parsing session.
type Options struct {
	// Process selects post-processing; zero means ProcessDefault.
	Process ProcessOpts
	// Warn receives notices, warnings, and errors; nil means count
	// only.
	Warn WarnFunc
}

// Session owns the macro table and the warning counter. A session is a
// single-goroutine value; serialize access externally if needed.
type Session struct {
	opts     Options
	process  ProcessOpts
	macros   map[string]string
	warnings int
}

func NewSession(opts Options) *Session {
	process := opts.Process
	if process == 0 {
		process = ProcessDefault
	}
	return &Session{
		opts:    opts,
		process: process,
		macros:  make(map[string]string),
	}
}

// WarningCount returns the number of problems of severity Warn or
// higher reported so far.
func (s *Session) WarningCount() int { return s.warnings }

// std is the implicit session behind the package-level name functions.
var (
	std     *Session
	stdOnce sync.Once
)

func stdSession() *Session {
	stdOnce.Do(func() { std = NewSession(Options{}) })
	return std
}

// Parse parses a bibtex file provided as io.Reader or a name of a
// file, using a fresh session. Records cut short by syntax errors are
// reported through opts.Warn and dropped.
func Parse(r io.Reader, fileName string, opts Options) (*File, error) {
	return NewSession(opts).Parse(r, fileName)
}

// Parse parses all entries of one input; see Entries for one entry at
// a time.
func (s *Session) Parse(r io.Reader, fileName string) (*File, error) {
	er, err := s.Entries(r, fileName)
	if err != nil {
		return nil, err
	}
	root := newRoot(fileName)
	for {
		rec, err := er.Next()
		if err == io.EOF {
			return root, nil
		}
		if err != nil {
			continue // recovered; reported through the sink
		}
		root.AddRecord(rec)
	}
}

// Entries returns an iterator over the entries of one input. If r is
// nil the named file is opened and read.
func (s *Session) Entries(r io.Reader, fileName string) (*EntryReader, error) {
	if r == nil {
		if fileName == "" {
			return nil, fmt.Errorf("nothing to parse")
		}
		f, err := os.Open(fileName)
		if err != nil {
			return nil, fmt.Errorf("can't process file %s: %w", fileName, err)
		}
		defer f.Close()
		r = f
	}
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("can't read %s: %w", fileName, err)
	}
	return &EntryReader{p: newParser(src, fileName, s)}, nil
}

// EntryReader yields parsed entries one at a time.
type EntryReader struct {
	p *parser
}

// Next returns the next entry. At end of input it returns (nil,
// io.EOF). A recoverable syntax error returns the partial entry with
// its Bad flag set (nil when no entry type could be read) and a non-nil
// *Error; parsing may continue with the following entry.
func (er *EntryReader) Next() (*Record, error) {
	return er.p.next()
}

type parser struct {
	lex      *lexer
	tok      token // one-token lookahead
	fileName string
	s        *Session
}

func newParser(src []byte, fileName string, s *Session) *parser {
	return &parser{
		lex:      newLexer(src),
		fileName: fileName,
		s:        s,
	}
}

func (p *parser) advance(ctx lexCtx) {
	p.lex.ctx = ctx
	p.tok = p.lex.next()
}

// fail reports a syntax error, recovers to the next entry, and returns
// the partial record marked bad.
func (p *parser) fail(rec *Record, line int, format string, args ...any) (*Record, error) {
	p.s.warnf(SyntaxError, p.fileName, line, format, args...)
	p.lex.recover()
	if rec != nil {
		rec.bad = true
	}
	return rec, &Error{Sev: SyntaxError, File: p.fileName, Line: line,
		Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) next() (*Record, error) {
	p.advance(ctxTop) // scans junk up to @ or end of input
	if p.tok.kind == tokEOF {
		return nil, io.EOF
	}
	// at @
	startLine := p.tok.line
	p.advance(ctxEntry)
	if p.tok.kind != tokIdent {
		return p.fail(nil, p.tok.line, "expected entry type after @, found %s", p.tok.kind)
	}
	typ := foldASCII(p.tok.text)
	rec := &Record{typ: typ, meta: metatypeOf(typ), line: startLine}

	p.advance(ctxEntry)
	var open byte
	var closer tokenKind
	switch p.tok.kind {
	case tokLBrace:
		open, closer = '{', tokRBrace
	case tokLParen:
		open, closer = '(', tokRParen
	default:
		return p.fail(rec, p.tok.line, "expected { or ( after @%s, found %s", typ, p.tok.kind)
	}

	switch rec.meta {
	case Comment:
		text, ok := p.lex.scanBody(open)
		rec.body = &Value{parts: []SimpleValue{{Kind: StringLit, Text: text, Delim: open}}, line: startLine}
		if !ok {
			return p.fail(rec, startLine, "@comment not terminated")
		}
	case Preamble:
		val, err := p.parseValue(rec)
		if err != nil {
			return rec, err
		}
		rec.body = val
		if p.tok.kind != closer {
			return p.fail(rec, p.tok.line, "expected %s to close @preamble, found %s", closer, p.tok.kind)
		}
	case MacroDef:
		if rec2, err := p.parseFields(rec, closer); err != nil {
			return rec2, err
		}
	default:
		p.advance(ctxValue) // keys may be identifiers, numbers, or braced
		switch p.tok.kind {
		case tokIdent, tokNumber, tokString:
			rec.key = p.tok.text
			p.advance(ctxEntry)
		case tokComma:
			// tolerated so FixKeys can repair the record later
			p.s.warnf(Warn, p.fileName, p.tok.line, "missing citation key in @%s", typ)
		default:
			return p.fail(rec, p.tok.line, "expected citation key, found %s", p.tok.kind)
		}
		if p.tok.kind == closer { // key-only record
			break
		}
		if p.tok.kind != tokComma {
			return p.fail(rec, p.tok.line, "expected , after citation key, found %s", p.tok.kind)
		}
		if rec2, err := p.parseFields(rec, closer); err != nil {
			return rec2, err
		}
	}
	p.lex.ctx = ctxTop
	p.s.processRecord(rec, p.fileName)
	return rec, nil
}

// parseFields parses field (',' field)* [','] up to closer. On entry
// the lookahead is the comma after the key (regular entries) or the
// body opener (macro definitions).
func (p *parser) parseFields(rec *Record, closer tokenKind) (*Record, error) {
	for {
		p.advance(ctxEntry)
		if p.tok.kind == closer { // trailing comma before the delimiter
			return rec, nil
		}
		if p.tok.kind != tokIdent {
			return p.fail(rec, p.tok.line, "expected field name, found %s", p.tok.kind)
		}
		name := foldASCII(p.tok.text)
		line := p.tok.line
		p.advance(ctxEntry)
		if p.tok.kind != tokEquals {
			return p.fail(rec, p.tok.line, "expected = after field %s, found %s", name, p.tok.kind)
		}
		val, err := p.parseValue(rec)
		if err != nil {
			return rec, err
		}
		rec.addField(&Field{key: name, val: val, line: line})
		switch p.tok.kind {
		case closer:
			return rec, nil
		case tokComma:
			// next field or trailing comma
		default:
			return p.fail(rec, p.tok.line, "expected , or %s after value of %s, found %s", closer, name, p.tok.kind)
		}
	}
}

// parseValue parses simple-value ('#' simple-value)* and leaves the
// token after the series in the lookahead.
func (p *parser) parseValue(rec *Record) (*Value, error) {
	val := &Value{}
	for {
		p.advance(ctxValue)
		sv := SimpleValue{}
		switch p.tok.kind {
		case tokString:
			sv = SimpleValue{Kind: StringLit, Text: p.tok.text, Delim: p.tok.delim}
		case tokNumber:
			sv = SimpleValue{Kind: NumberLit, Text: p.tok.text}
		case tokIdent:
			sv = SimpleValue{Kind: MacroRef, Text: p.tok.text}
		case tokError:
			_, err := p.fail(rec, p.tok.line, "unterminated string")
			return val, err
		default:
			_, err := p.fail(rec, p.tok.line, "expected a value, found %s", p.tok.kind)
			return val, err
		}
		if val.line == 0 {
			val.line = p.tok.line
		}
		val.parts = append(val.parts, sv)
		p.advance(ctxEntry)
		if p.tok.kind != tokHash {
			return val, nil
		}
	}
}
