package bibsin

import (
	"fmt"
	"io"
	"strings"
)

type File struct {
	Records []*Record
	name    string
}

func (f *File) AddRecord(rec *Record) {
	f.Records = append(f.Records, rec)
}

func (f *File) RecordCount() int {
	return len(f.Records)
}

func (f *File) Name() string {
	return f.name
}

func newRoot(fileName string) *File {
	return &File{name: fileName}
}

// Metatype classifies an entry by its type after case folding:
// @comment, @preamble, and @string are special; everything else is a
// regular bibliographic record.
type Metatype int8

const (
	Regular Metatype = iota
	Comment
	Preamble
	MacroDef
)

func metatypeOf(typ string) Metatype {
	switch typ {
	case "comment":
		return Comment
	case "preamble":
		return Preamble
	case "string":
		return MacroDef
	}
	return Regular
}

type Record struct {
	fields []*Field
	key    string // citation key; empty for non-regular entries
	typ    string // bibtex type, case-folded
	meta   Metatype
	body   *Value // @preamble value or @comment text
	line   int
	bad    bool // set when entry-level recovery truncated this entry
}

func (rec *Record) Line() int { return rec.line }

func (rec *Record) Key() string { return rec.key }

func (rec *Record) Type() string { return rec.typ }

func (rec *Record) Meta() Metatype { return rec.meta }

// Bad reports whether the entry was cut short by a syntax error; bad
// records are never added to a File.
func (rec *Record) Bad() bool { return rec.bad }

// Body returns the value of a @preamble or the text of a @comment;
// nil for other entries.
func (rec *Record) Body() *Value { return rec.body }

func (rec *Record) Fields() []*Field { return rec.fields }

func (rec *Record) addField(f *Field) {
	rec.fields = append(rec.fields, f)
}

// Field returns the text of the named field or "" if absent. Usage on
// a non-regular entry returns "".
func (rec *Record) Field(fieldName string) string {
	if rec.meta != Regular {
		return ""
	}
	for _, fld := range rec.fields {
		if fld.key == fieldName {
			return fld.Text()
		}
	}
	return ""
}

func (rec *Record) BibtexRepr() string {
	return fmt.Sprintf("\n@%s{%s,\n", rec.typ, rec.key)
}

type Field struct {
	key  string // name of field, case-folded
	val  *Value
	line int
}

func (fld *Field) Line() int { return fld.line }

func (fld *Field) Key() string { return fld.key }

func (fld *Field) Value() *Value { return fld.val }

// Text returns the field value as text; see Value.Text.
func (fld *Field) Text() string { return fld.val.Text() }

func (fld *Field) BibtexRepr() string {
	return fmt.Sprintf("%s = %s", fld.key, fld.val.BibtexRepr())
}

// SimpleKind discriminates the members of a value series.
type SimpleKind int8

const (
	StringLit SimpleKind = iota
	NumberLit
	MacroRef
)

// SimpleValue is one member of a value series: a string literal (delim
// records whether it was quoted or braced in the source), a number kept
// as its digit string, or a reference to a macro by name.
type SimpleValue struct {
	Kind  SimpleKind
	Text  string
	Delim byte
}

// Value is a nonempty series of simple values joined by # in the
// source. Post-processing with Expand reduces it to a single string
// literal.
type Value struct {
	parts []SimpleValue
	line  int
}

func (v *Value) Line() int { return v.line }

func (v *Value) Parts() []SimpleValue { return v.parts }

// Text returns the concatenated text of the series. Macro references
// contribute their name; expand first if that is not wanted.
func (v *Value) Text() string {
	if len(v.parts) == 1 {
		return v.parts[0].Text
	}
	var sb strings.Builder
	for _, p := range v.parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

func (v *Value) BibtexRepr() string {
	var sb strings.Builder
	for i, p := range v.parts {
		if i > 0 {
			sb.WriteString(" # ")
		}
		switch p.Kind {
		case StringLit:
			if p.Delim == '"' && !strings.Contains(p.Text, "\"") {
				sb.WriteString("\"" + p.Text + "\"")
			} else {
				sb.WriteString("{" + p.Text + "}")
			}
		case NumberLit, MacroRef:
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}

func Print(w io.Writer, n any) error {
	switch n := n.(type) {
	case *File:
		for _, c := range n.Records {
			if err := Print(w, c); err != nil {
				return err
			}
		}
		return nil
	case *Record:
		if n.meta != Regular {
			return nil
		}
		fmt.Fprint(w, n.BibtexRepr())
		for i, c := range n.fields {
			Print(w, c)
			if i < len(n.fields)-1 {
				fmt.Fprintln(w, ",")
			} else {
				fmt.Fprintln(w)
			}
		}
		fmt.Fprintln(w, "}")
	case *Field:
		fmt.Fprintf(w, "    %s", n.BibtexRepr())
	default:
		return fmt.Errorf("unknown node type %T", n)
	}
	return nil
}
