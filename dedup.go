package bibsin

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"
)

type SetActionType int8

const (
	SetNoAction SetActionType = iota
	// SetIntersect finds records common to one or more sets and
	// returns the record that belongs to the first set
	// if one file, SetIntersect results in a set that includes the first record
	SetIntersect
	SetUnion
	SetConcat
)

type NodeInfo struct {
	Node   *Record
	Parent *File
}

type DedupMap = map[string][]NodeInfo

type DedupReport struct {
	DuplicateSetCount int
	DuplicateSet      DedupMap
	ResultSetCount    int
}

func (dr *DedupReport) Print(w io.Writer) (err error) {
	if dr == nil || dr.DuplicateSetCount == 0 {
		return nil
	}
	fmt.Fprintf(w, "%d duplicate sets found\n", dr.DuplicateSetCount)
	for idxTerm, nodes := range dr.DuplicateSet {
		if ndup := len(nodes); ndup > 1 {
			_, err = fmt.Fprintf(w, "%s\n[%s] has %d occurrences in lines \n", strings.Repeat("*", 60), idxTerm, ndup)
			for _, n := range nodes {
				// write filename: line
				_, err = fmt.Fprintf(w, "%s:%d\n", n.Parent.Name(), n.Node.Line())
				err = Print(w, n.Node)
			}
		}
	}
	if err != nil {
		fmt.Printf("%d records processed\n", dr.ResultSetCount)
	}
	return err
}

func (dr DedupReport) String() string {
	var b = new(bytes.Buffer)
	if err := dr.Print(b); err != nil {
		b.WriteString("error: " + err.Error())
	}
	return b.String()
}

// indexEntry returns a string concating values of fields
func indexEntry(rec *Record, fldNames []string, raw bool) string {
	var sb strings.Builder
	for _, fldname := range fldNames {
		sb.WriteString(rec.Field(fldname))
	}
	if raw {
		return sb.String()
	}
	return onlyASCIAlphaNumeric(sb.String())
}

// Deduplicate performs various set operations on one or more ref sets
// using the concatinated values of field names. If no fields specified,
// citekey is used to deduplicate the set.
// if no error encountered, it returns a DedupReport struct if action== SetNoAction
// and additionally a set of processed refs if action != SetNoAction
func Deduplicate(files []*File, fldNames []string, action SetActionType) (*File, *DedupReport, error) {
	if len(files) == 0 || len(files)*files[0].RecordCount() == 0 {
		return nil, nil, fmt.Errorf("nothing to deduplicate")
	}
	hasFields := len(fldNames) > 0
	citekey := !hasFields || slices.Contains(fldNames, "citekey")
	dupSet := make(DedupMap, files[0].RecordCount()*len(files))
	for _, r := range files {
		for _, c := range r.Records {
			if c.Meta() != Regular {
				continue
			}
			idx := ""
			if hasFields {
				idx = indexEntry(c, fldNames, false)
			}
			if citekey {
				idx = idx + c.Key()
			}
			dupSet[idx] = append(dupSet[idx], NodeInfo{c, r})
		}
	}
	duplicateSets := 0
	for _, nodes := range dupSet {
		if len(nodes) > 1 {
			duplicateSets++
		}
	}
	dr := &DedupReport{DuplicateSetCount: duplicateSets, DuplicateSet: dupSet}
	if action == SetNoAction {
		return nil, dr, nil
	}
	if action == SetIntersect {
		if duplicateSets == 0 {
			return nil, nil, fmt.Errorf("no common records")
		}
		res := newRoot("intersection.bib")
		for _, recs := range dupSet {
			if ndup := len(recs); ndup > 1 { //duplicates
				res.AddRecord(recs[0].Node) //print the first in the set
				dr.ResultSetCount++
			}
		}
		return res, dr, nil
	}
	if action == SetUnion {
		res := newRoot("union.bib")
		for _, recs := range dupSet {
			res.AddRecord(recs[0].Node)
			dr.ResultSetCount++
		}
		return res, dr, nil
	}
	return nil, nil, fmt.Errorf("invalid set action")
}

// ValidKeys checks if all records have citekeys and all are unique
func ValidKeys(n *File) bool {
	for _, rec := range n.Records {
		if rec.Meta() == Regular && rec.Key() == "" {
			return false
		}
	}
	_, dr, err := Deduplicate([]*File{n}, []string{}, SetNoAction)
	if err != nil {
		return true // only error is nothing to deduplicate
	}
	return dr.DuplicateSetCount == 0
}

// NewCiteKey generates a new key using the last name of the first
// author + pub year + first word of the title + first letter of the
// record type + pages + volume. The author field is split with the
// name splitter, so "Michel Goossens and ..." and "Goossens, Michel
// and ..." key the same.
func NewCiteKey(rec *Record) string {
	var sb strings.Builder
	word := ""
	authors := SplitList(rec.Field("author"), "and", "", rec.Line(), "author")
	if authors.Len() > 0 && !authors.Null(0) {
		name := SplitName(authors.At(0), "", rec.Line(), 1)
		if last := name.Part(LastPart); len(last) > 0 {
			word = last[0]
		}
	}
	sb.WriteString(strings.ToLower(word))
	sb.WriteString(rec.Field("year"))
	word, _, _ = strings.Cut(rec.Field("title"), " ")
	sb.WriteString(strings.ToLower(word))
	b := byte('x')
	if rec.typ != "" {
		b = rec.typ[0]
	}
	sb.WriteByte(b)
	sb.WriteString(rec.Field("pages") + rec.Field("volume"))
	return sb.String()
}

// FixKeys ensures that every record has a unique key
// contents of fldnames will be used to create a unique key
// with a,b,c etc added to ensure uniqueness; if len(fldnames)== 0
// standard algorithm to create new citekeys. if all is true
// all keys are replaced not just duplicate records
func FixKeys(f *File, fldnames []string, all bool) (*DedupReport, error) {
	useStd := len(fldnames) == 0
	for _, rec := range f.Records {
		if rec.meta != Regular {
			continue // non-regular entries carry no citation key
		}
		if all || rec.key == "" {
			if useStd {
				rec.key = NewCiteKey(rec)
			} else {
				rec.key = indexEntry(rec, fldnames, false)
			}
		}
	}
	// dedup in terms of citekey
	_, dr, err := Deduplicate([]*File{f}, []string{}, SetNoAction)
	if err != nil {
		return nil, err
	}
	if dr.DuplicateSetCount == 0 {
		return nil, nil
	}
	for _, nodes := range dr.DuplicateSet {
		if ndup := len(nodes); ndup > 1 {
			for i := 1; i < ndup; i++ {
				nodes[i].Node.key = nodes[i].Node.key + string(rune(64+i)) //add A,B,C etc
			}
		}
	}
	return dr, nil
}

// Split splits a set into a separate set for each citation type
func Split(f *File) map[string]*File {
	res := make(map[string]*File, 10)
	for _, rec := range f.Records {
		sub, ok := res[rec.Type()]
		if !ok {
			sub = newRoot(rec.Type())
			res[rec.Type()] = sub
		}
		sub.AddRecord(rec)
	}
	return res
}
