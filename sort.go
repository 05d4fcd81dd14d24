package bibsin

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	Missing = 1<<32 - 1
)

// Sort orders the records of f by a comma-separated list of fields;
// a leading - sorts that field descending. "type" and "citekey" refer
// to the record type and citation key; any other name is a field
// looked up in each record. Fields whose values parse as integers
// compare numerically; missing values compare as a large sentinel.
func Sort(root *File, flds string) error {
	if root == nil || len(root.Records) == 0 {
		return fmt.Errorf("nothing to sort")
	}
	keys := strings.Split(flds, ",")
	for i := range keys {
		keys[i] = strings.TrimSpace(keys[i])
		if keys[i] == "" || keys[i] == "-" {
			return fmt.Errorf("invalid sort field %q", keys[i])
		}
	}
	recs := root.Records
	sort.SliceStable(recs, func(i, j int) bool {
		for _, key := range keys {
			desc := false
			if key[0] == '-' {
				desc = true
				key = key[1:]
			}
			vi, vj := sortValue(recs[i], key), sortValue(recs[j], key)
			ni, erri := strconv.Atoi(vi)
			nj, errj := strconv.Atoi(vj)
			if erri == nil || errj == nil {
				if erri != nil {
					ni = Missing
				}
				if errj != nil {
					nj = Missing
				}
				if ni != nj {
					if desc {
						return ni > nj
					}
					return ni < nj
				}
				continue
			}
			if vi != vj {
				if desc {
					return vi > vj
				}
				return vi < vj
			}
		}
		return false
	})
	return nil
}

func sortValue(rec *Record, key string) string {
	switch key {
	case "type":
		return rec.Type()
	case "citekey":
		return rec.Key()
	}
	return rec.Field(key)
}
