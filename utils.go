package bibsin

import (
	"unsafe"
)

func lower(ch byte) byte { return ('a' - 'A') | ch } // returns lower-case ch iff ch is ASCII letter

func isUpper(ch byte) bool  { return 'A' <= ch && ch <= 'Z' }
func isLower(ch byte) bool  { return 'a' <= ch && ch <= 'z' }
func isLetter(ch byte) bool { return isLower(ch) || isUpper(ch) }
func isDigit(ch byte) bool  { return '0' <= ch && ch <= '9' }

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// isNameChar reports whether ch may appear in an identifier after the
// first character.
func isNameChar(ch byte) bool {
	switch {
	case isLetter(ch) || isDigit(ch):
		return true
	case ch == '_' || ch == ':' || ch == '+' || ch == '-' || ch == '.' || ch == '/' || ch == '\'':
		return true
	}
	return false
}

func ByteSlice2String(bs []byte) string {
	if len(bs) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(bs), len(bs))
}

// foldASCII lower-cases ASCII letters only; locale-sensitive library
// routines are deliberately not used.
func foldASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if isUpper(s[i]) {
			b := []byte(s)
			for ; i < len(b); i++ {
				if isUpper(b[i]) {
					b[i] = lower(b[i])
				}
			}
			return ByteSlice2String(b)
		}
	}
	return s
}

// foldEqualBytes compares b against an already lower-cased needle.
func foldEqualBytes(b []byte, needle string) bool {
	if len(b) != len(needle) {
		return false
	}
	for i := 0; i < len(b); i++ {
		ch := b[i]
		if isUpper(ch) {
			ch = lower(ch)
		}
		if ch != needle[i] {
			return false
		}
	}
	return true
}

func isASCIIAlphaNumeric(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || '0' <= ch && ch <= '9'
}

func onlyASCIAlphaNumeric(s string) string {
	b := make([]byte, len(s))
	i := 0
	for j := 0; j < len(s); j++ {
		ch := lower(s[j])
		if isASCIIAlphaNumeric(ch) {
			b[i] = ch
			i++
		}
	}
	return ByteSlice2String(b[:i])
}

// collapseSpace trims leading and trailing whitespace and collapses
// every internal run of whitespace to a single space.
func collapseSpace(s string) string {
	b := make([]byte, 0, len(s))
	inRun := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if isSpace(ch) {
			inRun = true
			continue
		}
		if inRun && len(b) > 0 {
			b = append(b, ' ')
		}
		inRun = false
		b = append(b, ch)
	}
	return ByteSlice2String(b)
}
