package bibsin

import "strconv"

type tokenKind int8

const (
	tokError tokenKind = iota // broken lexeme; parsing recovers past it
	tokEOF
	tokAt     // @
	tokIdent  // article, author, jan
	tokNumber // 1995
	tokString // "..." or {...}; delim records which
	tokHash   // #
	tokEquals // =
	tokComma  // ,
	tokLBrace // { opening an entry body
	tokRBrace // }
	tokLParen // ( opening an entry body
	tokRParen // )
)

var tokenNames = [...]string{
	tokError:  "error",
	tokEOF:    "eof",
	tokAt:     "@",
	tokIdent:  "identifier",
	tokNumber: "number",
	tokString: "string",
	tokHash:   "#",
	tokEquals: "=",
	tokComma:  ",",
	tokLBrace: "{",
	tokRBrace: "}",
	tokLParen: "(",
	tokRParen: ")",
}

func (k tokenKind) String() string {
	if 0 <= k && int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return "token(" + strconv.Itoa(int(k)) + ")"
}

// token is the unit handed from the lexer to the parser. text carries
// the literal contents for identifiers, numbers, and strings; delim is
// '"' or '{' for strings so the parser can preserve the source form.
type token struct {
	kind  tokenKind
	text  string
	delim byte
	line  int
}
