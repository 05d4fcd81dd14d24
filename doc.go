package bibsin

// Package bibsin parses bibtex files, expands @string macros, splits
// and formats author names, and performs sorting and deduplication
// operations on biblio records.

// BNF
// Database     ::= (Junk '@' Entry)*
// Entry        ::= Record
//               |  Comment
//               |  String
//               |  Preamble
// Comment      ::= "comment" ( '{' .* '}' | '(' .* ')' )   -- body kept verbatim
// String       ::= "string" Body                            -- macro definition(s)
// Preamble     ::= "preamble" ( '{' Value '}' | '(' Value ')' )
// Record       ::= Type '{' Key [',' [Fields]] '}'
//               |  Type '(' Key [',' [Fields]] ')'
// Body         ::= '{' Fields '}' | '(' Fields ')'
// Fields       ::= Field (',' Field)* [',']
// Type         ::= Name
// Key          ::= Name | [0-9]+ | '{' .* '}'
// Field        ::= Name '=' Value
// Name         ::= [A-Za-z][A-Za-z0-9_:+-./']*
// Value        ::= Simple ('#' Simple)*
// Simple       ::= [0-9]+
//               |  Name                                     -- macro reference
//               |  '"' .* '"'                               -- " literal inside braces
//               |  '{' .* '}'                               -- balanced
