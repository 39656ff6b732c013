package lexer

import (
	"fmt"
	"strings"
)

// Kind identifies one classification a token can carry.
type Kind uint8

const (
	KindString Kind = 1 << iota
	KindKeyword
	KindOperation
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindKeyword:
		return "keyword"
	case KindOperation:
		return "operation"
	case KindNumber:
		return "number"
	default:
		return "unknown"
	}
}

var allKinds = []Kind{KindString, KindKeyword, KindOperation, KindNumber}

// KindSet holds every classification that matched a token's text. Matching is
// inclusive, so a bare identifier such as "x" and a reserved word both carry
// KindKeyword, and "." carries both KindKeyword and KindNumber.
type KindSet uint8

// Has reports whether the set contains k.
func (s KindSet) Has(k Kind) bool {
	return s&KindSet(k) != 0
}

// With returns a copy of the set with k added.
func (s KindSet) With(k Kind) KindSet {
	return s | KindSet(k)
}

// Empty reports whether no classification matched.
func (s KindSet) Empty() bool {
	return s == 0
}

// Kinds lists the members in classification order.
func (s KindSet) Kinds() []Kind {
	var out []Kind
	for _, k := range allKinds {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

func (s KindSet) String() string {
	kinds := s.Kinds()
	if len(kinds) == 0 {
		return "none"
	}
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = k.String()
	}
	return strings.Join(parts, "|")
}

// Token is a classified unit of source text.
type Token struct {
	Kinds KindSet
	Text  string
}

func (t Token) String() string {
	return fmt.Sprintf("(%s, %q)", t.Kinds, t.Text)
}

// Line is the token sequence of one physical source line. Number is 1-based.
type Line struct {
	Number int
	Tokens []Token
}

// First returns the line's first token, if any.
func (l Line) First() (Token, bool) {
	if len(l.Tokens) == 0 {
		return Token{}, false
	}
	return l.Tokens[0], true
}

// At returns the token at index i, reporting false when i is out of range.
func (l Line) At(i int) (Token, bool) {
	if i < 0 || i >= len(l.Tokens) {
		return Token{}, false
	}
	return l.Tokens[i], true
}

func (l Line) String() string {
	parts := make([]string, len(l.Tokens))
	for i, tok := range l.Tokens {
		parts[i] = tok.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Reserved words of the language.
const (
	KeywordComment = "comment"
	KeywordEnd     = "end"
	KeywordFunc    = "func"
	KeywordPrint   = "print"
	KeywordVar     = "var"
)

// Keywords lists the reserved words in sorted order.
var Keywords = []string{KeywordComment, KeywordEnd, KeywordFunc, KeywordPrint, KeywordVar}

// Operations lists the operator tokens.
var Operations = []string{"**", "*", "/", "%", "+", "-", "=", "(", ")"}

// IsKeyword reports whether text is one of the reserved words.
func IsKeyword(text string) bool {
	for _, kw := range Keywords {
		if kw == text {
			return true
		}
	}
	return false
}

// IsOperation reports whether text is exactly one of the operators.
func IsOperation(text string) bool {
	for _, op := range Operations {
		if op == text {
			return true
		}
	}
	return false
}
