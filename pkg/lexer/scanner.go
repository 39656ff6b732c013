package lexer

import "strings"

const delimiter = ' '

// Scanner splits Firic source into tokenized lines, one physical line per call
// to Next.
type Scanner struct {
	source string
	cursor int
	line   int
}

// NewScanner creates a scanner positioned at the first line of source.
func NewScanner(source string) *Scanner {
	return &Scanner{source: source}
}

// Reset re-initializes the scanner with new source.
func (s *Scanner) Reset(source string) {
	s.source = source
	s.cursor = 0
	s.line = 0
}

// Next returns the next line. The boolean is false once every line has been
// returned. A source of n newline characters yields n+1 lines, matching a
// plain split on "\n".
func (s *Scanner) Next() (Line, bool) {
	if s.cursor > len(s.source) {
		return Line{}, false
	}
	rest := s.source[s.cursor:]
	raw := rest
	if idx := strings.IndexByte(rest, '\n'); idx >= 0 {
		raw = rest[:idx]
		s.cursor += idx + 1
	} else {
		s.cursor = len(s.source) + 1
	}
	s.line++
	raw = strings.TrimSuffix(raw, "\r")
	return Line{Number: s.line, Tokens: classifyAll(split(raw))}, true
}

// Tokenize splits the full source into lines of classified tokens.
func Tokenize(source string) []Line {
	s := NewScanner(source)
	var lines []Line
	for {
		line, ok := s.Next()
		if !ok {
			return lines
		}
		lines = append(lines, line)
	}
}

// split breaks a line on the blank-space delimiter. Both quote characters feed
// one parity counter, and while it is odd the delimiter does not split, so
// mismatched quote kinds still pair up by count.
func split(line string) []string {
	var (
		parts  []string
		quotes int
		b      strings.Builder
	)
	for _, r := range line {
		if r == '"' || r == '\'' {
			quotes++
		}
		inString := quotes%2 == 1
		if r == delimiter && !inString {
			parts = append(parts, b.String())
			b.Reset()
			continue
		}
		b.WriteRune(r)
	}
	if b.Len() > 0 {
		parts = append(parts, b.String())
	}
	return parts
}

func classifyAll(parts []string) []Token {
	tokens := make([]Token, 0, len(parts))
	for _, text := range parts {
		kinds := Classify(text)
		if kinds.Empty() {
			continue
		}
		tokens = append(tokens, Token{Kinds: kinds, Text: text})
	}
	return tokens
}

// Classify returns every classification matching text. Keyword and number
// patterns only look at the leading run of characters, so "x1" is a keyword
// and "5)" is a number.
func Classify(text string) KindSet {
	var kinds KindSet
	if text == "" {
		return kinds
	}
	first, last := text[0], text[len(text)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
		kinds = kinds.With(KindString)
	}
	if first == '.' || (first >= 'a' && first <= 'z') {
		kinds = kinds.With(KindKeyword)
	}
	if IsOperation(text) {
		kinds = kinds.With(KindOperation)
	}
	if first == '.' || isDigit(first) {
		kinds = kinds.With(KindNumber)
	}
	return kinds
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
