package lexer_test

import (
	"testing"

	"github.com/Firice1269/Firic/pkg/lexer"
)

func texts(line lexer.Line) []string {
	out := make([]string, len(line.Tokens))
	for i, tok := range line.Tokens {
		out[i] = tok.Text
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTokenizeSplitsLinesAndTokens(t *testing.T) {
	lines := lexer.Tokenize("var x 5\n\nprint x + 1")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if got := texts(lines[0]); !equalStrings(got, []string{"var", "x", "5"}) {
		t.Fatalf("line 1 tokens = %v", got)
	}
	if len(lines[1].Tokens) != 0 {
		t.Fatalf("blank line should have no tokens, got %v", lines[1])
	}
	if got := texts(lines[2]); !equalStrings(got, []string{"print", "x", "+", "1"}) {
		t.Fatalf("line 3 tokens = %v", got)
	}
	for i, line := range lines {
		if line.Number != i+1 {
			t.Fatalf("line %d numbered %d", i+1, line.Number)
		}
	}
}

func TestTokenizeKeepsQuotedSpans(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []string
	}{
		{name: "double", src: `print "hello world"`, want: []string{"print", `"hello world"`}},
		{name: "single", src: `print 'a b c'`, want: []string{"print", "'a b c'"}},
		{name: "mixed quote kinds pair by count", src: "print x\"a b'", want: []string{"print", "x\"a b'"}},
		{name: "two strings", src: `print "a b" + 'c d'`, want: []string{"print", `"a b"`, "+", "'c d'"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lines := lexer.Tokenize(tc.src)
			if got := texts(lines[0]); !equalStrings(got, tc.want) {
				t.Fatalf("tokens = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTokenizeDropsUnclassifiedText(t *testing.T) {
	lines := lexer.Tokenize("print  Hello (1 2)")
	if got := texts(lines[0]); !equalStrings(got, []string{"print", "2)"}) {
		t.Fatalf("tokens = %v", got)
	}
}

func TestTokenizeStripsCarriageReturns(t *testing.T) {
	lines := lexer.Tokenize("print 1\r\nprint 2\r\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if got := texts(lines[0]); !equalStrings(got, []string{"print", "1"}) {
		t.Fatalf("tokens = %v", got)
	}
}

func TestClassifyIsInclusive(t *testing.T) {
	cases := []struct {
		text string
		want []lexer.Kind
	}{
		{text: "print", want: []lexer.Kind{lexer.KindKeyword}},
		{text: "x1", want: []lexer.Kind{lexer.KindKeyword}},
		{text: "42", want: []lexer.Kind{lexer.KindNumber}},
		{text: "3.5", want: []lexer.Kind{lexer.KindNumber}},
		{text: ".", want: []lexer.Kind{lexer.KindKeyword, lexer.KindNumber}},
		{text: ".5", want: []lexer.Kind{lexer.KindKeyword, lexer.KindNumber}},
		{text: "**", want: []lexer.Kind{lexer.KindOperation}},
		{text: "=", want: []lexer.Kind{lexer.KindOperation}},
		{text: `"hi"`, want: []lexer.Kind{lexer.KindString}},
		{text: `'x'`, want: []lexer.Kind{lexer.KindString}},
		{text: `"`, want: []lexer.Kind{lexer.KindString}},
		{text: "Hello", want: nil},
		{text: "==", want: nil},
	}
	for _, tc := range cases {
		got := lexer.Classify(tc.text).Kinds()
		if len(got) != len(tc.want) {
			t.Fatalf("Classify(%q) = %v, want %v", tc.text, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("Classify(%q) = %v, want %v", tc.text, got, tc.want)
			}
		}
	}
}

func TestScannerResetRestartsNumbering(t *testing.T) {
	s := lexer.NewScanner("print 1\nprint 2")
	s.Next()
	s.Reset("var a 1")
	line, ok := s.Next()
	if !ok || line.Number != 1 {
		t.Fatalf("expected line 1 after reset, got %+v (ok=%v)", line, ok)
	}
	if _, ok := s.Next(); ok {
		t.Fatalf("expected scanner to be exhausted")
	}
}

func TestKindSetString(t *testing.T) {
	set := lexer.Classify(".")
	if got := set.String(); got != "keyword|number" {
		t.Fatalf("String() = %q", got)
	}
	if got := lexer.KindSet(0).String(); got != "none" {
		t.Fatalf("empty String() = %q", got)
	}
}
