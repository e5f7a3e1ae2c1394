package css

import (
	"fmt"
	"reflect"
	"testing"
)

// tok is a trimmed-down view of Token used for table-driven comparison,
// following the teacher's scanner_test.go pattern of a small local
// mirror type with its own String() for readable failure diffs.
type tok struct {
	kind TokenKind
	src  string
	val  string
	unit string
	rs   uint32
	re   uint32
}

func (t tok) String() string {
	switch {
	case t.unit != "":
		return fmt.Sprintf("{%s %q unit=%q}", t.kind, t.src, t.unit)
	case t.rs != 0 || t.re != 0:
		return fmt.Sprintf("{%s 0x%x-0x%x}", t.kind, t.rs, t.re)
	case t.val != "":
		return fmt.Sprintf("{%s %q val=%q}", t.kind, t.src, t.val)
	default:
		return fmt.Sprintf("{%s %q}", t.kind, t.src)
	}
}

func tokenize(t *testing.T, src string) []tok {
	t.Helper()
	var errs []string
	tz := NewTokenizer(src, &errs)
	var got []tok
	for {
		token := tz.Next()
		if token.Kind == TokenEOF {
			break
		}
		got = append(got, tok{
			kind: token.Kind,
			src:  token.Source,
			val:  token.Value,
			unit: token.Unit,
			rs:   token.RangeStart,
			re:   token.RangeEnd,
		})
	}
	return got
}

func TestTokenizerBasicRule(t *testing.T) {
	got := tokenize(t, `Button { background: red; }`)
	want := []tok{
		{kind: TokenIdent, src: "Button", val: "Button"},
		{kind: TokenWhitespace, src: " "},
		{kind: TokenLeftBrace, src: "{"},
		{kind: TokenWhitespace, src: " "},
		{kind: TokenIdent, src: "background", val: "background"},
		{kind: TokenColon, src: ":"},
		{kind: TokenWhitespace, src: " "},
		{kind: TokenIdent, src: "red", val: "red"},
		{kind: TokenSemicolon, src: ";"},
		{kind: TokenWhitespace, src: " "},
		{kind: TokenRightBrace, src: "}"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got:\n%v\nwant:\n%v", got, want)
	}
}

func TestTokenizerImportURL(t *testing.T) {
	got := tokenize(t, `@import url(~/app.css); Button { color: orange; }`)
	want := []tok{
		{kind: TokenAtKeyword, src: "@import", val: "import"},
		{kind: TokenWhitespace, src: " "},
		{kind: TokenURL, src: "url(~/app.css)", val: "~/app.css"},
		{kind: TokenSemicolon, src: ";"},
		{kind: TokenWhitespace, src: " "},
		{kind: TokenIdent, src: "Button", val: "Button"},
		{kind: TokenWhitespace, src: " "},
		{kind: TokenLeftBrace, src: "{"},
		{kind: TokenWhitespace, src: " "},
		{kind: TokenIdent, src: "color", val: "color"},
		{kind: TokenColon, src: ":"},
		{kind: TokenWhitespace, src: " "},
		{kind: TokenIdent, src: "orange", val: "orange"},
		{kind: TokenSemicolon, src: ";"},
		{kind: TokenWhitespace, src: " "},
		{kind: TokenRightBrace, src: "}"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got:\n%v\nwant:\n%v", got, want)
	}
}

func TestTokenizerNumericForms(t *testing.T) {
	var errs []string
	tz := NewTokenizer(`.0 100% 10em`, &errs)

	n := tz.Next()
	if n.Kind != TokenNumber || n.Source != ".0" {
		t.Fatalf("number: got %+v", n)
	}
	if got := n.Number(); got != 0 {
		t.Fatalf("Number() = %v, want 0", got)
	}

	tz.Next() // whitespace

	p := tz.Next()
	if p.Kind != TokenPercentage || p.Source != "100%" {
		t.Fatalf("percentage: got %+v", p)
	}
	if got := p.Number(); got != 100 {
		t.Fatalf("Number() = %v, want 100", got)
	}

	tz.Next() // whitespace

	d := tz.Next()
	if d.Kind != TokenDimension || d.Source != "10em" || d.Unit != "em" {
		t.Fatalf("dimension: got %+v", d)
	}
	if got := d.Number(); got != 10 {
		t.Fatalf("Number() = %v, want 10", got)
	}
}

func TestTokenizerUnicodeRange(t *testing.T) {
	got := tokenize(t, `U+0025-00FF, U+4??`)
	want := []tok{
		{kind: TokenUnicodeRange, src: "U+0025-00FF", rs: 0x25, re: 0xFF},
		{kind: TokenComma, src: ","},
		{kind: TokenWhitespace, src: " "},
		{kind: TokenUnicodeRange, src: "U+4??", rs: 0x400, re: 0x4FF},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got:\n%v\nwant:\n%v", got, want)
	}
}

func TestTokenizerEscape(t *testing.T) {
	got := tokenize(t, `\42utton { color: red; }`)
	if len(got) == 0 || got[0].kind != TokenIdent || got[0].val != "Button" {
		t.Fatalf("escaped ident: got %+v", got[0])
	}
}

func TestTokenizerHexEscapeOutOfRange(t *testing.T) {
	// \110000 is out of Unicode range (> utf8.MaxRune) and its escape
	// grammar consumes the one trailing space along with the six hex
	// digits, so name production continues straight into \0 (also
	// a zero code point, which also decodes to U+FFFD) as part of the
	// same Ident: two replacement chars.
	var errs []string
	tz := NewTokenizer(`\110000 \0 `, &errs)
	a := tz.Next()
	if a.Kind != TokenIdent || a.Value != "��" {
		t.Fatalf("out-of-range escape: got %+v", a)
	}
}

func TestTokenizerBadString(t *testing.T) {
	var errs []string
	tz := NewTokenizer("\"unterminated\nrest", &errs)
	s := tz.Next()
	if s.Kind != TokenString || s.Value != "unterminated" {
		t.Fatalf("bad string: got %+v", s)
	}
	if len(errs) == 0 {
		t.Fatal("expected a bad-string anomaly to be recorded")
	}
}

func TestTokenizerEscapeInUnquotedURLIsFatal(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic for an escape inside an unquoted url()")
		}
		if _, ok := r.(*Error); !ok {
			t.Fatalf("expected *Error, got %T: %v", r, r)
		}
	}()
	var errs []string
	tz := NewTokenizer(`url(\2F )`, &errs)
	tz.Next()
}

func TestTokenizerCDOCDC(t *testing.T) {
	got := tokenize(t, `<!-- -->`)
	want := []tok{
		{kind: TokenCDO, src: "<!--"},
		{kind: TokenWhitespace, src: " "},
		{kind: TokenCDC, src: "-->"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got:\n%v\nwant:\n%v", got, want)
	}
}

func TestTokenizerCommentsVanish(t *testing.T) {
	got := tokenize(t, `img /* not a real rule */ { }`)
	want := []tok{
		{kind: TokenIdent, src: "img", val: "img"},
		{kind: TokenWhitespace, src: " "},
		{kind: TokenWhitespace, src: " "},
		{kind: TokenLeftBrace, src: "{"},
		{kind: TokenWhitespace, src: " "},
		{kind: TokenRightBrace, src: "}"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got:\n%v\nwant:\n%v", got, want)
	}
}

func TestTokenizerReset(t *testing.T) {
	var errs []string
	tz := NewTokenizer("foo", &errs)
	tz.Next()
	tz.Reset("bar")
	n := tz.Next()
	if n.Kind != TokenIdent || n.Value != "bar" {
		t.Fatalf("after Reset: got %+v", n)
	}
}
