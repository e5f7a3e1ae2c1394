package css

import "strings"

// ImportRule is the CssRule produced for an @import at-rule, per spec
// section 4.3. Media-query fragments trailing the URL/string in the
// prelude are kept verbatim inside Import rather than parsed out, a
// known simplification spec.md calls out explicitly.
type ImportRule struct {
	Import string

	Span Span
}

func (*ImportRule) cssRule() {}

// handleImportRule implements the @import handler. When the prelude's
// only significant component is a Url or String token (the common
// case: `@import url(...)`/`@import "...";` with no trailing media
// query), Import is that token's already-decoded Value rather than its
// raw Source, so `url(~/app.css)` yields `~/app.css`, matching spec
// section 8 scenario 2. Otherwise — a media-query fragment trails the
// URL/string — the whole prelude is stringified and trimmed verbatim,
// the known simplification spec.md calls out.
func handleImportRule(p *Parser, rule *AtRule) CssRule {
	if sig := significantComponents(rule.Prelude); len(sig) == 1 {
		if tok, ok := sig[0].(Token); ok && (tok.Kind == TokenURL || tok.Kind == TokenString) {
			return &ImportRule{Import: tok.Value, Span: rule.Span}
		}
	}
	return &ImportRule{
		Import: strings.TrimSpace(StringifyAll(rule.Prelude)),
		Span:   rule.Span,
	}
}

// significantComponents drops Whitespace tokens from values, used to
// detect whether a prelude is "just" a single Url/String token.
func significantComponents(values []ComponentValue) []ComponentValue {
	var out []ComponentValue
	for _, v := range values {
		if tok, ok := v.(Token); ok && tok.Kind == TokenWhitespace {
			continue
		}
		out = append(out, v)
	}
	return out
}
