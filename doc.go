/*
Package css implements the W3C CSS Syntax Module Level 3 tokenizer,
syntax parser, and CSS-stylesheet layer: https://www.w3.org/TR/css-syntax-3/.

Tokenizer

Turn a source string into tokens by calling Next until a TokenEOF token:

	t := css.NewTokenizer(src, nil)
	for {
		tok := t.Next()
		if tok.Kind == css.TokenEOF {
			break
		}
		// ... process tok.
	}

A non-nil *[]string passed to NewTokenizer collects human-readable
messages for tokenizer anomalies (bad strings, bad urls, a lone
backslash before a newline).

Syntax parser

ParseStylesheet runs the generic rule grammar and returns a tree of
QualifiedRule and AtRule values, each holding a prelude of
ComponentValues (Tokens, SimpleBlocks, or FunctionObjects):

	sheet := css.ParseStylesheet(src, css.Options{})
	for _, rule := range sheet.Rules {
		// ... switch on rule.(type).
	}

CSS stylesheet layer

ParseCSSStylesheet additionally reinterprets top-level qualified rules
as style rules (selectors plus declarations) and dispatches at-rules
through a Registry, which ships handlers for @import and @keyframes:

	sheet := css.ParseCSSStylesheet(src, css.Options{}, nil) // nil uses DefaultRegistry()
	for _, rule := range sheet.Rules {
		switch r := rule.(type) {
		case *css.StyleRule:
			// ... r.Selectors, r.Declarations
		case *css.ImportRule:
			// ... r.Import
		case *css.KeyframesRule:
			// ... r.Name, r.Keyframes
		}
	}

Byte input

ParseStylesheetBytes and ParseCSSStylesheetBytes determine the fallback
encoding of raw bytes (BOM, leading @charset rule, or a caller-supplied
protocol encoding, per CSS Syntax 3.2) before decoding and parsing.
*/
package css
