package css

import "strings"

// CssRule is the result type of the CSS-stylesheet layer (spec section
// 4.3): either a StyleRule (a reinterpreted top-level QualifiedRule) or
// whatever a registered at-rule handler produces (ImportRule,
// KeyframesRule, ...).
type CssRule interface {
	cssRule()
}

// DeclListItem is either a Decl or an AtRule nested inside a
// declaration list, per spec section 4.3's consume_list_of_declarations
// ("AtKeyword -> consume_at_rule, push result, keeping as AtRule").
type DeclListItem interface {
	declListItem()
}

func (*Decl) declListItem() {}
func (*AtRule) declListItem() {}

// StyleRule is a top-level qualified rule reinterpreted under the
// CSS-stylesheet layer: a set of selector strings plus a declaration
// list parsed from the rule's block.
type StyleRule struct {
	Selectors    []string
	Declarations []DeclListItem

	Span Span
}

func (*StyleRule) cssRule() {}

// Decl is a single property/value declaration, per spec section 3.
type Decl struct {
	Property  string
	Value     string
	Important bool

	Span Span
}

// CssStylesheet is the result of ParseCSSStylesheet: the CSS-mode tree
// produced by interpreting qualified rules as style rules and
// dispatching at-rules through a Registry.
type CssStylesheet struct {
	Rules         []CssRule
	ParsingErrors []string
}

// ParseCSSStylesheet runs ParseStylesheet and then applies the
// CSS-stylesheet layer: every QualifiedRule becomes a StyleRule, and
// every AtRule is handed to registry (DefaultRegistry() if nil); at-rules
// with no registered handler are silently discarded per spec section
// 4.3 step 2.
func ParseCSSStylesheet(text string, opts Options, registry *Registry) *CssStylesheet {
	if registry == nil {
		registry = DefaultRegistry()
	}

	p := NewParser(text, opts)
	generic := p.consumeListOfRules()

	out := &CssStylesheet{}
	for _, r := range generic {
		switch rule := r.(type) {
		case *QualifiedRule:
			out.Rules = append(out.Rules, p.interpretAsStyleRule(rule))
		case *AtRule:
			if handler, ok := registry.lookup(rule.Name); ok {
				if css := handler(p, rule); css != nil {
					out.Rules = append(out.Rules, css)
				}
			}
		}
	}
	out.ParsingErrors = p.errors
	return out
}

// interpretAsStyleRule implements spec section 4.3's
// interpret_as_style_rule: split the prelude on top-level commas,
// stringify and trim each group into a selector, then parse the
// block's inner tokens as a declaration list through a sub-stream.
func (p *Parser) interpretAsStyleRule(qr *QualifiedRule) *StyleRule {
	rule := &StyleRule{Span: qr.Span}
	for _, group := range splitTopLevelComma(qr.Prelude) {
		sel := strings.TrimSpace(StringifyAll(group))
		if sel != "" {
			rule.Selectors = append(rule.Selectors, sel)
		}
	}

	var values []ComponentValue
	if qr.Block != nil {
		values = qr.Block.Values
	}
	p.withSubstream(values, func() {
		rule.Declarations = p.consumeListOfDeclarations()
	})
	return rule
}

// splitTopLevelComma splits values on Comma tokens that are not nested
// inside a SimpleBlock or FunctionObject (those were already consumed
// as a unit by the parser, so every remaining Comma in values is
// top-level by construction).
func splitTopLevelComma(values []ComponentValue) [][]ComponentValue {
	var groups [][]ComponentValue
	var cur []ComponentValue
	for _, v := range values {
		if tok, ok := v.(Token); ok && tok.Kind == TokenComma {
			groups = append(groups, cur)
			cur = nil
			continue
		}
		cur = append(cur, v)
	}
	groups = append(groups, cur)
	return groups
}

// consumeListOfDeclarations implements spec section 4.3's
// consume_list_of_declarations. It must run inside a sub-stream (the
// parser's current source is the block's own component values, not the
// live tokenizer).
func (p *Parser) consumeListOfDeclarations() []DeclListItem {
	var items []DeclListItem

	for {
		cv := p.next()
		if cv == nil {
			return items
		}
		tok, isTok := cv.(Token)
		if isTok && (tok.Kind == TokenWhitespace || tok.Kind == TokenSemicolon) {
			continue
		}
		if isTok && tok.Kind == TokenAtKeyword {
			items = append(items, p.consumeAtRule(tok))
			continue
		}
		if !isTok || tok.Kind != TokenIdent {
			p.errorf("declaration list: unexpected token, expected an ident")
			p.discardUntilSemicolon()
			continue
		}

		pending := []ComponentValue{tok}
		for {
			next := p.next()
			if next == nil {
				break
			}
			if t, ok := next.(Token); ok && t.Kind == TokenSemicolon {
				break
			}
			pending = append(pending, next)
		}
		if d := p.consumeDeclaration(pending); d != nil {
			items = append(items, d)
		}
	}
}

// discardUntilSemicolon implements the "discard component values until
// the next ';' or EOF" parse-error recovery spec section 4.3 names for
// a declaration-list item that starts with neither an at-keyword nor an
// ident.
func (p *Parser) discardUntilSemicolon() {
	for {
		cv := p.next()
		if cv == nil {
			return
		}
		if tok, ok := cv.(Token); ok && tok.Kind == TokenSemicolon {
			return
		}
	}
}

// consumeDeclaration implements spec section 4.3's consume_declaration
// over an owned sublist of component values whose first element is
// always the property Ident (the caller guarantees this).
func (p *Parser) consumeDeclaration(tokens []ComponentValue) *Decl {
	propTok := tokens[0].(Token)
	rest := tokens[1:]

	i := 0
	for i < len(rest) {
		if tok, ok := rest[i].(Token); ok && tok.Kind == TokenWhitespace {
			i++
			continue
		}
		break
	}
	if i >= len(rest) {
		p.errorf("declaration " + propTok.Value + ": missing ':'")
		return nil
	}
	colon, ok := rest[i].(Token)
	if !ok || colon.Kind != TokenColon {
		p.errorf("declaration " + propTok.Value + ": expected ':'")
		return nil
	}
	valueTokens := rest[i+1:]

	end := len(valueTokens)
	for end > 0 {
		if tok, ok := valueTokens[end-1].(Token); ok && tok.Kind == TokenWhitespace {
			end--
			continue
		}
		break
	}
	valueTokens = valueTokens[:end]

	important := false
	if n := len(valueTokens); n >= 2 {
		if identTok, ok := valueTokens[n-1].(Token); ok && identTok.Kind == TokenIdent &&
			strings.EqualFold(identTok.Value, "important") {
			bang := stripTrailingWhitespace(valueTokens[:n-1])
			if len(bang) > 0 {
				if delimTok, ok := bang[len(bang)-1].(Token); ok && delimTok.Kind == TokenDelim && delimTok.Value == "!" {
					valueTokens = bang[:len(bang)-1]
					important = true
				}
			}
		}
	}

	value := strings.TrimSpace(StringifyAll(valueTokens))
	decl := &Decl{Property: propTok.Value, Value: value, Important: important}
	if p.opts.Debug {
		end := propTok.End
		trimmed := stripTrailingWhitespace(tokens)
		switch last := trimmed[len(trimmed)-1].(type) {
		case Token:
			end = last.End
		case *SimpleBlock:
			end = last.Span.End
		case *FunctionObject:
			end = last.Span.End
		}
		decl.Span = Span{Start: propTok.Pos, End: end}
	}
	return decl
}

// stripTrailingWhitespace drops trailing Whitespace component values,
// used when scanning backward for a "! important" tail.
func stripTrailingWhitespace(values []ComponentValue) []ComponentValue {
	end := len(values)
	for end > 0 {
		if tok, ok := values[end-1].(Token); ok && tok.Kind == TokenWhitespace {
			end--
			continue
		}
		break
	}
	return values[:end]
}
