package css

// tokenSource is the parser's current supply of component values. It is
// swapped out by withSubstream to implement the sub-stream protocol
// (spec section 4.3): declaration-list and keyframes-inner parsing run
// the very same rule/declaration consumers against a pre-built slice of
// ComponentValues instead of the live Tokenizer.
type tokenSource interface {
	// next returns the next ComponentValue, or nil at the end of this
	// source.
	next() ComponentValue

	// pos reports the position the next value would start at. A
	// sub-stream source has no meaningful notion of this and must
	// panic, per the fatal "read position during a sub-stream" rule.
	pos() Position
}

// liveSource pulls raw tokens directly from a Tokenizer. It is the
// parser's source at the top level and whenever a simple block or
// function is being consumed directly off the input.
type liveSource struct {
	tok  *Tokenizer
	last Position // end of the most recently returned token
}

func (s *liveSource) next() ComponentValue {
	t := s.tok.Next()
	if t.Kind == TokenEOF {
		s.last = t.Pos
		return nil
	}
	s.last = t.End
	return t
}

func (s *liveSource) pos() Position { return s.last }

// sliceSource replays a fixed, already-built sequence of ComponentValues.
// It backs every sub-stream: declaration lists parsed from a simple
// block's Values, and the inner rule list of an @keyframes block.
type sliceSource struct {
	values []ComponentValue
	i      int
}

func (s *sliceSource) next() ComponentValue {
	if s.i >= len(s.values) {
		return nil
	}
	v := s.values[s.i]
	s.i++
	return v
}

func (s *sliceSource) pos() Position {
	panic(&Error{Message: "css: cannot query source position while a sub-stream is active"})
}

// Options configures a Parser.
type Options struct {
	// Debug enables Span population on AtRule, QualifiedRule, StyleRule
	// and Decl nodes. Spans are omitted when false, per spec section 6.
	Debug bool
}

// Parser implements the CSS Syntax Module Level 3 syntax parser (spec
// section 4.2) and, when used through ParseCSSStylesheet, the
// CSS-stylesheet layer (spec section 4.3). It is single-threaded and
// synchronous: one Parser instance parses one document at a time,
// matching the teacher's Scanner/Parser pairing
// (_examples/spilled-ink-spilld/html/css/parser.go) generalized from a
// single-declaration parser to the full rule grammar.
type Parser struct {
	opts Options

	live *liveSource
	src  tokenSource // current source; live at rest, a sliceSource during a sub-stream

	errors []string
}

// NewParser creates a Parser over text.
func NewParser(text string, opts Options) *Parser {
	p := &Parser{opts: opts}
	p.live = &liveSource{tok: NewTokenizer(text, &p.errors)}
	p.src = p.live
	return p
}

func (p *Parser) next() ComponentValue { return p.src.next() }

func (p *Parser) errorf(msg string) {
	p.errors = append(p.errors, msg)
}

// withSubstream runs fn with the parser's source temporarily replaced
// by an iterator over values, restoring the previous source
// unconditionally on return — including when fn panics, so a handler
// error or an upstream fatal Error still unwinds the swap correctly.
func (p *Parser) withSubstream(values []ComponentValue, fn func()) {
	prev := p.src
	p.src = &sliceSource{values: values}
	defer func() { p.src = prev }()
	fn()
}

// ParseStylesheet runs "consume a list of rules" at the top level over
// text and returns the generic syntax tree, per spec section 4.2's
// parse_stylesheet.
func ParseStylesheet(text string, opts Options) *Stylesheet {
	p := NewParser(text, opts)
	rules := p.consumeListOfRules()
	return &Stylesheet{Rules: rules, ParsingErrors: p.errors}
}

// Tokenize materializes every token text produces, including whitespace
// and excluding comments, per spec section 6's tokenize entry point.
func Tokenize(text string) []Token {
	tok := NewTokenizer(text, nil)
	var out []Token
	for {
		t := tok.Next()
		if t.Kind == TokenEOF {
			return out
		}
		out = append(out, t)
	}
}

// consumeListOfRules implements spec section 4.2's "consume a list of
// rules". CDO/CDC are always discarded here regardless of nesting depth:
// the source's top-level flag gated this, but spec.md's Open Questions
// resolve that asymmetry as a bug and adopt unconditional discarding,
// which is what every caller (top-level and the @keyframes inner list
// alike) gets from this single implementation.
func (p *Parser) consumeListOfRules() []Rule {
	var rules []Rule
	for {
		cv := p.next()
		if cv == nil {
			return rules
		}
		if tok, ok := cv.(Token); ok {
			switch tok.Kind {
			case TokenWhitespace:
				continue
			case TokenCDO, TokenCDC:
				continue
			case TokenAtKeyword:
				rules = append(rules, p.consumeAtRule(tok))
				continue
			}
		}
		if qr := p.consumeQualifiedRule(cv); qr != nil {
			rules = append(rules, qr)
		}
	}
}

// consumeAtRule implements "consume an at-rule" given the already-read
// AtKeyword token (the reconsume-by-argument discipline: callers that
// just observed an AtKeyword pass it in rather than pushing it back).
func (p *Parser) consumeAtRule(nameTok Token) *AtRule {
	rule := &AtRule{Name: nameTok.Value}
	start := nameTok.Pos
	end := nameTok.End
	for {
		cv := p.next()
		if cv == nil {
			break
		}
		if tok, ok := cv.(Token); ok {
			switch tok.Kind {
			case TokenSemicolon:
				end = tok.End
				goto done
			case TokenLeftBrace:
				rule.Block = p.consumeSimpleBlock(tok)
				end = rule.Block.Span.End
				goto done
			}
			rule.Prelude = append(rule.Prelude, p.consumeComponentValue(tok))
			end = tok.End
			continue
		}
		if sb, ok := cv.(*SimpleBlock); ok && sb.Open.Kind == TokenLeftBrace {
			rule.Block = sb
			end = sb.Span.End
			goto done
		}
		rule.Prelude = append(rule.Prelude, cv)
	}
done:
	if p.opts.Debug {
		rule.Span = Span{Start: start, End: end}
	}
	return rule
}

// consumeQualifiedRule implements "consume a qualified rule" given the
// already-read seed component value. Returns nil (a parse error, per
// spec section 7) if the input runs out before a block is found.
func (p *Parser) consumeQualifiedRule(seed ComponentValue) *QualifiedRule {
	rule := &QualifiedRule{}
	start, haveStart := startPos(seed)
	cv := seed
	for {
		if cv == nil {
			p.errorf("qualified rule: unexpected end of input before block")
			return nil
		}
		if tok, ok := cv.(Token); ok && tok.Kind == TokenLeftBrace {
			rule.Block = p.consumeSimpleBlock(tok)
			if p.opts.Debug && haveStart {
				rule.Span = Span{Start: start, End: rule.Block.Span.End}
			}
			return rule
		}
		if sb, ok := cv.(*SimpleBlock); ok && sb.Open.Kind == TokenLeftBrace {
			rule.Block = sb
			if p.opts.Debug && haveStart {
				rule.Span = Span{Start: start, End: sb.Span.End}
			}
			return rule
		}
		rule.Prelude = append(rule.Prelude, p.consumeComponentValue(cv))
		cv = p.next()
	}
}

func startPos(cv ComponentValue) (Position, bool) {
	switch v := cv.(type) {
	case Token:
		return v.Pos, true
	case *SimpleBlock:
		return v.Span.Start, true
	case *FunctionObject:
		return v.Span.Start, true
	default:
		return Position{}, false
	}
}

// consumeComponentValue implements "consume a component value": an
// opening punctuator becomes a SimpleBlock, a Function token becomes a
// FunctionObject, anything else (including values already built by an
// earlier pass over a sub-stream) passes through unchanged.
func (p *Parser) consumeComponentValue(cv ComponentValue) ComponentValue {
	tok, ok := cv.(Token)
	if !ok {
		return cv
	}
	switch tok.Kind {
	case TokenLeftBrace, TokenLeftBracket, TokenLeftParen:
		return p.consumeSimpleBlock(tok)
	case TokenFunction:
		return p.consumeFunction(tok)
	default:
		return tok
	}
}

func closerFor(open TokenKind) TokenKind {
	switch open {
	case TokenLeftBrace:
		return TokenRightBrace
	case TokenLeftBracket:
		return TokenRightBracket
	case TokenLeftParen:
		return TokenRightParen
	default:
		panic("css: closerFor called with a non-opening token kind")
	}
}

// consumeSimpleBlock implements "consume a simple block". EOF closes
// the block implicitly with no error, matching spec section 4.2's
// balance invariant.
func (p *Parser) consumeSimpleBlock(open Token) *SimpleBlock {
	closer := closerFor(open.Kind)
	block := &SimpleBlock{Open: open}
	end := open.End
	for {
		cv := p.next()
		if cv == nil {
			break
		}
		if tok, ok := cv.(Token); ok {
			if tok.Kind == closer {
				end = tok.End
				break
			}
			end = tok.End
		}
		block.Values = append(block.Values, p.consumeComponentValue(cv))
	}
	if p.opts.Debug {
		block.Span = Span{Start: open.Pos, End: end}
	}
	return block
}

// consumeFunction implements "consume a function" given the already-read
// Function token.
func (p *Parser) consumeFunction(nameTok Token) *FunctionObject {
	fn := &FunctionObject{Name: nameTok.Value, NameToken: nameTok}
	end := nameTok.End
	for {
		cv := p.next()
		if cv == nil {
			break
		}
		if tok, ok := cv.(Token); ok {
			if tok.Kind == TokenRightParen {
				end = tok.End
				break
			}
			end = tok.End
		}
		fn.Values = append(fn.Values, p.consumeComponentValue(cv))
	}
	if p.opts.Debug {
		fn.Span = Span{Start: nameTok.Pos, End: end}
	}
	return fn
}
