package css

// Rule is the generic syntax parser's output, per spec section 4.2: a
// list of rules, each either a QualifiedRule or an AtRule. Grounded on
// the commented-out Rule sketch at the bottom of the teacher's
// parser.go, generalized from its single-field AtToken/Qualifiers union
// to two concrete Go types distinguished by a marker method.
type Rule interface {
	rule()
}

// QualifiedRule is a prelude of component values followed by a
// brace-delimited block, per spec section 3. In CSS-stylesheet mode
// every top-level QualifiedRule is reinterpreted as a StyleRule.
type QualifiedRule struct {
	Prelude []ComponentValue
	Block   *SimpleBlock

	Span Span
}

func (*QualifiedRule) rule() {}

// AtRule is a rule introduced by an at-keyword: a name, a prelude, and
// an optional block. Block is nil when the rule was terminated by a
// semicolon or EOF rather than a simple block.
type AtRule struct {
	Name    string
	Prelude []ComponentValue
	Block   *SimpleBlock

	Span Span
}

func (*AtRule) rule() {}

// Stylesheet is the generic syntax tree returned by ParseStylesheet.
type Stylesheet struct {
	Rules         []Rule
	ParsingErrors []string
}
