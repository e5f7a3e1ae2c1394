package css

import "strings"

// Stringify flattens a component value back to the source text it
// reconstructs to, per spec section 4.4. Punctuator and object tokens
// return their Source verbatim; SimpleBlock and FunctionObject
// recursively stringify their contents and re-add the delimiters the
// parser stripped off while building the tree.
func Stringify(cv ComponentValue) string {
	var b strings.Builder
	writeStringified(&b, cv)
	return b.String()
}

// StringifyAll concatenates Stringify over a sequence of component
// values in order, matching the round-trip invariant in spec section 8
// when applied to an entire token or component-value stream.
func StringifyAll(cvs []ComponentValue) string {
	var b strings.Builder
	for _, cv := range cvs {
		writeStringified(&b, cv)
	}
	return b.String()
}

func writeStringified(b *strings.Builder, cv ComponentValue) {
	switch v := cv.(type) {
	case Token:
		b.WriteString(v.Source)
	case *FunctionObject:
		b.WriteString(v.Name)
		b.WriteByte('(')
		for _, inner := range v.Values {
			writeStringified(b, inner)
		}
		b.WriteByte(')')
	case *SimpleBlock:
		b.WriteString(openerText(v.Open.Kind))
		for _, inner := range v.Values {
			writeStringified(b, inner)
		}
		b.WriteString(closerText(v.Closer()))
	}
}

func openerText(k TokenKind) string {
	switch k {
	case TokenLeftBrace:
		return "{"
	case TokenLeftBracket:
		return "["
	case TokenLeftParen:
		return "("
	default:
		panic("css: openerText called with a non-opening token kind")
	}
}

func closerText(k TokenKind) string {
	switch k {
	case TokenRightBrace:
		return "}"
	case TokenRightBracket:
		return "]"
	case TokenRightParen:
		return ")"
	default:
		panic("css: closerText called with a non-closing token kind")
	}
}
