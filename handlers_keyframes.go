package css

import "strings"

// Keyframe is a single `<percentage-list> { <declarations> }` entry
// inside an @keyframes rule.
type Keyframe struct {
	Values       []string
	Declarations []DeclListItem
}

// KeyframesRule is the CssRule produced for an @keyframes at-rule.
type KeyframesRule struct {
	Name      string
	Keyframes []Keyframe

	Span Span
}

func (*KeyframesRule) cssRule() {}

// handleKeyframesRule implements the @keyframes handler: the name comes
// from stringifying the prelude, and each qualified rule found inside
// the at-rule's block becomes one Keyframe, with its own prelude
// comma-split into Keyframe.Values and its own block parsed as a
// declaration list. Non-qualified inner rules (stray at-rules) are
// discarded.
func handleKeyframesRule(p *Parser, rule *AtRule) CssRule {
	kf := &KeyframesRule{
		Name: strings.TrimSpace(StringifyAll(rule.Prelude)),
		Span: rule.Span,
	}

	var inner []ComponentValue
	if rule.Block != nil {
		inner = rule.Block.Values
	}

	var innerRules []Rule
	p.withSubstream(inner, func() {
		innerRules = p.consumeListOfRules()
	})

	for _, r := range innerRules {
		qr, ok := r.(*QualifiedRule)
		if !ok {
			continue
		}
		k := Keyframe{}
		for _, group := range splitTopLevelComma(qr.Prelude) {
			v := strings.TrimSpace(StringifyAll(group))
			if v != "" {
				k.Values = append(k.Values, v)
			}
		}

		var blockValues []ComponentValue
		if qr.Block != nil {
			blockValues = qr.Block.Values
		}
		p.withSubstream(blockValues, func() {
			k.Declarations = p.consumeListOfDeclarations()
		})

		kf.Keyframes = append(kf.Keyframes, k)
	}

	return kf
}
