package css

// AtRuleHandler converts a generic AtRule into a CssRule for the
// CSS-stylesheet layer. Returning nil discards the rule, matching the
// "no registered handler" behavior for at-rules a handler itself
// decides not to materialize.
type AtRuleHandler func(p *Parser, rule *AtRule) CssRule

// Registry is a keyword-keyed table of AtRuleHandlers, per spec section
// 4.3. Registering a handler under a keyword already in use overwrites
// the previous one. Modeled as an owned mapping (spec section 9's
// design note) rather than a separate keyword/handler pair, so lookup
// and registration share one code path.
type Registry struct {
	handlers map[string]AtRuleHandler
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]AtRuleHandler)}
}

// DefaultRegistry returns a Registry with the @import and @keyframes
// handlers this module ships pre-registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.RegisterAtRuleHandler("import", handleImportRule)
	r.RegisterAtRuleHandler("keyframes", handleKeyframesRule)
	return r
}

// RegisterAtRuleHandler installs handler under keyword (ASCII
// case-insensitive, matching at-keyword name decoding), overwriting any
// existing handler for that keyword.
func (r *Registry) RegisterAtRuleHandler(keyword string, handler AtRuleHandler) {
	r.handlers[normalizeKeyword(keyword)] = handler
}

func (r *Registry) lookup(name string) (AtRuleHandler, bool) {
	h, ok := r.handlers[normalizeKeyword(name)]
	return h, ok
}

func normalizeKeyword(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
