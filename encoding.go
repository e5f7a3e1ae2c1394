package css

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// DetermineFallbackEncoding implements CSS Syntax Module Level 3
// section 3.2: a stylesheet arrives as bytes, and the label used to
// decode them is chosen, in order, from a UTF-8/UTF-16 byte-order
// mark, a leading ASCII `@charset "..."` rule, the protocol-supplied
// encoding, and finally "utf-8".
func DetermineFallbackEncoding(data []byte, protocolEncoding string) string {
	if label, ok := sniffBOM(data); ok {
		return label
	}
	if label, ok := sniffCharsetRule(data); ok {
		return label
	}
	if protocolEncoding != "" {
		return protocolEncoding
	}
	return "utf-8"
}

func sniffBOM(data []byte) (string, bool) {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return "utf-8", true
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return "utf-16be", true
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return "utf-16le", true
	default:
		return "", false
	}
}

// sniffCharsetRule looks for a leading `@charset "label";` exactly as
// spec section 3.2 describes: an ASCII, byte-for-byte match, since the
// encoding isn't known yet.
func sniffCharsetRule(data []byte) (string, bool) {
	const prefix = `@charset "`
	if !bytes.HasPrefix(data, []byte(prefix)) {
		return "", false
	}
	rest := data[len(prefix):]
	end := bytes.IndexByte(rest, '"')
	if end < 0 || end+2 > len(rest) || rest[end+1] != ';' {
		return "", false
	}
	return strings.ToLower(string(rest[:end])), true
}

// DecodeInput decodes data as label names it, per spec section 3.2's
// "get a decoder". label resolution follows the teacher's mimeDecoder
// (_examples/spilled-ink-spilld/third_party/imf/addr.go): look the
// label up via golang.org/x/text/encoding/ianaindex.MIME, and fall back
// to simplifiedchinese.HZGB2312 for "gb2312", the one label the
// teacher found ianaindex doesn't carry.
func DecodeInput(data []byte, label string) (string, error) {
	enc, err := ianaindex.MIME.Encoding(label)
	if err != nil {
		return "", err
	}
	if enc == nil {
		if strings.EqualFold(label, "gb2312") {
			enc = simplifiedchinese.HZGB2312
		} else {
			enc = encoding.Nop
		}
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// decodedOrUTF8 strips a BOM already accounted for by
// DetermineFallbackEncoding and validates plain UTF-8 input, the
// overwhelmingly common case, without a round trip through the
// encoding package.
func decodedOrUTF8(data []byte, label string) (string, error) {
	if strings.EqualFold(label, "utf-8") {
		data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
		if !utf8.Valid(data) {
			return DecodeInput(data, label)
		}
		return string(data), nil
	}
	return DecodeInput(data, label)
}

// ParseStylesheetBytes determines the fallback encoding for data,
// decodes it, and runs ParseStylesheet over the result.
func ParseStylesheetBytes(data []byte, protocolEncoding string, opts Options) (*Stylesheet, error) {
	label := DetermineFallbackEncoding(data, protocolEncoding)
	text, err := decodedOrUTF8(data, label)
	if err != nil {
		return nil, err
	}
	return ParseStylesheet(text, opts), nil
}

// ParseCSSStylesheetBytes is ParseStylesheetBytes for the CSS-stylesheet
// layer: determine encoding, decode, then run ParseCSSStylesheet.
func ParseCSSStylesheetBytes(data []byte, protocolEncoding string, opts Options, registry *Registry) (*CssStylesheet, error) {
	label := DetermineFallbackEncoding(data, protocolEncoding)
	text, err := decodedOrUTF8(data, label)
	if err != nil {
		return nil, err
	}
	return ParseCSSStylesheet(text, opts, registry), nil
}
