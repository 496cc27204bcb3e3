package browser

import (
	"fmt"
	"strings"
)

// query is a Kind/value pair lowered to something rod can execute:
// either a CSS selector or an XPath expression.
type query struct {
	xpath bool
	expr  string
}

// buildQuery lowers a selection rule to CSS or XPath. relative marks
// element-scoped searches, where absolute XPath axes must be anchored to
// the scope node instead of the document root.
func buildQuery(kind Kind, value string, relative bool) (query, error) {
	switch kind {
	case ByCSS:
		return query{expr: value}, nil
	case ByID:
		return query{expr: "#" + escapeCSSSelector(value)}, nil
	case ByName:
		return query{expr: `[name="` + escapeAttributeValue(value) + `"]`}, nil
	case ByXPath:
		expr := value
		if relative && strings.HasPrefix(expr, "//") {
			expr = "." + expr
		}
		return query{xpath: true, expr: expr}, nil
	case ByPartialLinkText:
		expr := fmt.Sprintf("//a[contains(., %s)]", xpathLiteral(value))
		if relative {
			expr = "." + expr
		}
		return query{xpath: true, expr: expr}, nil
	default:
		return query{}, fmt.Errorf("unknown selector kind: %s", kind)
	}
}

// escapeCSSSelector escapes special characters in CSS selectors.
// Characters that need escaping: / . : [ ] ( ) # > + ~ = ^ $ * | ! @ % & ' " ` { }
func escapeCSSSelector(s string) string {
	var result []rune
	for _, r := range s {
		switch r {
		case '/', '.', ':', '[', ']', '(', ')', '#', '>', '+', '~', '=', '^', '$', '*', '|', '!', '@', '%', '&', '\'', '"', '`', '{', '}', ' ':
			result = append(result, '\\', r)
		default:
			result = append(result, r)
		}
	}
	return string(result)
}

// escapeAttributeValue escapes characters for use in CSS attribute selectors.
func escapeAttributeValue(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

// xpathLiteral quotes a string for embedding in an XPath expression.
// XPath 1.0 has no escape sequences, so strings containing both quote
// styles fall back to a concat() of single-quoted pieces.
func xpathLiteral(s string) string {
	if !strings.Contains(s, `'`) {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, `'`)
	quoted := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		quoted = append(quoted, "'"+p+"'")
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
