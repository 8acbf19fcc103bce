// Package strutil provides small string helpers: template interpolation,
// quoting, affix handling, and identifier case conversion.
package strutil

import (
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"github.com/kitmi/k-utils/pkg/errors"
)

// Interpolate renders a text/template string against data. Missing keys
// are an error rather than silently rendering "<no value>".
func Interpolate(tmpl string, data any) (string, error) {
	t, err := template.New("strutil").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateRender, "invalid template %q", tmpl)
	}
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", errors.Wrap(err, errors.ErrTemplateRender, "template execution failed")
	}
	return sb.String(), nil
}

// Quote returns the string wrapped in double quotes with special
// characters escaped.
func Quote(s string) string {
	return strconv.Quote(s)
}

// Unquote reverses Quote. Strings that are not quoted are returned as-is.
func Unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if unquoted, err := strconv.Unquote(s); err == nil {
			return unquoted
		}
	}
	return s
}

// EnsurePrefix prepends the prefix unless it is already there.
func EnsurePrefix(s, prefix string) string {
	if strings.HasPrefix(s, prefix) {
		return s
	}
	return prefix + s
}

// EnsureSuffix appends the suffix unless it is already there.
func EnsureSuffix(s, suffix string) string {
	if strings.HasSuffix(s, suffix) {
		return s
	}
	return s + suffix
}

// DropIfStartsWith removes the prefix when present.
func DropIfStartsWith(s, prefix string) string {
	return strings.TrimPrefix(s, prefix)
}

// DropIfEndsWith removes the suffix when present.
func DropIfEndsWith(s, suffix string) string {
	return strings.TrimSuffix(s, suffix)
}

// words splits an identifier on case boundaries, digits-to-letter
// boundaries, and the usual separator characters.
func words(s string) []string {
	var out []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			out = append(out, string(current))
			current = nil
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.':
			flush()
		case unicode.IsUpper(r):
			// Boundary before an upper rune following a lower rune or
			// starting the tail of an acronym (HTTPServer -> HTTP Server)
			if i > 0 && (unicode.IsLower(runes[i-1]) ||
				(unicode.IsUpper(runes[i-1]) && i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				flush()
			}
			current = append(current, r)
		default:
			current = append(current, r)
		}
	}
	flush()
	return out
}

// ToSnake converts an identifier to snake_case.
func ToSnake(s string) string {
	ws := words(s)
	for i, w := range ws {
		ws[i] = strings.ToLower(w)
	}
	return strings.Join(ws, "_")
}

// ToKebab converts an identifier to kebab-case.
func ToKebab(s string) string {
	ws := words(s)
	for i, w := range ws {
		ws[i] = strings.ToLower(w)
	}
	return strings.Join(ws, "-")
}

// ToCamel converts an identifier to camelCase.
func ToCamel(s string) string {
	ws := words(s)
	for i, w := range ws {
		if i == 0 {
			ws[i] = strings.ToLower(w)
			continue
		}
		ws[i] = capitalize(w)
	}
	return strings.Join(ws, "")
}

// ToPascal converts an identifier to PascalCase.
func ToPascal(s string) string {
	ws := words(s)
	for i, w := range ws {
		ws[i] = capitalize(w)
	}
	return strings.Join(ws, "")
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	runes := []rune(strings.ToLower(w))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
