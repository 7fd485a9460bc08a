// Package naming converts identifiers between the casing conventions used
// by generated API bindings and by the emitted command layer.
//
// All functions are pure and deterministic: the same input always yields
// the same output.
package naming

import (
	"go/token"
	"go/types"
	"strings"
	"unicode"

	"github.com/CliForge/oascaffold/pkg/errors"
)

// reserved holds package names that would shadow an import of the
// generated code.
var reserved = map[string]bool{
	"cobra":  true,
	"errors": true,
	"fmt":    true,
	"os":     true,
	"cli":    true,
	"main":   true,
}

// Words splits an identifier into lower-case words. Underscores, hyphens,
// dots and spaces separate words, as do case changes. A run of capitals is
// one word that ends before a capital followed by a lower-case letter, so
// "HTTPServer" yields "http" and "server". Digits stay with the word they
// follow.
func Words(s string) []string {
	var (
		words []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()

	return words
}

// Pascal converts s to PascalCase. Initialisms are not preserved:
// "get_http_status" and "GetHTTPStatus" both yield "GetHttpStatus".
func Pascal(s string) string {
	var b strings.Builder
	for _, w := range Words(s) {
		runes := []rune(w)
		b.WriteRune(unicode.ToUpper(runes[0]))
		b.WriteString(string(runes[1:]))
	}
	return b.String()
}

// Snake converts s to snake_case.
func Snake(s string) string {
	return strings.Join(Words(s), "_")
}

// Kebab converts s to kebab-case, the form used for subcommand names.
func Kebab(s string) string {
	return strings.Join(Words(s), "-")
}

// StripSuffix removes suffix from the end of ident. It fails with
// errors.ErrMissingSuffix when ident does not end with suffix or when
// nothing would remain.
func StripSuffix(ident, suffix string) (string, error) {
	base, ok := strings.CutSuffix(ident, suffix)
	base = strings.TrimRight(base, "_-")
	if !ok || base == "" {
		return "", errors.Mark(
			errors.Newf("identifier %q does not end with %q", ident, suffix),
			errors.ErrMissingSuffix)
	}
	return base, nil
}

// HasSuffix reports whether ident carries suffix and has a non-empty base.
func HasSuffix(ident, suffix string) bool {
	_, err := StripSuffix(ident, suffix)
	return err == nil
}

// PackageName derives a Go package name from base: the lower-case words
// joined together. A name starting with a digit gets an "api" prefix. Go
// keywords, predeclared identifiers such as string or error, and the
// imports of the generated code get an "api" suffix, since importing a
// package under such a name would shadow it in the aggregator.
func PackageName(base string) string {
	name := strings.Join(Words(base), "")
	switch {
	case name == "":
		return "api"
	case unicode.IsDigit([]rune(name)[0]):
		return "api" + name
	case token.IsKeyword(name), reserved[name], types.Universe.Lookup(name) != nil:
		return name + "api"
	}
	return name
}
