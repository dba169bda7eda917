package service

import (
	"regexp"
	"strings"

	"github.com/do-an-tot-nghiep-att03-k16/shop-online-sub003/internal/model"
)

// refMatcher pairs a content pattern with the rule that turns its capture
// into a canonical order code. Matchers are tried in order; earlier entries
// are the more specific historical formats. New legacy formats get a new
// row here, not new control flow.
type refMatcher struct {
	pattern   *regexp.Regexp
	normalize func(match string) string
}

var identity = func(match string) string { return model.NormalizeOrderCode(match) }

var refMatchers = []refMatcher{
	// "DHORD250001_1736812800" — prefixed, no space, trailing sequence suffix.
	{pattern: regexp.MustCompile(`(?i)DH\s?(ORD\d+)(?:_\d+)?`), normalize: identity},
	// "DH ORD250001" — prefixed with a separating space.
	{pattern: regexp.MustCompile(`(?i)DH\s(ORD\d+)`), normalize: identity},
	// "ORD250001" — bare order code.
	{pattern: regexp.MustCompile(`(?i)\b(ORD\d+)\b`), normalize: identity},
	// "DH250001" — oldest format, digits only behind the prefix.
	{pattern: regexp.MustCompile(`(?i)DH\s?(\d{6,})`), normalize: func(match string) string {
		return "ORD" + strings.TrimSpace(match)
	}},
}

// ExtractOrderCode recovers the order code embedded in a bank transfer's
// free-text content. Returns false when no recognizable token is present.
func ExtractOrderCode(content string) (string, bool) {
	for _, m := range refMatchers {
		groups := m.pattern.FindStringSubmatch(content)
		if groups == nil {
			continue
		}
		return m.normalize(groups[1]), true
	}

	return "", false
}
