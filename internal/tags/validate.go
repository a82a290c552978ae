package tags

import (
	"regexp"
	"unicode/utf8"

	"honeytags/internal/model"
)

// Limits for untrusted subgraph token metadata.
const (
	MaxSymbolRunes = 20
	MaxNameRunes   = 50
)

// markupPattern flags anything that looks like an HTML tag: "<" followed by
// one or more non-">" characters and a ">". A heuristic, not a parser.
var markupPattern = regexp.MustCompile(`<[^>]+>`)

// ValidToken reports whether a token's metadata is safe to embed in a tag.
// Rejection is silent: bad records are a data-quality filter, not an error.
func ValidToken(tok model.Token) bool {
	if tok.Symbol == "" || tok.Name == "" {
		return false
	}
	if utf8.RuneCountInString(tok.Symbol) > MaxSymbolRunes {
		return false
	}
	if utf8.RuneCountInString(tok.Name) > MaxNameRunes {
		return false
	}
	if markupPattern.MatchString(tok.Symbol) || markupPattern.MatchString(tok.Name) {
		return false
	}
	return true
}
