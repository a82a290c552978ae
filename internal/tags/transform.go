// Package tags builds normalized contract tags from raw subgraph pairs.
package tags

import (
	"fmt"

	"honeytags/internal/model"
)

// Fixed identity of the protocol these tags describe.
const (
	ProjectName = "Honeyswap"
	UILink      = "https://honeyswap.org"
)

// MaxLabelRunes caps the symbol-pair portion of the public name tag.
const MaxLabelRunes = 45

// noteTemplate interpolates both tokens' names and symbols.
const noteTemplate = "This contract is the Honeyswap liquidity pool holding %s (%s) and %s (%s)."

// FromPairs converts one page of pairs into tags. Pairs whose token metadata
// fails validation are dropped without a placeholder. Order is preserved and
// the function is pure, so transforming the same page twice yields identical
// output.
func FromPairs(chainID string, pairs []model.Pair) []model.Tag {
	out := make([]model.Tag, 0, len(pairs))
	for _, pair := range pairs {
		if !ValidToken(pair.Token0) || !ValidToken(pair.Token1) {
			continue
		}
		out = append(out, fromPair(chainID, pair))
	}
	return out
}

func fromPair(chainID string, pair model.Pair) model.Tag {
	label := TruncateLabel(pair.Token0.Symbol+"/"+pair.Token1.Symbol, MaxLabelRunes)
	return model.Tag{
		ContractAddress: fmt.Sprintf("eip155:%s:%s", chainID, pair.ID),
		PublicNameTag:   label + " Pool",
		ProjectName:     ProjectName,
		UILink:          UILink,
		PublicNote: fmt.Sprintf(noteTemplate,
			pair.Token0.Name, pair.Token0.Symbol,
			pair.Token1.Name, pair.Token1.Symbol,
		),
	}
}

// TruncateLabel caps label at max runes. When it overflows, the last three
// runes of the allowed length are replaced with an ellipsis.
func TruncateLabel(label string, max int) string {
	runes := []rune(label)
	if len(runes) <= max {
		return label
	}
	return string(runes[:max-3]) + "..."
}
