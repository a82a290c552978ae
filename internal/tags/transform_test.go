package tags

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"honeytags/internal/model"
)

func honeyPair() model.Pair {
	return model.Pair{
		ID:        "0xabc",
		CreatedAt: 1599155241,
		TxCount:   7,
		Token0:    model.Token{ID: "0xe91d", Symbol: "WXDAI", Name: "Wrapped XDAI"},
		Token1:    model.Token{ID: "0x7185", Symbol: "HNY", Name: "Honey"},
	}
}

func TestFromPairsBuildsTag(t *testing.T) {
	got := FromPairs("100", []model.Pair{honeyPair()})
	if len(got) != 1 {
		t.Fatalf("expected exactly one tag, got %d", len(got))
	}

	want := model.Tag{
		ContractAddress: "eip155:100:0xabc",
		PublicNameTag:   "WXDAI/HNY Pool",
		ProjectName:     "Honeyswap",
		UILink:          "https://honeyswap.org",
		PublicNote:      "This contract is the Honeyswap liquidity pool holding Wrapped XDAI (WXDAI) and Honey (HNY).",
	}
	if !reflect.DeepEqual(got[0], want) {
		t.Fatalf("tag mismatch:\n got  %+v\n want %+v", got[0], want)
	}
}

func TestFromPairsIdempotent(t *testing.T) {
	pairs := []model.Pair{honeyPair()}

	first := FromPairs("100", pairs)
	second := FromPairs("100", pairs)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("transformation is not idempotent: %+v != %+v", first, second)
	}
}

func TestFromPairsDropsInvalidSilently(t *testing.T) {
	bad := honeyPair()
	bad.ID = "0xbad"
	bad.Token1.Name = "<script>evil</script>"

	alsoGood := honeyPair()
	alsoGood.ID = "0xdef"

	got := FromPairs("100", []model.Pair{honeyPair(), bad, alsoGood})
	if len(got) != 2 {
		t.Fatalf("expected 2 tags (1 rejected), got %d", len(got))
	}

	// Order preserved, rejected pair simply absent.
	if got[0].ContractAddress != "eip155:100:0xabc" || got[1].ContractAddress != "eip155:100:0xdef" {
		t.Fatalf("order not preserved: %+v", got)
	}
}

func TestTruncateLabel(t *testing.T) {
	label := strings.Repeat("A", 46) + "/B"
	got := TruncateLabel(label, MaxLabelRunes)

	if utf8.RuneCountInString(got) != 45 {
		t.Fatalf("expected 45-char label, got %d: %q", utf8.RuneCountInString(got), got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("truncated label must end in ellipsis: %q", got)
	}

	short := "WXDAI/HNY"
	if TruncateLabel(short, MaxLabelRunes) != short {
		t.Fatalf("short label must pass through unchanged")
	}

	exact := strings.Repeat("x", 45)
	if TruncateLabel(exact, MaxLabelRunes) != exact {
		t.Fatalf("boundary-length label must pass through unchanged")
	}
}
