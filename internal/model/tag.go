package model

// Tag is the normalized output record describing one pool contract for
// downstream labeling. It is a pure projection of exactly one valid Pair.
type Tag struct {
	ContractAddress string `json:"contract_address"`
	PublicNameTag   string `json:"public_name_tag"`
	ProjectName     string `json:"project_name"`
	UILink          string `json:"ui_link"`
	PublicNote      string `json:"public_note"`
}
