package types

// University is one catalog entry that can be recommended.
type University struct {
	Name           string   `json:"name"`
	Type           int      `json:"type"`
	Tier           Tier     `json:"tier"`
	Scope          []string `json:"scope"`
	PreferredStyle Style    `json:"preferredStyle"`
	Features       string   `json:"features"`
}

// Clone returns a copy that does not share the scope slice.
func (u University) Clone() University {
	out := u
	out.Scope = append([]string(nil), u.Scope...)
	return out
}
