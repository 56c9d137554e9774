package entity

// DocumentEntry is one object in the knowledge-base container. Derived per
// request from the store listing, never persisted.
type DocumentEntry struct {
	Path        string `json:"path"`
	DisplayName string `json:"display_name"` // basename of Path
}
