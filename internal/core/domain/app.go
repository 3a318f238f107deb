package domain

import "encoding/json"

// AppMetadata describes the remote service itself.
type AppMetadata struct {
	APIVersion     int64               `json:"api_version"`
	LibraryVersion string              `json:"library_version"`
	Formats        map[string][]string `json:"formats"`
	Aliases        map[string]any      `json:"aliases"`
	Queries        []string            `json:"queries"`
	Authentication any                 `json:"authentication"`
	Links          map[string]any      `json:"links"`
	Meta           map[string]any      `json:"meta"`
}

// UnmarshalJSON requires api_version to be present.
func (m *AppMetadata) UnmarshalJSON(data []byte) error {
	if err := requireKeys(data, "app metadata", "api_version"); err != nil {
		return err
	}
	type plain AppMetadata
	return json.Unmarshal(data, (*plain)(m))
}
