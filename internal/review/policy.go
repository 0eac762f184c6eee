package review

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Policy is the optional per-repository review policy, read from a YAML file
// checked into the repository root. Every field is optional; the zero value
// changes nothing.
type Policy struct {
	// Ignore lists extra path patterns (RE2) skipped during review.
	Ignore []string `json:"ignore,omitempty"`
	// MaxFiles overrides the configured per-review file cap when positive.
	MaxFiles int `json:"maxFiles,omitempty"`
	// PostComments overrides the configured comment posting toggle.
	PostComments *bool `json:"postComments,omitempty"`
}

// LoadPolicy reads the policy file at path. A missing file is not an error;
// reviews run with defaults in repositories that carry no policy.
func LoadPolicy(path string) (Policy, error) {
	var p Policy
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return p, fmt.Errorf("read policy file: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse policy file %s: %w", path, err)
	}
	return p, nil
}
