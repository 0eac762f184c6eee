package review

import (
	"time"

	"github.com/go-logr/logr"
)

type Config struct {
	// Enabled gates the whole pipeline. When false, Review returns a
	// disabled record without calling the code host or the model.
	Enabled bool

	ModelName        string
	OllamaURL        string
	MaxContextTokens int
	CallTimeout      time.Duration

	// MaxFiles caps how many files one review may cover after filtering.
	// Zero means no cap.
	MaxFiles int

	// PostComments controls whether finished reviews are written back to
	// the pull request.
	PostComments bool

	// PolicyFile points at the optional per-repository policy.
	PolicyFile string

	Logger logr.Logger
}

// withPolicy returns a copy of the config with the repository policy
// overrides applied.
func (c Config) withPolicy(p Policy) Config {
	if p.MaxFiles > 0 {
		c.MaxFiles = p.MaxFiles
	}
	if p.PostComments != nil {
		c.PostComments = *p.PostComments
	}
	return c
}
