package diff

import (
	"regexp"
	"strconv"
	"strings"
)

var hunkHeaderRE = regexp.MustCompile(`^@@ -\d+(?:,\d+)? \+(\d+)(?:,\d+)? @@`)

// TrackLines walks the patch and collects the lines for one mode, numbering
// them against the post-change file. The counter is seeded by each hunk
// header's new-file start; added and context lines consume a slot, removed
// lines are recorded at the current counter without consuming one. Content
// before the first hunk header and anything unrecognized is ignored, so a
// patch without hunk headers yields an empty result.
func TrackLines(patch string, mode LineMode) []Line {
	lines := make([]Line, 0)
	counter := 0
	inHunk := false

	for _, raw := range strings.Split(patch, "\n") {
		if m := hunkHeaderRE.FindStringSubmatch(raw); m != nil {
			start, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			counter = start
			inHunk = true
			continue
		}
		if !inHunk {
			continue
		}

		switch {
		case strings.HasPrefix(raw, "+++"), strings.HasPrefix(raw, "---"):
			// file header markers, never content
		case strings.HasPrefix(raw, "+"):
			if mode == Added {
				lines = append(lines, Line{Number: counter, Content: raw[1:]})
			}
			counter++
		case strings.HasPrefix(raw, "-"):
			if mode == Removed {
				lines = append(lines, Line{Number: counter, Content: raw[1:]})
			}
		case strings.HasPrefix(raw, " "):
			counter++
		}
	}
	return lines
}
