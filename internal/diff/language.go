package diff

import (
	"path"
	"strings"
)

const LanguageUnknown = "unknown"

// TargetFile returns the post-change path from the first "+++" header line,
// with the conventional "b/" prefix stripped. It returns "" when the patch
// has no such header or the target is /dev/null (file deletion).
func TargetFile(patch string) string {
	for _, line := range strings.Split(patch, "\n") {
		if !strings.HasPrefix(line, "+++") {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(line, "+++"))
		// GNU diff appends a tab plus timestamp after the path.
		if idx := strings.IndexByte(name, '\t'); idx >= 0 {
			name = strings.TrimSpace(name[:idx])
		}
		name = strings.TrimPrefix(name, "b/")
		if name == "/dev/null" {
			return ""
		}
		return name
	}
	return ""
}

// DetectLanguage derives the language tag from the target filename's
// extension, lower-cased. The old-side "---" header is never consulted: a
// renamed or newly added file has no meaningful old-side extension.
func DetectLanguage(patch string) string {
	name := TargetFile(patch)
	if name == "" {
		return LanguageUnknown
	}
	ext := strings.TrimPrefix(path.Ext(name), ".")
	if ext == "" {
		return LanguageUnknown
	}
	return strings.ToLower(ext)
}
