package diff

import "regexp"

// Test-naming conventions across ecosystems, checked in order. Matching is
// case-sensitive; files using unlisted local conventions stay false.
var testFilePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\.test\.`),
	regexp.MustCompile(`\.spec\.`),
	regexp.MustCompile(`(^|/)__tests__/`),
	regexp.MustCompile(`_test\.`),
	regexp.MustCompile(`\.test$`),
	regexp.MustCompile(`\.spec$`),
	regexp.MustCompile(`(^|/)test_[^/]*\.[^/.]+$`),
}

// IsTestFile reports whether the filename follows a known test-file naming
// convention.
func IsTestFile(filename string) bool {
	for _, rx := range testFilePatterns {
		if rx.MatchString(filename) {
			return true
		}
	}
	return false
}
